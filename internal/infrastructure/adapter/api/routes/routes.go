package routes

import (
	"fmt"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the HTTP handlers served by the API
type Handlers struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Order   *handler.OrderHandler
	Payment *handler.PaymentHandler
	Bonus   *handler.BonusHandler
	Health  *handler.HealthHandler
}

// Guards are the per-group access middlewares. LoginLimit may be nil.
type Guards struct {
	Session    gin.HandlerFunc
	Admin      gin.HandlerFunc
	LoginLimit gin.HandlerFunc
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers, g Guards) {
	router.GET("/healthz", h.Health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	loginChain := []gin.HandlerFunc{h.Auth.Login}
	if g.LoginLimit != nil {
		loginChain = append([]gin.HandlerFunc{g.LoginLimit}, loginChain...)
	}
	api.POST("/auth/login", loginChain...)
	api.GET("/services", h.Catalog.ListServices)

	authed := api.Group("", g.Session)
	{
		authed.POST("/auth/logout", h.Auth.Logout)
		authed.GET("/auth/user", h.Auth.CurrentUser)

		authed.POST("/orders", h.Order.CreateOrder)
		authed.GET("/orders", h.Order.ListOrders)

		authed.POST("/payments", h.Payment.CreatePayment)
		authed.GET("/payments", h.Payment.ListPayments)

		authed.POST("/bonus/claim", h.Bonus.ClaimBonus)
	}

	admin := api.Group("/admin", g.Admin)
	{
		admin.POST("/payments/:id/approve", h.Payment.ApprovePayment)
		admin.POST("/payments/:id/decline", h.Payment.DeclinePayment)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, allowedOrigin string) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(allowedOrigin))
}

// RegisterValidators adds the custom binding rules used by the request DTOs
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("money", validateMoney)
}

// validateMoney accepts non-negative amounts with at most two decimals
func validateMoney(fl validator.FieldLevel) bool {
	if !fl.Field().CanFloat() {
		return false
	}
	_, err := entity.CentsFromFloat(fl.Field().Float())
	return err == nil
}
