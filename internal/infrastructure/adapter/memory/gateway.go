package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/persistence"
)

var _ persistence.Gateway = (*Gateway)(nil)

// ErrUnavailable is what a Gateway returns after Fail is called
var ErrUnavailable = errors.New("memory gateway: simulated outage")

// Gateway is an in-memory persistence.Gateway with the same constraint and
// atomicity semantics as the SQL implementation. All state sits behind one
// mutex, so every operation is serializable.
type Gateway struct {
	mu           sync.Mutex
	timeProvider coreport.TimeProvider

	users     map[uint64]*entity.User
	orders    []*entity.Order
	payments  map[uint64]*entity.Payment
	services  []*entity.Service
	loginLogs []*entity.LoginLog

	nextUserID    uint64
	nextOrderID   uint64
	nextPaymentID uint64
	nextServiceID uint64
	nextLogID     uint64

	failure error
}

// NewGateway creates an empty in-memory gateway
func NewGateway(timeProvider coreport.TimeProvider) *Gateway {
	return &Gateway{
		timeProvider: timeProvider,
		users:        make(map[uint64]*entity.User),
		payments:     make(map[uint64]*entity.Payment),
	}
}

// Fail makes every subsequent operation return err wrapped in
// ErrStoreUnavailable; Fail(nil) restores normal operation
func (g *Gateway) Fail(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failure = err
}

func (g *Gateway) check() error {
	if g.failure != nil {
		return errors.Join(errs.ErrStoreUnavailable, g.failure)
	}
	return nil
}

func (g *Gateway) now() time.Time {
	return g.timeProvider.Now()
}

func copyUser(u *entity.User) *entity.User {
	cp := *u
	return &cp
}

// Ping implements persistence.Gateway
func (g *Gateway) Ping(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return g.check()
}

// GetUserByID implements persistence.UserRepository
func (g *Gateway) GetUserByID(_ context.Context, id uint64) (*entity.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(); err != nil {
		return nil, err
	}

	u, ok := g.users[id]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return copyUser(u), nil
}

// GetUserByInstagramUsername implements persistence.UserRepository
func (g *Gateway) GetUserByInstagramUsername(_ context.Context, instagramUsername string) (*entity.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(); err != nil {
		return nil, err
	}

	for _, u := range g.users {
		if u.InstagramUsername == instagramUsername {
			return copyUser(u), nil
		}
	}
	return nil, errs.ErrUserNotFound
}

// CreateUser implements persistence.UserRepository
func (g *Gateway) CreateUser(_ context.Context, user *entity.User) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(); err != nil {
		return err
	}

	for _, u := range g.users {
		if u.UID == user.UID {
			return errs.NewConstraintError("user", "uid", errors.New("duplicate uid"))
		}
		if u.InstagramUsername == user.InstagramUsername {
			return errs.NewConstraintError("user", "instagram_username", errors.New("duplicate instagram_username"))
		}
	}

	g.nextUserID++
	user.ID = g.nextUserID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = g.now()
	}
	g.users[user.ID] = copyUser(user)
	return nil
}

// SetUserBalance implements persistence.UserRepository
func (g *Gateway) SetUserBalance(_ context.Context, userID uint64, balanceCents int64) error {
	if balanceCents < 0 {
		return errs.ErrNegativeAmount
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(); err != nil {
		return err
	}

	u, ok := g.users[userID]
	if !ok {
		return errs.ErrUserNotFound
	}
	u.SetBalance(balanceCents)
	return nil
}

// MarkBonusClaimed implements persistence.UserRepository
func (g *Gateway) MarkBonusClaimed(_ context.Context, userID uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(); err != nil {
		return err
	}

	u, ok := g.users[userID]
	if !ok {
		return errs.ErrUserNotFound
	}
	u.BonusClaimed = true
	return nil
}

// ClaimBonus implements persistence.UserRepository
func (g *Gateway) ClaimBonus(_ context.Context, userID uint64, amountCents int64) (*entity.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(); err != nil {
		return nil, err
	}

	u, ok := g.users[userID]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	if err := u.ClaimBonus(amountCents); err != nil {
		return nil, err
	}
	return copyUser(u), nil
}

// CreateOrder implements persistence.OrderRepository
func (g *Gateway) CreateOrder(_ context.Context, order *entity.Order) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(); err != nil {
		return err
	}
	return g.insertOrder(order)
}

func (g *Gateway) insertOrder(order *entity.Order) error {
	if _, ok := g.users[order.UserID]; !ok {
		return errs.NewConstraintError("order", "user_id", errors.New("unknown user"))
	}
	for _, o := range g.orders {
		if o.OrderID == order.OrderID {
			return errs.NewConstraintError("order", "order_id", errors.New("duplicate order_id"))
		}
	}

	g.nextOrderID++
	order.ID = g.nextOrderID
	if order.CreatedAt.IsZero() {
		order.CreatedAt = g.now()
	}
	cp := *order
	g.orders = append(g.orders, &cp)
	return nil
}

// PlaceOrder implements persistence.OrderRepository
func (g *Gateway) PlaceOrder(_ context.Context, order *entity.Order) (*entity.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(); err != nil {
		return nil, err
	}

	u, ok := g.users[order.UserID]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	if !u.CanDeduct(order.Price) {
		return nil, errs.NewInsufficientBalanceError(u.ID, order.GetPrice(), u.GetBalance())
	}
	if err := g.insertOrder(order); err != nil {
		return nil, err
	}
	if err := u.Debit(order.Price); err != nil {
		return nil, err
	}
	return copyUser(u), nil
}

// ListOrdersForUser implements persistence.OrderRepository
func (g *Gateway) ListOrdersForUser(_ context.Context, userID uint64) ([]*entity.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(); err != nil {
		return nil, err
	}

	result := make([]*entity.Order, 0)
	for _, o := range g.orders {
		if o.UserID == userID {
			cp := *o
			result = append(result, &cp)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// CreatePayment implements persistence.PaymentRepository
func (g *Gateway) CreatePayment(_ context.Context, payment *entity.Payment) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(); err != nil {
		return err
	}

	if _, ok := g.users[payment.UserID]; !ok {
		return errs.NewConstraintError("payment", "user_id", errors.New("unknown user"))
	}
	for _, p := range g.payments {
		if p.UTRNumber == payment.UTRNumber {
			return errs.NewConstraintError("payment", "utr_number", errors.New("duplicate utr_number"))
		}
	}

	g.nextPaymentID++
	payment.ID = g.nextPaymentID
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = g.now()
	}
	cp := *payment
	g.payments[payment.ID] = &cp
	return nil
}

// ListPaymentsForUser implements persistence.PaymentRepository
func (g *Gateway) ListPaymentsForUser(_ context.Context, userID uint64) ([]*entity.Payment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(); err != nil {
		return nil, err
	}

	result := make([]*entity.Payment, 0)
	for _, p := range g.payments {
		if p.UserID == userID {
			cp := *p
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// GetPaymentByID implements persistence.PaymentRepository
func (g *Gateway) GetPaymentByID(_ context.Context, id uint64) (*entity.Payment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(); err != nil {
		return nil, err
	}

	p, ok := g.payments[id]
	if !ok {
		return nil, errs.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

// SetPaymentStatus implements persistence.PaymentRepository
func (g *Gateway) SetPaymentStatus(_ context.Context, id uint64, status entity.PaymentStatus) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(); err != nil {
		return err
	}

	p, ok := g.payments[id]
	if !ok {
		return errs.ErrPaymentNotFound
	}
	p.Status = status
	return nil
}

// SettlePayment implements persistence.PaymentRepository
func (g *Gateway) SettlePayment(_ context.Context, id uint64, status entity.PaymentStatus) (*entity.Payment, *entity.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(); err != nil {
		return nil, nil, err
	}

	p, ok := g.payments[id]
	if !ok {
		return nil, nil, errs.ErrPaymentNotFound
	}
	u, ok := g.users[p.UserID]
	if !ok {
		return nil, nil, errs.ErrUserNotFound
	}

	if err := p.Settle(status); err != nil {
		return nil, nil, err
	}
	if status == entity.PaymentStatusApproved {
		if err := u.Credit(p.Amount); err != nil {
			return nil, nil, err
		}
	}

	cp := *p
	return &cp, copyUser(u), nil
}

// ListActiveServices implements persistence.ServiceRepository
func (g *Gateway) ListActiveServices(_ context.Context) ([]*entity.Service, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(); err != nil {
		return nil, err
	}

	result := make([]*entity.Service, 0, len(g.services))
	for _, s := range g.services {
		if s.Active {
			cp := *s
			result = append(result, &cp)
		}
	}
	entity.SortServices(result)
	return result, nil
}

// SeedServicesIfEmpty implements persistence.ServiceRepository
func (g *Gateway) SeedServicesIfEmpty(_ context.Context, catalog []*entity.Service) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(); err != nil {
		return 0, err
	}

	if len(g.services) > 0 {
		return 0, nil
	}
	for _, s := range catalog {
		g.nextServiceID++
		cp := *s
		cp.ID = g.nextServiceID
		if cp.CreatedAt.IsZero() {
			cp.CreatedAt = g.now()
		}
		g.services = append(g.services, &cp)
	}
	return len(catalog), nil
}

// AddService inserts a single catalog row, for tests that need inactive rows
func (g *Gateway) AddService(service *entity.Service) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextServiceID++
	cp := *service
	cp.ID = g.nextServiceID
	g.services = append(g.services, &cp)
}

// AppendLoginLog implements persistence.LoginLogRepository
func (g *Gateway) AppendLoginLog(_ context.Context, userID uint64, instagramUsername string) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check(); err != nil {
		return 0, err
	}

	if _, ok := g.users[userID]; !ok {
		return 0, errs.NewConstraintError("login_log", "user_id", errors.New("unknown user"))
	}

	count := 1
	for _, l := range g.loginLogs {
		if l.UserID == userID {
			count++
		}
	}

	g.nextLogID++
	g.loginLogs = append(g.loginLogs, &entity.LoginLog{
		ID:                g.nextLogID,
		UserID:            userID,
		InstagramUsername: instagramUsername,
		LoginCount:        count,
		CreatedAt:         g.now(),
	})
	return count, nil
}

// OrderCount returns the number of stored orders
func (g *Gateway) OrderCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.orders)
}

// UserCount returns the number of stored users
func (g *Gateway) UserCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.users)
}
