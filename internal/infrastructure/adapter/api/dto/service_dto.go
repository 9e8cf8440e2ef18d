package dto

import "github.com/amirhossein-jamali/smm-panel/internal/domain/entity"

// ServiceResponse is the API view of a catalog row
type ServiceResponse struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Rate         string `json:"rate"`
	MinOrder     int    `json:"minOrder"`
	MaxOrder     int    `json:"maxOrder"`
	DeliveryTime string `json:"deliveryTime"`
	Active       bool   `json:"active"`
}

// NewServiceListResponse maps catalog rows to their API view. An empty
// catalog renders as [] rather than null.
func NewServiceListResponse(services []*entity.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, ServiceResponse{
			ID:           s.ID,
			Name:         s.Name,
			Category:     s.Category,
			Rate:         s.GetRate(),
			MinOrder:     s.MinOrder,
			MaxOrder:     s.MaxOrder,
			DeliveryTime: s.DeliveryTime,
			Active:       s.Active,
		})
	}
	return out
}
