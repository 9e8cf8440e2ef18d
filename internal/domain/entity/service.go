package entity

import (
	"sort"
	"time"
)

// Service is a purchasable catalog offering
type Service struct {
	ID           uint64
	Name         string
	Category     string
	Rate         int64 // cents
	MinOrder     int
	MaxOrder     int
	DeliveryTime string
	Active       bool
	CreatedAt    time.Time
}

// GetRate returns the rate with 2 decimal places
func (s *Service) GetRate() string {
	return AmountInCentsToString(s.Rate)
}

// IsValid checks the catalog row invariants
func (s *Service) IsValid() bool {
	return s.Name != "" && s.Rate >= 0 && s.MinOrder >= 1 && s.MinOrder <= s.MaxOrder
}

// SortServices orders services by category, then name
func SortServices(services []*Service) {
	sort.SliceStable(services, func(i, j int) bool {
		if services[i].Category != services[j].Category {
			return services[i].Category < services[j].Category
		}
		return services[i].Name < services[j].Name
	})
}
