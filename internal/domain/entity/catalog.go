package entity

// CatalogVersion identifies the default catalog below; bump it when the rows change
const CatalogVersion = "2024.1"

// DefaultCatalog returns a fresh copy of the seeded service catalog
func DefaultCatalog() []*Service {
	return []*Service{
		{Name: "Instagram Followers - Indian", Category: "Followers", Rate: 400, MinOrder: 100, MaxOrder: 100000, DeliveryTime: "0-2 hours", Active: true},
		{Name: "Instagram Followers - USA", Category: "Followers", Rate: 500, MinOrder: 100, MaxOrder: 50000, DeliveryTime: "0-4 hours", Active: true},
		{Name: "Instagram Followers - Global", Category: "Followers", Rate: 350, MinOrder: 100, MaxOrder: 200000, DeliveryTime: "0-6 hours", Active: true},
		{Name: "Instagram Likes - Indian", Category: "Likes", Rate: 200, MinOrder: 50, MaxOrder: 50000, DeliveryTime: "0-1 hour", Active: true},
		{Name: "Instagram Likes - Global", Category: "Likes", Rate: 150, MinOrder: 50, MaxOrder: 100000, DeliveryTime: "0-2 hours", Active: true},
		{Name: "Instagram Video Views", Category: "Views", Rate: 100, MinOrder: 100, MaxOrder: 1000000, DeliveryTime: "0-30 minutes", Active: true},
		{Name: "Instagram Story Views", Category: "Views", Rate: 250, MinOrder: 100, MaxOrder: 50000, DeliveryTime: "0-1 hour", Active: true},
		{Name: "Instagram Comments - Random", Category: "Comments", Rate: 800, MinOrder: 10, MaxOrder: 1000, DeliveryTime: "1-6 hours", Active: true},
		{Name: "Instagram Comments - Custom", Category: "Comments", Rate: 1200, MinOrder: 10, MaxOrder: 500, DeliveryTime: "2-12 hours", Active: true},
	}
}
