package engine

import (
	"github.com/google/uuid"

	"github.com/First-Work/pk-pos-final/internal/domain"
)

// SeedProducts is the starter catalog installed on first run, when the
// external store holds no product record yet.
func SeedProducts() []domain.Product {
	seed := []struct {
		sku      string
		name     string
		category string
		price    float64
		stock    int
	}{
		{"SHM-001", "Sunsilk Black Shine (360ml)", "Personal Care", 650, 50},
		{"SHM-002", "Lifebuoy Herbal Shampoo", "Personal Care", 550, 45},
		{"FW-001", "Ponds White Beauty Face Wash", "Cosmetics", 450, 30},
		{"FW-002", "Himalaya Neem Face Wash", "Cosmetics", 600, 25},
		{"SB-001", "Rivaj UK Sunblock SPF60", "Cosmetics", 850, 20},
		{"GM-001", "IFG Cotton Bra (Classic)", "Garments", 1200, 60},
		{"PC-001", "Veet Hair Removal Cream", "Personal Care", 180, 100},
		{"PC-002", "Vaseline Healthy White Lotion", "Personal Care", 950, 40},
		{"GM-004", "Cotton Ankle Socks (Pair)", "Garments", 150, 300},
		{"SOP-001", "Lux Rose & Vitamin E Soap", "Personal Care", 140, 200},
		{"CRM-001", "Golden Pearl Beauty Cream", "Cosmetics", 350, 80},
		{"ACC-001", "Wide Tooth Comb", "Accessories", 120, 150},
	}

	products := make([]domain.Product, 0, len(seed))
	for _, item := range seed {
		products = append(products, domain.Product{
			ID:       uuid.NewString(),
			SKU:      item.sku,
			Name:     item.name,
			Category: item.category,
			Price:    item.price,
			Stock:    item.stock,
		})
	}
	return products
}
