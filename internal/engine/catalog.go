package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/First-Work/pk-pos-final/internal/domain"
)

// LowStockThreshold flags products that are about to run out.
const LowStockThreshold = 5

type ProductDraft struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	ImageURL string  `json:"image_url"`
}

// Products returns a copy of the catalog.
func (e *Engine) Products() []domain.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.Product(nil), e.products...)
}

func (e *Engine) GetProduct(id string) (domain.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, p := range e.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrNotFound
}

// FindBySKU performs a case-insensitive exact SKU match.
func (e *Engine) FindBySKU(sku string) (domain.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.findBySKULocked(sku)
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return p, nil
}

func (e *Engine) findBySKULocked(sku string) (domain.Product, bool) {
	sku = strings.TrimSpace(sku)
	for _, p := range e.products {
		if strings.EqualFold(p.SKU, sku) {
			return p, true
		}
	}
	return domain.Product{}, false
}

// AddProduct validates the draft, rejects SKU collisions (case-insensitive)
// and assigns a fresh opaque id.
func (e *Engine) AddProduct(draft ProductDraft) (domain.Product, error) {
	sku := strings.TrimSpace(draft.SKU)
	name := strings.TrimSpace(draft.Name)
	category := strings.TrimSpace(draft.Category)
	if sku == "" {
		return domain.Product{}, fmt.Errorf("%w: sku is required", ErrValidation)
	}
	if name == "" {
		return domain.Product{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if category == "" {
		return domain.Product{}, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if draft.Price < 0 {
		return domain.Product{}, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if draft.Stock < 0 {
		return domain.Product{}, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.findBySKULocked(sku); exists {
		return domain.Product{}, fmt.Errorf("%w: %s", ErrDuplicateSKU, sku)
	}

	product := domain.Product{
		ID:       uuid.NewString(),
		SKU:      sku,
		Name:     name,
		Category: category,
		Price:    draft.Price,
		Stock:    draft.Stock,
		ImageURL: strings.TrimSpace(draft.ImageURL),
	}
	e.products = append(e.products, product)
	return product, nil
}

// AdjustStock applies stock += delta to a product. Negative deltas are
// checked before mutation so committed stock never goes below zero.
func (e *Engine) AdjustStock(productID string, delta int) (domain.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.products {
		if e.products[i].ID != productID {
			continue
		}
		if e.products[i].Stock+delta < 0 {
			return domain.Product{}, fmt.Errorf("%w: %s", ErrInsufficientStock, e.products[i].Name)
		}
		e.products[i].Stock += delta
		return e.products[i], nil
	}
	return domain.Product{}, ErrNotFound
}

// RemoveProduct hard-deletes a product from the catalog. Historical sale
// records keep their snapshots and are not touched.
func (e *Engine) RemoveProduct(productID, secret string) error {
	if err := e.authorize(secret); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.products {
		if e.products[i].ID == productID {
			e.products = append(e.products[:i], e.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// LowStock lists products with stock below the low-stock threshold.
func (e *Engine) LowStock() []domain.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	low := make([]domain.Product, 0)
	for _, p := range e.products {
		if p.Stock < LowStockThreshold {
			low = append(low, p)
		}
	}
	return low
}
