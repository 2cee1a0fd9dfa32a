package engine

import (
	"fmt"

	"github.com/First-Work/pk-pos-final/internal/domain"
)

const (
	discountMinQuantity = 3
	discountRate        = 0.05
)

// AddLine adds quantity units of the product with the given SKU to the cart.
// The effective unit price is the override when given, otherwise the catalog
// price with the quantity discount applied. The discount is computed once
// here and never recalculated for the life of the line.
//
// A line with the same product id and the same effective price is merged;
// the same product at a different price stays a distinct line so per-line
// discount provenance survives until checkout.
func (e *Engine) AddLine(sku string, quantity int, priceOverride *float64) (domain.CartLine, error) {
	if quantity <= 0 {
		return domain.CartLine{}, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if priceOverride != nil && *priceOverride < 0 {
		return domain.CartLine{}, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	product, ok := e.findBySKULocked(sku)
	if !ok {
		return domain.CartLine{}, ErrNotFound
	}
	// Guard against the static catalog stock only; the cart does not reserve
	// stock, so lines already in the cart are not counted here.
	if quantity > product.Stock {
		return domain.CartLine{}, fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
	}

	price := product.Price
	if priceOverride != nil {
		price = *priceOverride
	} else if quantity >= discountMinQuantity {
		price = product.Price * (1 - discountRate)
	}

	for i := range e.cart {
		if e.cart[i].ID == product.ID && e.cart[i].Price == price {
			e.cart[i].Quantity += quantity
			return e.cart[i], nil
		}
	}

	line := domain.CartLine{Product: product, Quantity: quantity}
	line.Price = price
	e.cart = append(e.cart, line)
	return line, nil
}

func (e *Engine) RemoveLine(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.cart) {
		return fmt.Errorf("%w: cart line %d", ErrNotFound, index)
	}
	e.cart = append(e.cart[:index], e.cart[index+1:]...)
	return nil
}

func (e *Engine) CartLines() []domain.CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.CartLine(nil), e.cart...)
}

func (e *Engine) CartTotal() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cartTotal(e.cart)
}

func cartTotal(lines []domain.CartLine) float64 {
	total := 0.0
	for _, line := range lines {
		total += line.LineTotal()
	}
	return total
}
