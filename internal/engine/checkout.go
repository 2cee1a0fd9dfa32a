package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/First-Work/pk-pos-final/internal/domain"
)

// Checkout turns the current cart into an immutable SaleRecord, decrements
// catalog stock and clears the cart. Stock availability is verified for the
// aggregated per-product quantities before anything is mutated, so a failed
// checkout leaves the record ledger and the stock levels exactly as they were.
func (e *Engine) Checkout(paymentMethod, customerName string, amountPaid float64, notes string) (domain.SaleRecord, error) {
	if amountPaid < 0 {
		return domain.SaleRecord{}, fmt.Errorf("%w: amount paid cannot be negative", ErrValidation)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.cart) == 0 {
		return domain.SaleRecord{}, ErrEmptyCart
	}

	total := cartTotal(e.cart)

	// Lines sharing a product id but differing price are aggregated for
	// stock purposes.
	sold := map[string]int{}
	for _, line := range e.cart {
		sold[line.ID] += line.Quantity
	}
	for i := range e.products {
		if qty := sold[e.products[i].ID]; qty > e.products[i].Stock {
			return domain.SaleRecord{}, fmt.Errorf("%w: %s", ErrInsufficientStock, e.products[i].Name)
		}
	}

	method := strings.TrimSpace(paymentMethod)
	if amountPaid == 0 {
		method = "Credit"
	} else if amountPaid < total {
		method = method + " (Partial)"
	}

	customer := strings.TrimSpace(customerName)
	if customer == "" {
		customer = domain.WalkInCustomer
	}

	sale := domain.SaleRecord{
		ID:            uuid.NewString(),
		Date:          time.Now().UTC(),
		Items:         append([]domain.CartLine(nil), e.cart...),
		Total:         total,
		AmountPaid:    amountPaid,
		PaymentMethod: method,
		CustomerName:  customer,
		Notes:         strings.TrimSpace(notes),
	}

	for i := range e.products {
		if qty := sold[e.products[i].ID]; qty > 0 {
			e.products[i].Stock -= qty
		}
	}
	e.sales = append([]domain.SaleRecord{sale}, e.sales...)
	e.cart = nil
	return sale, nil
}

// Sales returns a copy of the ledger, newest first.
func (e *Engine) Sales() []domain.SaleRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.SaleRecord(nil), e.sales...)
}
