package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/First-Work/pk-pos-final/internal/domain"
)

// Void rolls an erroneous sale back completely: every item's quantity is
// restored to the matching product and the record is removed from the ledger.
// Items whose product has since been deleted restore nothing. Stock
// restoration and record removal happen together under the mutation lock.
func (e *Engine) Void(saleID, secret string) error {
	if err := e.authorize(secret); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	saleIdx := -1
	for i := range e.sales {
		if e.sales[i].ID == saleID {
			saleIdx = i
			break
		}
	}
	if saleIdx < 0 {
		return fmt.Errorf("%w: sale %s", ErrNotFound, saleID)
	}

	for _, item := range e.sales[saleIdx].Items {
		for i := range e.products {
			if e.products[i].ID == item.ID {
				e.products[i].Stock += item.Quantity
				break
			}
		}
	}
	e.sales = append(e.sales[:saleIdx], e.sales[saleIdx+1:]...)
	return nil
}

// Return processes a partial return of a previously sold item: restores
// returnQty units of stock and appends a refund record offsetting the
// original sale. The original record itself is never edited; a customer's
// net position is the sum over all of their records, forward and refund.
func (e *Engine) Return(originalSaleID string, item domain.CartLine, returnQty int, reason, secret string) (domain.SaleRecord, error) {
	if err := e.authorize(secret); err != nil {
		return domain.SaleRecord{}, err
	}
	if returnQty <= 0 || returnQty > item.Quantity {
		return domain.SaleRecord{}, fmt.Errorf("%w: return quantity must be between 1 and %d", ErrValidation, item.Quantity)
	}
	if strings.TrimSpace(reason) == "" {
		return domain.SaleRecord{}, fmt.Errorf("%w: reason is required", ErrValidation)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	customer := domain.UnknownCustomer
	for _, sale := range e.sales {
		if sale.ID != originalSaleID {
			continue
		}
		// Refunds are only permitted against a forward sale, never against
		// a prior refund record.
		if sale.Total <= 0 {
			return domain.SaleRecord{}, fmt.Errorf("%w: sale %s is not returnable", ErrInvalidOperation, originalSaleID)
		}
		customer = sale.CustomerName
		break
	}

	for i := range e.products {
		if e.products[i].ID == item.ID {
			e.products[i].Stock += returnQty
			break
		}
	}

	returned := item
	returned.Quantity = returnQty
	refundTotal := -1 * item.Price * float64(returnQty)
	refund := domain.SaleRecord{
		ID:            "RET-" + strings.ToUpper(uuid.NewString()[:6]),
		Date:          time.Now().UTC(),
		Items:         []domain.CartLine{returned},
		Total:         refundTotal,
		AmountPaid:    refundTotal,
		PaymentMethod: "Refund",
		CustomerName:  customer,
		Notes:         fmt.Sprintf("RETURN: %dx %s from Sale #%s. Reason: %s", returnQty, item.Name, originalSaleID, strings.TrimSpace(reason)),
	}
	e.sales = append([]domain.SaleRecord{refund}, e.sales...)
	return refund, nil
}
