// Package report turns ledger data into free-text narrative summaries. It is
// a pure consumer: it reads (sales, products) and returns prose, never state.
package report

import (
	"context"

	"github.com/First-Work/pk-pos-final/internal/domain"
)

type Analyzer interface {
	Analyze(ctx context.Context, sales []domain.SaleRecord, products []domain.Product) (string, error)
}
