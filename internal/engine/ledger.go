package engine

import (
	"sort"
	"strings"

	"github.com/First-Work/pk-pos-final/internal/domain"
)

// dueEpsilon absorbs floating-point rounding when classifying a balance as
// money owed. A balance is "due" only when it exceeds this threshold.
const dueEpsilon = 0.5

// Due reports whether a balance represents money actually owed.
func Due(balance float64) bool {
	return balance > dueEpsilon
}

// Statement derives a customer's date-ordered ledger view: every record
// contributes debit = total and credit = amount paid, and the running
// balance folds debit - credit in date order. Nothing here is persisted;
// the statement is recomputed from the sale records on every call.
func (e *Engine) Statement(customerName string) domain.Statement {
	e.mu.Lock()
	defer e.mu.Unlock()

	name := strings.TrimSpace(customerName)
	if name == "" {
		name = domain.WalkInCustomer
	}

	records := make([]domain.SaleRecord, 0)
	for _, sale := range e.sales {
		if sale.CustomerName == name {
			records = append(records, sale)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	statement := domain.Statement{CustomerName: name, Lines: make([]domain.StatementLine, 0, len(records))}
	balance := 0.0
	for _, sale := range records {
		debit := sale.Total
		credit := sale.AmountPaid
		balance += debit - credit
		statement.Lines = append(statement.Lines, domain.StatementLine{
			Sale:    sale,
			Debit:   debit,
			Credit:  credit,
			Balance: balance,
			IsDue:   Due(balance),
		})
		statement.TotalSales += debit
		statement.TotalPaid += credit
	}
	statement.TotalDue = statement.TotalSales - statement.TotalPaid
	statement.IsDue = Due(statement.TotalDue)
	return statement
}

// Directory groups all sale records by customer name, producing per-customer
// count, totals and most recent activity, sorted by total value descending.
func (e *Engine) Directory() []domain.CustomerSummary {
	e.mu.Lock()
	defer e.mu.Unlock()

	grouped := map[string]*domain.CustomerSummary{}
	for _, sale := range e.sales {
		name := sale.CustomerName
		if name == "" {
			name = domain.WalkInCustomer
		}
		entry, ok := grouped[name]
		if !ok {
			entry = &domain.CustomerSummary{Name: name, LastDate: sale.Date}
			grouped[name] = entry
		}
		entry.Count++
		entry.Total += sale.Total
		entry.Paid += sale.AmountPaid
		if sale.Date.After(entry.LastDate) {
			entry.LastDate = sale.Date
		}
	}

	summaries := make([]domain.CustomerSummary, 0, len(grouped))
	for _, entry := range grouped {
		entry.Due = entry.Total - entry.Paid
		entry.IsDue = Due(entry.Due)
		summaries = append(summaries, *entry)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Total != summaries[j].Total {
			return summaries[i].Total > summaries[j].Total
		}
		return summaries[i].Name < summaries[j].Name
	})
	return summaries
}

// ItemStats aggregates quantity and revenue per item across all records,
// sorted by quantity descending. Refund records carry a negative total, so
// their returned quantities and revenue count against the item.
func (e *Engine) ItemStats() []domain.ItemStat {
	e.mu.Lock()
	defer e.mu.Unlock()

	grouped := map[string]*domain.ItemStat{}
	order := make([]string, 0)
	for _, sale := range e.sales {
		sign := 1.0
		if sale.Total < 0 {
			sign = -1.0
		}
		for _, item := range sale.Items {
			entry, ok := grouped[item.ID]
			if !ok {
				entry = &domain.ItemStat{ProductID: item.ID, Name: item.Name}
				grouped[item.ID] = entry
				order = append(order, item.ID)
			}
			entry.Quantity += int(sign) * item.Quantity
			entry.Revenue += sign * item.LineTotal()
		}
	}

	stats := make([]domain.ItemStat, 0, len(order))
	for _, id := range order {
		stats = append(stats, *grouped[id])
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Quantity > stats[j].Quantity
	})
	return stats
}
