package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/First-Work/pk-pos-final/internal/domain"
)

func TestDue(t *testing.T) {
	assert.False(t, Due(0))
	assert.False(t, Due(0.5))
	assert.False(t, Due(-100))
	assert.True(t, Due(0.51))
	assert.True(t, Due(100))
}

func ledgerFixture() []domain.SaleRecord {
	day := func(n int) time.Time {
		return time.Date(2026, time.March, n, 12, 0, 0, 0, time.UTC)
	}
	item := func(id, name string, price float64, qty int) domain.CartLine {
		line := domain.CartLine{Quantity: qty}
		line.ID = id
		line.Name = name
		line.Price = price
		return line
	}
	// Stored newest first, the way checkout prepends them.
	return []domain.SaleRecord{
		{ID: "s3", Date: day(3), CustomerName: "Alice", Total: 50, AmountPaid: 50,
			Items: []domain.CartLine{item("p2", "Gadget", 50, 1)}},
		{ID: "s2", Date: day(2), CustomerName: "Bob", Total: 300, AmountPaid: 100,
			Items: []domain.CartLine{item("p1", "Widget", 100, 3)}},
		{ID: "s1", Date: day(1), CustomerName: "Alice", Total: 200, AmountPaid: 120,
			Items: []domain.CartLine{item("p1", "Widget", 100, 2)}},
	}
}

func TestStatementFoldsBalanceInDateOrder(t *testing.T) {
	e := newTestEngine(t)
	e.Restore(State{Sales: ledgerFixture()})

	statement := e.Statement("Alice")
	require.Len(t, statement.Lines, 2)

	assert.Equal(t, "s1", statement.Lines[0].Sale.ID)
	assert.Equal(t, 200.0, statement.Lines[0].Debit)
	assert.Equal(t, 120.0, statement.Lines[0].Credit)
	assert.Equal(t, 80.0, statement.Lines[0].Balance)
	assert.True(t, statement.Lines[0].IsDue)

	assert.Equal(t, "s3", statement.Lines[1].Sale.ID)
	assert.Equal(t, 80.0, statement.Lines[1].Balance)

	assert.Equal(t, 250.0, statement.TotalSales)
	assert.Equal(t, 170.0, statement.TotalPaid)
	assert.Equal(t, 80.0, statement.TotalDue)
	assert.True(t, statement.IsDue)
}

func TestStatementSettledCustomerIsNotDue(t *testing.T) {
	e := newTestEngine(t)
	e.Restore(State{Sales: []domain.SaleRecord{
		{ID: "s1", Date: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			CustomerName: "Carol", Total: 100, AmountPaid: 100},
		{ID: "s2", Date: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
			CustomerName: "Carol", Total: 50.40, AmountPaid: 50},
	}})

	statement := e.Statement("Carol")
	require.Len(t, statement.Lines, 2)
	assert.False(t, statement.Lines[0].IsDue)
	// A rounding-sized remainder stays classified as paid.
	assert.False(t, statement.Lines[1].IsDue)
	assert.False(t, statement.IsDue)
}

func TestStatementBlankNameMeansWalkIn(t *testing.T) {
	e := newTestEngine(t)
	sales := ledgerFixture()
	sales[0].CustomerName = domain.WalkInCustomer
	e.Restore(State{Sales: sales})

	statement := e.Statement("  ")
	assert.Equal(t, domain.WalkInCustomer, statement.CustomerName)
	require.Len(t, statement.Lines, 1)
}

func TestDirectorySortsByTotalDescending(t *testing.T) {
	e := newTestEngine(t)
	e.Restore(State{Sales: ledgerFixture()})

	directory := e.Directory()
	require.Len(t, directory, 2)

	assert.Equal(t, "Bob", directory[0].Name)
	assert.Equal(t, 300.0, directory[0].Total)
	assert.Equal(t, 200.0, directory[0].Due)
	assert.True(t, directory[0].IsDue)
	assert.Equal(t, 1, directory[0].Count)

	assert.Equal(t, "Alice", directory[1].Name)
	assert.Equal(t, 250.0, directory[1].Total)
	assert.Equal(t, 80.0, directory[1].Due)
	assert.True(t, directory[1].IsDue)
	assert.Equal(t, 2, directory[1].Count)
	assert.Equal(t, time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC), directory[1].LastDate)
}

func TestDirectoryDueClassification(t *testing.T) {
	e := newTestEngine(t)
	e.Restore(State{Sales: []domain.SaleRecord{
		{ID: "s1", Date: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			CustomerName: "Settled", Total: 100, AmountPaid: 100},
		{ID: "s2", Date: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			CustomerName: "Rounding", Total: 90.5, AmountPaid: 90},
		{ID: "s3", Date: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			CustomerName: "Owing", Total: 80.51, AmountPaid: 80},
	}})

	byName := map[string]bool{}
	for _, entry := range e.Directory() {
		byName[entry.Name] = entry.IsDue
	}
	assert.False(t, byName["Settled"])
	assert.False(t, byName["Rounding"])
	assert.True(t, byName["Owing"])
}

func TestItemStatsAggregatesAcrossRecords(t *testing.T) {
	e := newTestEngine(t)
	e.Restore(State{Sales: ledgerFixture()})

	stats := e.ItemStats()
	require.Len(t, stats, 2)

	assert.Equal(t, "p1", stats[0].ProductID)
	assert.Equal(t, 5, stats[0].Quantity)
	assert.Equal(t, 500.0, stats[0].Revenue)

	assert.Equal(t, "p2", stats[1].ProductID)
	assert.Equal(t, 1, stats[1].Quantity)
}

func TestItemStatsSubtractsRefunds(t *testing.T) {
	e := newTestEngine(t)
	mustAddProduct(t, e, "A-1", "Widget", 100, 10)
	sale := checkoutOne(t, e, "A-1", 3, "Alice", 285)

	_, err := e.Return(sale.ID, sale.Items[0], 1, "damaged", testSecret)
	require.NoError(t, err)

	stats := e.ItemStats()
	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].Quantity)
	assert.Equal(t, 190.0, stats[0].Revenue)
}
