package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/First-Work/pk-pos-final/internal/domain"
	"github.com/First-Work/pk-pos-final/internal/engine"
	"github.com/First-Work/pk-pos-final/internal/kvstore"
)

const testSecret = "let-me-in"

type stubAnalyzer struct {
	report string
	err    error
}

func (s stubAnalyzer) Analyze(context.Context, []domain.SaleRecord, []domain.Product) (string, error) {
	return s.report, s.err
}

func newTestService(store kvstore.Store) *Service {
	eng := engine.New(engine.AuthorizerFunc(func(secret string) bool { return secret == testSecret }))
	return New(eng, store, stubAnalyzer{report: "all good"})
}

func TestLoadSeedsFreshStore(t *testing.T) {
	svc := newTestService(kvstore.NewMemory())
	require.NoError(t, svc.Load(context.Background()))

	products := svc.Products()
	require.NotEmpty(t, products)
	assert.Equal(t, engine.SeedProducts()[0].SKU, products[0].SKU)
}

func TestLoadRestoresPersistedState(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()

	products := []domain.Product{{ID: "p1", SKU: "A-1", Name: "Widget", Category: "General", Price: 100, Stock: 7}}
	raw, err := json.Marshal(products)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, kvstore.KeyProducts, raw))

	svc := newTestService(store)
	require.NoError(t, svc.Load(ctx))

	got := svc.Products()
	require.Len(t, got, 1)
	assert.Equal(t, "A-1", got[0].SKU)
}

func TestMutationsPersistAndFlush(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	svc := newTestService(store)
	require.NoError(t, svc.Load(ctx))

	product, err := svc.AddProduct(engine.ProductDraft{SKU: "Z-9", Name: "Zapper", Category: "General", Price: 42, Stock: 3})
	require.NoError(t, err)
	_, err = svc.AddLine("Z-9", 1, nil)
	require.NoError(t, err)
	sale, err := svc.Checkout("Cash", "Alice", 42, "")
	require.NoError(t, err)

	require.NoError(t, svc.Flush(ctx))

	var storedSales []domain.SaleRecord
	raw, err := store.Get(ctx, kvstore.KeySales)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &storedSales))
	require.Len(t, storedSales, 1)
	assert.Equal(t, sale.ID, storedSales[0].ID)

	var storedProducts []domain.Product
	raw, err = store.Get(ctx, kvstore.KeyProducts)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &storedProducts))
	found := false
	for _, p := range storedProducts {
		if p.ID == product.ID {
			found = true
			assert.Equal(t, 2, p.Stock)
		}
	}
	assert.True(t, found, "sold product missing from persisted catalog")

	var storedCart []domain.CartLine
	raw, err = store.Get(ctx, kvstore.KeyCart)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &storedCart))
	assert.Empty(t, storedCart)
}

func TestVoidPersists(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	svc := newTestService(store)
	require.NoError(t, svc.Load(ctx))

	_, err := svc.AddProduct(engine.ProductDraft{SKU: "Z-9", Name: "Zapper", Category: "General", Price: 42, Stock: 3})
	require.NoError(t, err)
	_, err = svc.AddLine("Z-9", 1, nil)
	require.NoError(t, err)
	sale, err := svc.Checkout("Cash", "Alice", 42, "")
	require.NoError(t, err)

	require.NoError(t, svc.Void(sale.ID, testSecret))
	require.NoError(t, svc.Flush(ctx))

	var storedSales []domain.SaleRecord
	raw, err := store.Get(ctx, kvstore.KeySales)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &storedSales))
	assert.Empty(t, storedSales)
}

func TestAnalyzeSales(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(kvstore.NewMemory())
	require.NoError(t, svc.Load(ctx))

	// Nothing sold yet.
	text, err := svc.AnalyzeSales(ctx)
	require.NoError(t, err)
	assert.Equal(t, "No sales data available to analyze yet.", text)

	_, err = svc.AddLine(engine.SeedProducts()[0].SKU, 1, nil)
	require.NoError(t, err)
	_, err = svc.Checkout("Cash", "", 650, "")
	require.NoError(t, err)

	text, err = svc.AnalyzeSales(ctx)
	require.NoError(t, err)
	assert.Equal(t, "all good", text)
}
