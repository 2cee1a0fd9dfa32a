package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/First-Work/pk-pos-final/internal/domain"
)

const testSecret = "let-me-in"

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(AuthorizerFunc(func(secret string) bool { return secret == testSecret }))
}

func mustAddProduct(t *testing.T, e *Engine, sku, name string, price float64, stock int) domain.Product {
	t.Helper()
	product, err := e.AddProduct(ProductDraft{SKU: sku, Name: name, Category: "General", Price: price, Stock: stock})
	require.NoError(t, err)
	return product
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	mustAddProduct(t, e, "A-1", "Widget", 100, 10)
	_, err := e.AddLine("A-1", 2, nil)
	require.NoError(t, err)

	snapshot := e.Snapshot()
	require.Len(t, snapshot.Products, 1)
	require.Len(t, snapshot.Cart, 1)

	restored := newTestEngine(t)
	restored.Restore(snapshot)
	require.Equal(t, e.Products(), restored.Products())
	require.Equal(t, e.CartLines(), restored.CartLines())
}

func TestAuthorizeRejectsWrongSecret(t *testing.T) {
	e := newTestEngine(t)
	product := mustAddProduct(t, e, "A-1", "Widget", 100, 10)

	err := e.RemoveProduct(product.ID, "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Len(t, e.Products(), 1)
}
