package engine

import (
	"sync"

	"github.com/First-Work/pk-pos-final/internal/domain"
)

// Authorizer gates destructive operations (void, return, catalog delete).
// The engine never inspects or stores the secret itself.
type Authorizer interface {
	Authorize(secret string) bool
}

// AuthorizerFunc adapts a plain predicate to the Authorizer interface.
type AuthorizerFunc func(secret string) bool

func (f AuthorizerFunc) Authorize(secret string) bool { return f(secret) }

// State is the JSON-serializable snapshot of everything the engine owns.
// It mirrors the four named records of the external key-value store.
type State struct {
	Products []domain.Product    `json:"products"`
	Cart     []domain.CartLine   `json:"cart"`
	Sales    []domain.SaleRecord `json:"sales"`
	Users    []domain.User       `json:"users"`
}

// Engine holds the catalog, cart, sale ledger and user directory behind a
// single mutation lock. Every operation runs to completion under the lock,
// so a checkout or correction can never observe or leave half-applied state.
type Engine struct {
	mu       sync.Mutex
	auth     Authorizer
	products []domain.Product
	cart     []domain.CartLine
	sales    []domain.SaleRecord
	users    []domain.User
}

func New(auth Authorizer) *Engine {
	return &Engine{auth: auth}
}

// Restore replaces all engine state with a previously persisted snapshot.
func (e *Engine) Restore(state State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.products = append([]domain.Product(nil), state.Products...)
	e.cart = append([]domain.CartLine(nil), state.Cart...)
	e.sales = append([]domain.SaleRecord(nil), state.Sales...)
	e.users = append([]domain.User(nil), state.Users...)
}

// Snapshot returns a copy of all engine state for persistence.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		Products: append([]domain.Product(nil), e.products...),
		Cart:     append([]domain.CartLine(nil), e.cart...),
		Sales:    append([]domain.SaleRecord(nil), e.sales...),
		Users:    append([]domain.User(nil), e.users...),
	}
}

func (e *Engine) authorize(secret string) error {
	if e.auth == nil || !e.auth.Authorize(secret) {
		return ErrUnauthorized
	}
	return nil
}
