package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/First-Work/pk-pos-final/internal/domain"
	"github.com/First-Work/pk-pos-final/internal/engine"
	"github.com/First-Work/pk-pos-final/internal/kvstore"
	"github.com/First-Work/pk-pos-final/internal/report"
)

// Service orchestrates the engine against its external collaborators: the
// key-value store and the report generator. Every committed mutation
// schedules a state snapshot write; the write never blocks or fails the
// operation itself, but Flush guarantees the store reflects the latest
// committed state before the process exits.
type Service struct {
	engine   *engine.Engine
	store    kvstore.Store
	analyzer report.Analyzer

	saveMu sync.Mutex
	wg     sync.WaitGroup
}

func New(eng *engine.Engine, store kvstore.Store, analyzer report.Analyzer) *Service {
	return &Service{engine: eng, store: store, analyzer: analyzer}
}

// Load restores engine state from the store. Keys that were never written
// restore as empty collections, except products, which falls back to the
// starter catalog on a fresh install.
func (s *Service) Load(ctx context.Context) error {
	state := engine.State{}
	if err := s.loadKey(ctx, kvstore.KeyProducts, &state.Products); err != nil {
		return err
	}
	if err := s.loadKey(ctx, kvstore.KeyCart, &state.Cart); err != nil {
		return err
	}
	if err := s.loadKey(ctx, kvstore.KeySales, &state.Sales); err != nil {
		return err
	}
	if err := s.loadKey(ctx, kvstore.KeyUsers, &state.Users); err != nil {
		return err
	}

	raw, err := s.store.Get(ctx, kvstore.KeyProducts)
	if err != nil {
		return err
	}
	if raw == nil {
		state.Products = engine.SeedProducts()
	}

	s.engine.Restore(state)
	return nil
}

func (s *Service) loadKey(ctx context.Context, key string, out any) error {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s state: %w", key, err)
	}
	return nil
}

func (s *Service) saveSnapshot(ctx context.Context) error {
	// Serialize writers, snapshotting under the lock, so a stale snapshot
	// can never overwrite a newer one.
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	state := s.engine.Snapshot()
	for key, value := range map[string]any{
		kvstore.KeyProducts: state.Products,
		kvstore.KeyCart:     state.Cart,
		kvstore.KeySales:    state.Sales,
		kvstore.KeyUsers:    state.Users,
	} {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s state: %w", key, err)
		}
		if err := s.store.Put(ctx, key, raw); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

func (s *Service) persistAfterMutation() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.saveSnapshot(context.Background()); err != nil {
			log.Printf("persist state: %v", err)
		}
	}()
}

// Flush waits for in-flight persistence and writes a final snapshot.
func (s *Service) Flush(ctx context.Context) error {
	s.wg.Wait()
	return s.saveSnapshot(ctx)
}

// Catalog.

func (s *Service) Products() []domain.Product { return s.engine.Products() }

func (s *Service) LowStock() []domain.Product { return s.engine.LowStock() }

func (s *Service) GetProduct(id string) (domain.Product, error) {
	return s.engine.GetProduct(id)
}

func (s *Service) FindBySKU(sku string) (domain.Product, error) {
	return s.engine.FindBySKU(sku)
}

func (s *Service) AddProduct(draft engine.ProductDraft) (domain.Product, error) {
	product, err := s.engine.AddProduct(draft)
	if err != nil {
		return domain.Product{}, err
	}
	s.persistAfterMutation()
	return product, nil
}

func (s *Service) AdjustStock(productID string, delta int) (domain.Product, error) {
	product, err := s.engine.AdjustStock(productID, delta)
	if err != nil {
		return domain.Product{}, err
	}
	s.persistAfterMutation()
	return product, nil
}

func (s *Service) RemoveProduct(productID, secret string) error {
	if err := s.engine.RemoveProduct(productID, secret); err != nil {
		return err
	}
	s.persistAfterMutation()
	return nil
}

// Cart.

func (s *Service) CartLines() []domain.CartLine { return s.engine.CartLines() }

func (s *Service) CartTotal() float64 { return s.engine.CartTotal() }

func (s *Service) AddLine(sku string, quantity int, priceOverride *float64) (domain.CartLine, error) {
	line, err := s.engine.AddLine(sku, quantity, priceOverride)
	if err != nil {
		return domain.CartLine{}, err
	}
	s.persistAfterMutation()
	return line, nil
}

func (s *Service) RemoveLine(index int) error {
	if err := s.engine.RemoveLine(index); err != nil {
		return err
	}
	s.persistAfterMutation()
	return nil
}

// Checkout and corrections.

func (s *Service) Checkout(paymentMethod, customerName string, amountPaid float64, notes string) (domain.SaleRecord, error) {
	sale, err := s.engine.Checkout(paymentMethod, customerName, amountPaid, notes)
	if err != nil {
		return domain.SaleRecord{}, err
	}
	s.persistAfterMutation()
	return sale, nil
}

func (s *Service) Sales() []domain.SaleRecord { return s.engine.Sales() }

func (s *Service) Void(saleID, secret string) error {
	if err := s.engine.Void(saleID, secret); err != nil {
		return err
	}
	s.persistAfterMutation()
	return nil
}

func (s *Service) Return(originalSaleID string, item domain.CartLine, returnQty int, reason, secret string) (domain.SaleRecord, error) {
	refund, err := s.engine.Return(originalSaleID, item, returnQty, reason, secret)
	if err != nil {
		return domain.SaleRecord{}, err
	}
	s.persistAfterMutation()
	return refund, nil
}

// Ledger views.

func (s *Service) Statement(customerName string) domain.Statement {
	return s.engine.Statement(customerName)
}

func (s *Service) Directory() []domain.CustomerSummary { return s.engine.Directory() }

func (s *Service) ItemStats() []domain.ItemStat { return s.engine.ItemStats() }

// Users.

func (s *Service) RegisterUser(user domain.User) error {
	if err := s.engine.RegisterUser(user); err != nil {
		return err
	}
	s.persistAfterMutation()
	return nil
}

func (s *Service) Login(userID, password string) (domain.User, error) {
	return s.engine.Login(userID, password)
}

func (s *Service) Users() []domain.User { return s.engine.Users() }

// AnalyzeSales produces the free-text analysis of the current ledger. The
// analysis is advisory prose and has no bearing on ledger state.
func (s *Service) AnalyzeSales(ctx context.Context) (string, error) {
	sales := s.engine.Sales()
	if len(sales) == 0 {
		return "No sales data available to analyze yet.", nil
	}
	if s.analyzer == nil {
		return "", fmt.Errorf("no report analyzer configured")
	}
	return s.analyzer.Analyze(ctx, sales, s.engine.Products())
}
