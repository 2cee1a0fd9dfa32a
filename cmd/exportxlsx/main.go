// Command exportxlsx renders the persisted ledger state as an Excel
// workbook without going through the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"

	"github.com/First-Work/pk-pos-final/internal/config"
	"github.com/First-Work/pk-pos-final/internal/db"
	"github.com/First-Work/pk-pos-final/internal/domain"
	"github.com/First-Work/pk-pos-final/internal/engine"
	"github.com/First-Work/pk-pos-final/internal/excel"
	"github.com/First-Work/pk-pos-final/internal/kvstore"
)

func main() {
	output := flag.String("o", "ledger.xlsx", "output workbook path")
	customer := flag.String("customer", "", "append a statement sheet for this customer")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	defer pool.Close()

	store := kvstore.NewPostgres(pool)
	var products []domain.Product
	if err := loadKey(ctx, store, kvstore.KeyProducts, &products); err != nil {
		log.Fatalf("load products: %v", err)
	}
	var sales []domain.SaleRecord
	if err := loadKey(ctx, store, kvstore.KeySales, &sales); err != nil {
		log.Fatalf("load sales: %v", err)
	}

	file, err := excel.BuildWorkbook(products, sales)
	if err != nil {
		log.Fatalf("build workbook: %v", err)
	}
	if *customer != "" {
		eng := engine.New(engine.AuthorizerFunc(func(string) bool { return false }))
		eng.Restore(engine.State{Products: products, Sales: sales})
		if err := excel.AddStatementSheet(file, eng.Statement(*customer)); err != nil {
			log.Fatalf("statement sheet: %v", err)
		}
	}
	if err := file.SaveAs(*output); err != nil {
		log.Fatalf("save workbook: %v", err)
	}
	log.Printf("wrote %s (%d products, %d sales)", *output, len(products), len(sales))
}

func loadKey(ctx context.Context, store kvstore.Store, key string, out any) error {
	raw, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
