package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/First-Work/pk-pos-final/internal/config"
	"github.com/First-Work/pk-pos-final/internal/db"
	"github.com/First-Work/pk-pos-final/internal/engine"
	httpapi "github.com/First-Work/pk-pos-final/internal/http"
	"github.com/First-Work/pk-pos-final/internal/kvstore"
	"github.com/First-Work/pk-pos-final/internal/report"
	"github.com/First-Work/pk-pos-final/internal/service"
)

func main() {
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
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema error: %v", err)
	}

	eng := engine.New(engine.AuthorizerFunc(func(secret string) bool {
		return secret == cfg.AdminPassword
	}))
	svc := service.New(eng, store, report.NewGemini())
	if err := svc.Load(ctx); err != nil {
		log.Fatalf("state load error: %v", err)
	}

	handler := httpapi.NewHandler(svc)
	router := httpapi.NewRouter(handler)

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("ledger engine listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil {
			log.Printf("force close failed: %v", closeErr)
		}
	}

	// Pending snapshot writes must land before the process exits.
	if err := svc.Flush(shutdownCtx); err != nil {
		log.Printf("final state flush failed: %v", err)
	}
}
