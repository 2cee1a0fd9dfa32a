package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(Timeout)
	r.Use(CORS)

	r.Get("/healthz", handler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", handler.ListProducts)
		r.Get("/products/low-stock", handler.LowStock)
		r.Get("/products/sku/{sku}", handler.GetProductBySKU)
		r.Get("/products/{id}", handler.GetProduct)
		r.Post("/products", handler.CreateProduct)
		r.Post("/products/{id}/stock", handler.AdjustStock)
		r.Delete("/products/{id}", handler.DeleteProduct)

		r.Get("/cart", handler.GetCart)
		r.Post("/cart/lines", handler.AddCartLine)
		r.Delete("/cart/lines/{index}", handler.RemoveCartLine)

		r.Post("/checkout", handler.Checkout)
		r.Get("/sales", handler.ListSales)
		r.Delete("/sales/{id}", handler.VoidSale)
		r.Post("/sales/{id}/returns", handler.ReturnItem)

		r.Get("/ledger/customers", handler.CustomerDirectory)
		r.Get("/ledger/statement", handler.CustomerStatement)

		r.Get("/analytics/items", handler.ItemStats)
		r.Get("/analytics/report", handler.SalesReport)
		r.Get("/export/workbook", handler.ExportWorkbook)

		r.Post("/users/signup", handler.Signup)
		r.Post("/users/login", handler.Login)
		r.Get("/users", handler.ListUsers)
	})

	return r
}
