package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/First-Work/pk-pos-final/internal/domain"
	"github.com/First-Work/pk-pos-final/internal/engine"
	"github.com/First-Work/pk-pos-final/internal/excel"
	"github.com/First-Work/pk-pos-final/internal/service"
)

const adminSecretHeader = "X-Admin-Secret"

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (h *Handler) ListProducts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Products())
}

func (h *Handler) LowStock(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.LowStock())
}

func (h *Handler) GetProductBySKU(w http.ResponseWriter, r *http.Request) {
	product, err := h.svc.FindBySKU(chi.URLParam(r, "sku"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.svc.GetProduct(chi.URLParam(r, "id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SKU      string  `json:"sku"`
		Name     string  `json:"name"`
		Category string  `json:"category"`
		Price    float64 `json:"price"`
		Stock    int     `json:"stock"`
		ImageURL string  `json:"image_url"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	product, err := h.svc.AddProduct(engine.ProductDraft{
		SKU:      body.SKU,
		Name:     body.Name,
		Category: body.Category,
		Price:    body.Price,
		Stock:    body.Stock,
		ImageURL: body.ImageURL,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Delta int `json:"delta"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	product, err := h.svc.AdjustStock(chi.URLParam(r, "id"), body.Delta)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveProduct(chi.URLParam(r, "id"), r.Header.Get(adminSecretHeader)); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetCart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"lines": h.svc.CartLines(),
		"total": h.svc.CartTotal(),
	})
}

func (h *Handler) AddCartLine(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SKU      string   `json:"sku"`
		Quantity int      `json:"quantity"`
		Price    *float64 `json:"price"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	line, err := h.svc.AddLine(body.SKU, body.Quantity, body.Price)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, line)
}

func (h *Handler) RemoveCartLine(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid line index")
		return
	}
	if err := h.svc.RemoveLine(index); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PaymentMethod string  `json:"payment_method"`
		CustomerName  string  `json:"customer_name"`
		AmountPaid    float64 `json:"amount_paid"`
		Notes         string  `json:"notes"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sale, err := h.svc.Checkout(body.PaymentMethod, body.CustomerName, body.AmountPaid, body.Notes)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sale)
}

func (h *Handler) ListSales(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Sales())
}

func (h *Handler) VoidSale(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Void(chi.URLParam(r, "id"), r.Header.Get(adminSecretHeader)); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ReturnItem(w http.ResponseWriter, r *http.Request) {
	saleID := chi.URLParam(r, "id")
	var body struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
		Reason    string `json:"reason"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, saleExists, itemSold := h.findSoldItem(saleID, body.ProductID)
	if saleExists && !itemSold {
		writeEngineError(w, fmt.Errorf("%w: item %s not found in sale %s", engine.ErrNotFound, body.ProductID, saleID))
		return
	}
	if !saleExists {
		// The original record may have been trimmed from the ledger; fall
		// back to the catalog so the refund can still be booked.
		product, err := h.svc.GetProduct(body.ProductID)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		item = domain.CartLine{Product: product, Quantity: body.Quantity}
	}

	refund, err := h.svc.Return(saleID, item, body.Quantity, body.Reason, r.Header.Get(adminSecretHeader))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, refund)
}

// findSoldItem reports whether the sale exists at all and, if so, whether it
// contains the product. A refund may only fall back to the catalog when the
// sale record itself is gone.
func (h *Handler) findSoldItem(saleID, productID string) (item domain.CartLine, saleExists, itemSold bool) {
	for _, sale := range h.svc.Sales() {
		if sale.ID != saleID {
			continue
		}
		for _, soldItem := range sale.Items {
			if soldItem.ID == productID {
				return soldItem, true, true
			}
		}
		return domain.CartLine{}, true, false
	}
	return domain.CartLine{}, false, false
}

func (h *Handler) CustomerDirectory(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Directory())
}

func (h *Handler) CustomerStatement(w http.ResponseWriter, r *http.Request) {
	customer := r.URL.Query().Get("customer")
	writeJSON(w, http.StatusOK, h.svc.Statement(customer))
}

func (h *Handler) ItemStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ItemStats())
}

func (h *Handler) SalesReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.AnalyzeSales(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"report": report})
}

func (h *Handler) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	file, err := excel.BuildWorkbook(h.svc.Products(), h.svc.Sales())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if customer := strings.TrimSpace(r.URL.Query().Get("customer")); customer != "" {
		if err := excel.AddStatementSheet(file, h.svc.Statement(customer)); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="ledger.xlsx"`)
	if err := file.Write(w); err != nil {
		log.Printf("write workbook response: %v", err)
	}
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var body domain.User
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.RegisterUser(body); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user_id": body.UserID})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID   string `json:"user_id"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.svc.Login(body.UserID, body.Password)
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeEngineError(w, err)
		return
	}
	user.Password = ""
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) ListUsers(w http.ResponseWriter, _ *http.Request) {
	users := h.svc.Users()
	for i := range users {
		users[i].Password = ""
	}
	writeJSON(w, http.StatusOK, users)
}

func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrValidation),
		errors.Is(err, engine.ErrEmptyCart),
		errors.Is(err, engine.ErrInsufficientStock),
		errors.Is(err, engine.ErrInvalidOperation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrUnauthorized):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, engine.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrDuplicateSKU):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
