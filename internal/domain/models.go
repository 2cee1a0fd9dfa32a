package domain

import "time"

// WalkInCustomer is the ledger name used when a sale has no customer name.
const WalkInCustomer = "Walk-in Customer"

// UnknownCustomer is used on refund records whose original sale no longer exists.
const UnknownCustomer = "Unknown"

type Product struct {
	ID       string  `json:"id"`
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	ImageURL string  `json:"image_url,omitempty"`
}

// CartLine is a product snapshot plus a quantity. Price carries the effective
// unit price for the line, which may differ from the catalog price when a
// manual override or quantity discount applied.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}

// SaleRecord is immutable once created. Total and AmountPaid are independent:
// the outstanding balance of a record is always Total - AmountPaid. Refund
// records carry a negative Total and AmountPaid.
type SaleRecord struct {
	ID            string     `json:"id"`
	Date          time.Time  `json:"date"`
	Items         []CartLine `json:"items"`
	Total         float64    `json:"total"`
	AmountPaid    float64    `json:"amount_paid"`
	PaymentMethod string     `json:"payment_method"`
	CustomerName  string     `json:"customer_name"`
	Notes         string     `json:"notes,omitempty"`
}

func (s SaleRecord) Balance() float64 {
	return s.Total - s.AmountPaid
}

type User struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserID    string `json:"user_id"`
	Password  string `json:"password"`
}

// StatementLine is one row of a customer statement: the record, its
// debit/credit contribution and the running balance after it.
// StatementLine is one row of a customer statement: the record, its
// debit/credit contribution and the running balance after it. IsDue
// classifies the running balance as money actually owed.
type StatementLine struct {
	Sale    SaleRecord `json:"sale"`
	Debit   float64    `json:"debit"`
	Credit  float64    `json:"credit"`
	Balance float64    `json:"balance"`
	IsDue   bool       `json:"is_due"`
}

type Statement struct {
	CustomerName string          `json:"customer_name"`
	Lines        []StatementLine `json:"lines"`
	TotalSales   float64         `json:"total_sales"`
	TotalPaid    float64         `json:"total_paid"`
	TotalDue     float64         `json:"total_due"`
	IsDue        bool            `json:"is_due"`
}

type CustomerSummary struct {
	Name     string    `json:"name"`
	Count    int       `json:"count"`
	Total    float64   `json:"total"`
	Paid     float64   `json:"paid"`
	Due      float64   `json:"due"`
	IsDue    bool      `json:"is_due"`
	LastDate time.Time `json:"last_date"`
}

type ItemStat struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}
