package domain

import "time"

// RawTransactionLine is one line item exactly as it appears in the source
// workbook: one product, one quantity, one invoice. Nothing is validated at
// this stage; quantities may be negative (returns), prices may be zero or
// negative (corrections), and the customer identifier may be missing
// entirely (guest or unattributed checkouts).
type RawTransactionLine struct {
	// InvoiceNo is the invoice/order identifier. Many lines share one
	// invoice number; cancelled invoices in the reference dataset carry a
	// "C" prefix and negative quantities.
	InvoiceNo string `json:"invoice_no"`

	// StockCode is the source's product code. Kept for traceability only;
	// analysis groups by Description.
	StockCode string `json:"stock_code"`

	// Description is the free-text product name. Two different strings for
	// the same physical product count as two products.
	Description string `json:"description"`

	// Quantity of units on this line. May be zero or negative in raw data.
	Quantity int `json:"quantity"`

	// UnitPrice in the sheet's native currency. May be <= 0 in raw data.
	UnitPrice float64 `json:"unit_price"`

	// CustomerID is the numeric customer identifier. HasCustomerID is false
	// when the source cell is blank.
	CustomerID    int  `json:"customer_id"`
	HasCustomerID bool `json:"has_customer_id"`

	// InvoiceDate is the timestamp of the invoice, local to the source.
	InvoiceDate time.Time `json:"invoice_date"`

	// Country the order was shipped to.
	Country string `json:"country"`
}

// CleanTransactionLine is a sanitized line with its derived attributes. Every
// value of this type satisfies Quantity > 0, UnitPrice > 0 and carries a real
// customer identifier; rows that cannot meet that contract are dropped during
// sanitization, never repaired.
type CleanTransactionLine struct {
	InvoiceNo   string    `json:"invoice_no"`
	StockCode   string    `json:"stock_code"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity" validate:"gt=0"`
	UnitPrice   float64   `json:"unit_price" validate:"gt=0"`
	CustomerID  int       `json:"customer_id"`
	InvoiceDate time.Time `json:"invoice_date"`
	Country     string    `json:"country"`

	// TotalPrice = Quantity * UnitPrice, computed once at derivation. No
	// rounding is applied; precision is the product of the inputs.
	TotalPrice float64 `json:"total_price" validate:"gt=0"`

	// YearMonth is the invoice timestamp truncated to calendar month in
	// zero-padded "YYYY-MM" form, so lexicographic order is time order.
	YearMonth string `json:"year_month"`

	// Month is the invoice timestamp's month number, 1-12.
	Month int `json:"month" validate:"min=1,max=12"`

	// DayOfWeek is the canonical Monday-first weekday of the invoice.
	DayOfWeek Weekday `json:"day_of_week"`

	// Hour is the invoice timestamp's hour of day, 0-23, local to the
	// stored timestamp. No timezone conversion is performed.
	Hour int `json:"hour" validate:"min=0,max=23"`
}
