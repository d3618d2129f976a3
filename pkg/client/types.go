package client

// Invoice is one row of the invoice listing. Amount is in cents.
type Invoice struct {
	ID              string `json:"id"`
	Amount          int64  `json:"amount"`
	AmountFormatted string `json:"amount_formatted"`
	Date            string `json:"date"`
	Status          string `json:"status"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ImageURL        string `json:"image_url"`
}

type InvoicePage struct {
	Query      string    `json:"query"`
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
	Invoices   []Invoice `json:"invoices"`
}

type Customer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InvoiceRecord is a stored invoice as returned by the edit endpoint.
type InvoiceRecord struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
	Date       string `json:"date"`
}

type EditForm struct {
	Invoice   InvoiceRecord `json:"invoice"`
	Customers []Customer    `json:"customers"`
}

type Summary struct {
	InvoiceCount  int64     `json:"invoice_count"`
	CustomerCount int64     `json:"customer_count"`
	TotalPaid     string    `json:"total_paid"`
	TotalPending  string    `json:"total_pending"`
	Latest        []Invoice `json:"latest"`
}

// InvoiceInput is a create or update submission. Amount is in dollars.
type InvoiceInput struct {
	CustomerID string
	Amount     string
	Status     string
}

// MutationResult is a successful mutation. RedirectTo is set for create and update.
type MutationResult struct {
	RedirectTo string
	Message    string
}

type ImportRowError struct {
	Row     int                 `json:"row"`
	Errors  map[string][]string `json:"errors"`
	Message string              `json:"message"`
}

type ImportReport struct {
	File     string           `json:"file"`
	Inserted int              `json:"inserted"`
	Rejected []ImportRowError `json:"rejected"`
}
