package models

import (
	"github.com/google/uuid"
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// DateLayout is the calendar-day format stored in invoices.date.
const DateLayout = "2006-01-02"

type Invoice struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Amount     int64     `gorm:"not null;check:chk_invoices_amount,amount > 0" json:"amount"` // cents
	Status     string    `gorm:"type:varchar(16);not null;index" json:"status"`
	Date       string    `gorm:"type:varchar(10);not null;index" json:"date"`
}

// InvoiceRow is an invoice joined with the customer it bills.
type InvoiceRow struct {
	ID       uuid.UUID `json:"id"`
	Amount   int64     `json:"amount"`
	Date     string    `json:"date"`
	Status   string    `json:"status"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	ImageURL string    `json:"image_url"`
}
