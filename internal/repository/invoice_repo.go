package repository

import (
	"context"
	"errors"
	"strings"

	"invoice-dashboard-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemsPerPage is the page size of the filtered invoice listing.
const ItemsPerPage = 6

var ErrNotFound = errors.New("not found")

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// WithTx returns a copy bound to tx.
func (r *InvoiceRepository) WithTx(tx *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: tx}
}

func (r *InvoiceRepository) Insert(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO invoices (id, customer_id, amount, status, date) VALUES (?, ?, ?, ?, ?)`,
		invoice.ID,
		invoice.CustomerID,
		invoice.Amount,
		invoice.Status,
		invoice.Date,
	).Error
}

// Update rewrites customer, amount and status of an existing invoice. id and date are never touched.
func (r *InvoiceRepository) Update(ctx context.Context, id, customerID uuid.UUID, amount int64, status string) error {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE invoices SET customer_id = ?, amount = ?, status = ? WHERE id = ?`,
		customerID,
		amount,
		status,
		id,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM invoices WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID fetch a single invoice by ID
func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// SearchInvoices returns one page of invoices whose customer, amount, date or status contains query.
func (r *InvoiceRepository) SearchInvoices(ctx context.Context, query string, page int) ([]models.InvoiceRow, error) {
	if page < 1 {
		page = 1
	}

	var rows []models.InvoiceRow
	err := r.filtered(ctx, query).
		Select("invoices.id, invoices.amount, invoices.date, invoices.status, customers.name, customers.email, customers.image_url").
		Order("invoices.date DESC, invoices.id DESC").
		Limit(ItemsPerPage).
		Offset((page - 1) * ItemsPerPage).
		Scan(&rows).Error
	return rows, err
}

// CountFiltered counts the invoices SearchInvoices would page through.
func (r *InvoiceRepository) CountFiltered(ctx context.Context, query string) (int64, error) {
	var count int64
	err := r.filtered(ctx, query).Count(&count).Error
	return count, err
}

// Latest returns the most recent invoices with their customers.
func (r *InvoiceRepository) Latest(ctx context.Context, limit int) ([]models.InvoiceRow, error) {
	var rows []models.InvoiceRow
	err := r.db.WithContext(ctx).
		Table("invoices").
		Joins("JOIN customers ON invoices.customer_id = customers.id").
		Select("invoices.id, invoices.amount, invoices.date, invoices.status, customers.name, customers.email, customers.image_url").
		Order("invoices.date DESC, invoices.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

type StatusTotal struct {
	Status string
	Count  int64
	Sum    int64
}

// StatusTotals aggregates invoice count and amount per status.
func (r *InvoiceRepository) StatusTotals(ctx context.Context) ([]StatusTotal, error) {
	var rows []StatusTotal
	err := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(amount),0) as sum").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *InvoiceRepository) filtered(ctx context.Context, query string) *gorm.DB {
	dbQuery := r.db.WithContext(ctx).
		Table("invoices").
		Joins("JOIN customers ON invoices.customer_id = customers.id")

	query = strings.TrimSpace(query)
	if query == "" {
		return dbQuery
	}

	like := "%" + strings.ToLower(query) + "%"
	return dbQuery.Where(
		"LOWER(customers.name) LIKE ? OR LOWER(customers.email) LIKE ? OR CAST(invoices.amount AS TEXT) LIKE ? OR invoices.date LIKE ? OR LOWER(invoices.status) LIKE ?",
		like, like, like, like, like,
	)
}
