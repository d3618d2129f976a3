package repository

import (
	"context"

	"invoice-dashboard-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) WithTx(tx *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: tx}
}

func (r *AuditLogRepository) Insert(ctx context.Context, entry *models.InvoiceAuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListForInvoice returns the audit trail of one invoice, oldest first.
func (r *AuditLogRepository) ListForInvoice(ctx context.Context, invoiceID uuid.UUID) ([]models.InvoiceAuditLog, error) {
	var entries []models.InvoiceAuditLog
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}
