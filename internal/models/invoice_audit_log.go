package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

type InvoiceAuditLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	InvoiceID uuid.UUID      `gorm:"type:uuid;index"`
	Action    string         `gorm:"type:varchar(16);not null"`
	Changes   datatypes.JSON
	CreatedAt time.Time
}
