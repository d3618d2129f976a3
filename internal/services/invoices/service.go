package invoices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"invoice-dashboard-backend/internal/cache"
	"invoice-dashboard-backend/internal/clock"
	"invoice-dashboard-backend/internal/metrics"
	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/services/validation"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrInvalidID = errors.New("invalid invoice id")

const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Revalidator cache.Revalidator
	Metrics     *metrics.Metrics `optional:"true"`
	Clock       clock.Clock      `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	invoices    *repository.InvoiceRepository
	customers   *repository.CustomerRepository
	audit       *repository.AuditLogRepository
	revalidator cache.Revalidator
	metrics     *metrics.Metrics
	clock       clock.Clock
	newID       func() uuid.UUID
}

func New(p Params) *Service {
	clk := p.Clock
	if clk == nil {
		clk = clock.System()
	}
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("invoices.service"),
		invoices:    repository.NewInvoiceRepository(p.DB),
		customers:   repository.NewCustomerRepository(p.DB),
		audit:       repository.NewAuditLogRepository(p.DB),
		revalidator: p.Revalidator,
		metrics:     p.Metrics,
		clock:       clk,
		newID:       uuid.New,
	}
}

// Create validates form, stores a new invoice dated today and invalidates the listing.
func (s *Service) Create(ctx context.Context, form validation.InvoiceForm) Outcome {
	parsed, fieldErrs := validation.ParseCreate(form)
	if fieldErrs != nil {
		s.log.Debug("create rejected", zap.Any("errors", fieldErrs))
		return s.finish(opCreate, invalid(fieldErrs, MsgCreateInvalid))
	}

	if _, err := s.insert(ctx, parsed); err != nil {
		s.log.Error("create invoice failed",
			zap.String("customer_id", parsed.CustomerID.String()),
			zap.Error(err),
		)
		return s.finish(opCreate, failed(fmt.Sprintf(
			"Database Error: Failed to Create Invoice for customerId=%s", parsed.CustomerID,
		)))
	}

	s.revalidate(ctx)
	return s.finish(opCreate, redirect(InvoicesPath))
}

// Update rewrites customer, amount and status of invoice id. The stored date is kept.
func (s *Service) Update(ctx context.Context, id string, form validation.InvoiceForm) Outcome {
	parsed, fieldErrs := validation.ParseUpdate(id, form)
	if fieldErrs != nil {
		s.log.Debug("update rejected", zap.String("invoice_id", id), zap.Any("errors", fieldErrs))
		return s.finish(opUpdate, invalid(fieldErrs, MsgUpdateInvalid))
	}

	if err := s.update(ctx, parsed); err != nil {
		s.log.Error("update invoice failed",
			zap.String("invoice_id", parsed.ID),
			zap.String("customer_id", parsed.CustomerID.String()),
			zap.Error(err),
		)
		return s.finish(opUpdate, failed(fmt.Sprintf(
			"Database Error: Failed to Update Invoice for customerId=%s, invoiceId=%s", parsed.CustomerID, parsed.ID,
		)))
	}

	s.revalidate(ctx)
	return s.finish(opUpdate, redirect(InvoicesPath))
}

// Delete removes invoice id. Success carries a message and no redirect.
func (s *Service) Delete(ctx context.Context, id string) Outcome {
	if err := s.delete(ctx, id); err != nil {
		s.log.Error("delete invoice failed", zap.String("invoice_id", id), zap.Error(err))
		return s.finish(opDelete, failed(fmt.Sprintf(
			"Database Error: Failed to Delete Invoice for invoiceId=%s", id,
		)))
	}

	s.revalidate(ctx)
	return s.finish(opDelete, Outcome{Kind: Succeeded, Message: MsgDeleted})
}

func (s *Service) insert(ctx context.Context, parsed validation.Invoice) (*models.Invoice, error) {
	invoice := &models.Invoice{
		ID:         s.newID(),
		CustomerID: parsed.CustomerID,
		Amount:     parsed.AmountInCents(),
		Status:     parsed.Status,
		Date:       s.clock.Now().UTC().Format(models.DateLayout),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.invoices.WithTx(tx).Insert(ctx, invoice); err != nil {
			return err
		}
		return s.record(ctx, tx, invoice.ID, models.AuditActionCreate, invoice)
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *Service) update(ctx context.Context, parsed validation.Invoice) error {
	id, err := parseID(parsed.ID)
	if err != nil {
		return err
	}

	amount := parsed.AmountInCents()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.invoices.WithTx(tx).Update(ctx, id, parsed.CustomerID, amount, parsed.Status); err != nil {
			return err
		}
		return s.record(ctx, tx, id, models.AuditActionUpdate, map[string]any{
			"customer_id": parsed.CustomerID,
			"amount":      amount,
			"status":      parsed.Status,
		})
	})
}

func (s *Service) delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.invoices.WithTx(tx)
		existing, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		return s.record(ctx, tx, id, models.AuditActionDelete, existing)
	})
}

func (s *Service) record(ctx context.Context, tx *gorm.DB, invoiceID uuid.UUID, action string, changes any) error {
	payload, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("marshal audit changes: %w", err)
	}
	return s.audit.WithTx(tx).Insert(ctx, &models.InvoiceAuditLog{
		ID:        uuid.New(),
		InvoiceID: invoiceID,
		Action:    action,
		Changes:   datatypes.JSON(payload),
		CreatedAt: s.clock.Now().UTC(),
	})
}

// revalidate never fails the mutation; a stale listing expires with the cache TTL.
func (s *Service) revalidate(ctx context.Context) {
	err := s.revalidator.Revalidate(ctx, InvoicesPath)
	s.metrics.RecordRevalidation(InvoicesPath, err)
	if err != nil {
		s.log.Warn("cache revalidation failed", zap.String("path", InvoicesPath), zap.Error(err))
	}
}

func (s *Service) finish(op string, out Outcome) Outcome {
	s.metrics.RecordMutation(op, out.Kind.String())
	return out
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}
