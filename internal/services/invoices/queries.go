package invoices

import (
	"context"

	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/repository"

	"golang.org/x/sync/errgroup"
)

const latestInvoices = 5

// EditForm is everything the edit view needs to prefill its form.
type EditForm struct {
	Invoice   *models.Invoice         `json:"invoice"`
	Customers []models.CustomerOption `json:"customers"`
}

type Summary struct {
	InvoiceCount  int64               `json:"invoice_count"`
	CustomerCount int64               `json:"customer_count"`
	TotalPaid     int64               `json:"total_paid"`
	TotalPending  int64               `json:"total_pending"`
	Latest        []models.InvoiceRow `json:"latest"`
}

func (s *Service) Search(ctx context.Context, query string, page int) ([]models.InvoiceRow, error) {
	return s.invoices.SearchInvoices(ctx, query, page)
}

// TotalPages returns the number of listing pages for query.
func (s *Service) TotalPages(ctx context.Context, query string) (int, error) {
	count, err := s.invoices.CountFiltered(ctx, query)
	if err != nil {
		return 0, err
	}
	return int((count + repository.ItemsPerPage - 1) / repository.ItemsPerPage), nil
}

// GetForEdit loads the invoice and the customer list concurrently.
func (s *Service) GetForEdit(ctx context.Context, rawID string) (EditForm, error) {
	id, err := parseID(rawID)
	if err != nil {
		return EditForm{}, err
	}

	var form EditForm
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		invoice, err := s.invoices.GetByID(gctx, id)
		form.Invoice = invoice
		return err
	})
	g.Go(func() error {
		customers, err := s.customers.ListOptions(gctx)
		form.Customers = customers
		return err
	})
	if err := g.Wait(); err != nil {
		return EditForm{}, err
	}
	return form, nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]models.CustomerOption, error) {
	return s.customers.ListOptions(ctx)
}

// Summary collects the dashboard cards and the latest invoices.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	var (
		summary Summary
		totals  []repository.StatusTotal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totals, err = s.invoices.StatusTotals(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.CustomerCount, err = s.customers.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.Latest, err = s.invoices.Latest(gctx, latestInvoices)
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	for _, t := range totals {
		summary.InvoiceCount += t.Count
		switch t.Status {
		case models.StatusPaid:
			summary.TotalPaid += t.Sum
		case models.StatusPending:
			summary.TotalPending += t.Sum
		}
	}
	return summary, nil
}

// History returns the audit trail of one invoice, including deleted ones.
func (s *Service) History(ctx context.Context, rawID string) ([]models.InvoiceAuditLog, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	return s.audit.ListForInvoice(ctx, id)
}
