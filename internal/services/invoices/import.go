package invoices

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"invoice-dashboard-backend/internal/services/validation"

	"go.uber.org/zap"
)

var ErrBadCSV = errors.New("invalid csv")

// RowError reports why one CSV data row was not imported. Row counts data rows from 1.
type RowError struct {
	Row     int                    `json:"row"`
	Errors  validation.FieldErrors `json:"errors,omitempty"`
	Message string                 `json:"message"`
}

type ImportReport struct {
	Inserted int        `json:"inserted"`
	Rejected []RowError `json:"rejected"`
}

var importColumns = map[string]string{
	"customer_id": validation.FieldCustomerID,
	"customerid":  validation.FieldCustomerID,
	"amount":      validation.FieldAmount,
	"status":      validation.FieldStatus,
}

// Import creates one invoice per valid CSV row. Rows run through the same schema
// as Create; invalid rows are reported and skipped.
func (s *Service) Import(ctx context.Context, r io.Reader) (ImportReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ImportReport{}, fmt.Errorf("%w: read header: %v", ErrBadCSV, err)
	}
	columns, err := mapColumns(header)
	if err != nil {
		return ImportReport{}, err
	}

	report := ImportReport{Rejected: []RowError{}}
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			report.Rejected = append(report.Rejected, RowError{Row: row, Message: err.Error()})
			continue
		}
		if strings.TrimSpace(strings.Join(record, "")) == "" {
			continue
		}

		form := formFromRecord(record, columns)
		parsed, fieldErrs := validation.ParseCreate(form)
		if fieldErrs != nil {
			report.Rejected = append(report.Rejected, RowError{Row: row, Errors: fieldErrs, Message: MsgCreateInvalid})
			s.finish(opCreate, invalid(fieldErrs, MsgCreateInvalid))
			continue
		}

		if _, err := s.insert(ctx, parsed); err != nil {
			s.log.Error("import row failed", zap.Int("row", row), zap.Error(err))
			out := s.finish(opCreate, failed(fmt.Sprintf(
				"Database Error: Failed to Create Invoice for customerId=%s", parsed.CustomerID,
			)))
			report.Rejected = append(report.Rejected, RowError{Row: row, Message: out.Message})
			continue
		}
		s.finish(opCreate, Outcome{Kind: Succeeded})
		report.Inserted++
	}

	s.log.Info("invoice import finished",
		zap.Int("inserted", report.Inserted),
		zap.Int("rejected", len(report.Rejected)),
	)
	if report.Inserted > 0 {
		s.revalidate(ctx)
	}
	return report, nil
}

func mapColumns(header []string) (map[string]int, error) {
	columns := map[string]int{}
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if field, ok := importColumns[key]; ok {
			columns[field] = i
		}
	}
	for _, field := range []string{validation.FieldCustomerID, validation.FieldAmount, validation.FieldStatus} {
		if _, ok := columns[field]; !ok {
			return nil, fmt.Errorf("%w: missing column for %s", ErrBadCSV, field)
		}
	}
	return columns, nil
}

func formFromRecord(record []string, columns map[string]int) validation.InvoiceForm {
	cell := func(field string) string {
		i := columns[field]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}
	return validation.InvoiceForm{
		CustomerID: cell(validation.FieldCustomerID),
		Amount:     cell(validation.FieldAmount),
		Status:     cell(validation.FieldStatus),
	}
}
