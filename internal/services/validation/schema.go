// Package validation holds the invoice form schema shared by the create and update paths.
package validation

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"invoice-dashboard-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MsgCustomer = "Please select a customer."
	MsgAmount   = "Please enter an amount greater than $0."
	MsgStatus   = "Please select an invoice status."
	MsgID       = "Missing invoice id."
)

const (
	FieldID         = "id"
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

var fieldMessages = map[string]string{
	FieldID:         MsgID,
	FieldCustomerID: MsgCustomer,
	FieldAmount:     MsgAmount,
	FieldStatus:     MsgStatus,
}

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// FieldErrors maps a form field to its ordered error messages.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// InvoiceForm is a raw form submission. Every value is still an untrusted string.
type InvoiceForm struct {
	CustomerID string `form:"customerId" json:"customerId"`
	Amount     string `form:"amount" json:"amount"`
	Status     string `form:"status" json:"status"`
}

// Invoice is a form that passed the schema.
type Invoice struct {
	ID         string
	CustomerID uuid.UUID
	Amount     decimal.Decimal
	Status     string
}

// AmountInCents converts the dollar amount to integer cents, rounding half away from zero.
func (i Invoice) AmountInCents() int64 {
	return toCents(i.Amount)
}

// toCents returns 0 for anything that does not round to a positive int64 number of cents.
func toCents(amount decimal.Decimal) int64 {
	if !amount.IsPositive() {
		return 0
	}
	// order of magnitude, checked first so exponent input never forces a huge rescale
	mag := int64(amount.NumDigits()) + int64(amount.Exponent())
	if mag > 18 || mag < -2 {
		return 0
	}
	cents := amount.Mul(hundred).Round(0)
	if cents.GreaterThan(maxCents) {
		return 0
	}
	return cents.IntPart()
}

type invoiceSchema struct {
	ID         string `json:"id" validate:"required"`
	CustomerID string `json:"customerId" validate:"required,uuid"`
	Amount     int64  `json:"amount" validate:"gt=0"` // cents
	Status     string `json:"status" validate:"oneof=pending paid"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseCreate validates a create submission. id and date are assigned by the server and never read from the form.
func ParseCreate(form InvoiceForm) (Invoice, FieldErrors) {
	schema, amount := coerce("", form)
	return check(validate.StructExcept(schema, "ID"), schema, amount)
}

// ParseUpdate validates an update submission against the invoice identified by id.
func ParseUpdate(id string, form InvoiceForm) (Invoice, FieldErrors) {
	schema, amount := coerce(id, form)
	return check(validate.Struct(schema), schema, amount)
}

func coerce(id string, form InvoiceForm) (*invoiceSchema, decimal.Decimal) {
	amount, err := decimal.NewFromString(strings.TrimSpace(form.Amount))
	if err != nil {
		amount = decimal.Zero
	}
	return &invoiceSchema{
		ID:         strings.TrimSpace(id),
		CustomerID: strings.TrimSpace(form.CustomerID),
		Amount:     toCents(amount),
		Status:     strings.TrimSpace(form.Status),
	}, amount
}

func check(err error, schema *invoiceSchema, amount decimal.Decimal) (Invoice, FieldErrors) {
	if err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			panic(err) // only InvalidValidationError, which means schema is not a struct pointer
		}
		fieldErrs := FieldErrors{}
		for _, fe := range verrs {
			fieldErrs.Add(fe.Field(), fieldMessages[fe.Field()])
		}
		return Invoice{}, fieldErrs
	}

	return Invoice{
		ID:         schema.ID,
		CustomerID: uuid.MustParse(schema.CustomerID),
		Amount:     amount,
		Status:     schema.Status,
	}, nil
}

// IsStatus reports whether s is an accepted invoice status.
func IsStatus(s string) bool {
	return s == models.StatusPending || s == models.StatusPaid
}
