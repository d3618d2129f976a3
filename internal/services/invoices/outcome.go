package invoices

import "invoice-dashboard-backend/internal/services/validation"

// InvoicesPath is the listing view every successful mutation invalidates.
const InvoicesPath = "/dashboard/invoices"

const (
	MsgCreateInvalid = "Missing Fields. Failed to Create Invoice."
	MsgUpdateInvalid = "Missing Fields. Failed to Update Invoice."
	MsgDeleted       = "Deleted Invoice."
)

type Kind int

const (
	Succeeded Kind = iota
	ValidationFailed
	PersistFailed
)

func (k Kind) String() string {
	switch k {
	case Succeeded:
		return "succeeded"
	case ValidationFailed:
		return "validation_failed"
	case PersistFailed:
		return "persist_failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of a mutation. RedirectTo is set only when the caller
// should navigate away; Errors only when Kind is ValidationFailed.
type Outcome struct {
	Kind       Kind                   `json:"-"`
	Errors     validation.FieldErrors `json:"errors,omitempty"`
	Message    string                 `json:"message,omitempty"`
	RedirectTo string                 `json:"-"`
}

func (o Outcome) OK() bool {
	return o.Kind == Succeeded
}

func invalid(errs validation.FieldErrors, message string) Outcome {
	return Outcome{Kind: ValidationFailed, Errors: errs, Message: message}
}

func failed(message string) Outcome {
	return Outcome{Kind: PersistFailed, Message: message}
}

func redirect(to string) Outcome {
	return Outcome{Kind: Succeeded, RedirectTo: to}
}
