package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const customerID = "3958dc9e-787f-4377-85e9-fec4b6a6442a"

func TestParseCreate(t *testing.T) {
	t.Run("valid form", func(t *testing.T) {
		inv, errs := ParseCreate(InvoiceForm{CustomerID: customerID, Amount: "101", Status: "pending"})
		require.Nil(t, errs)
		assert.Equal(t, customerID, inv.CustomerID.String())
		assert.Equal(t, "pending", inv.Status)
		assert.Equal(t, int64(10100), inv.AmountInCents())
		assert.Empty(t, inv.ID)
	})

	t.Run("empty form reports every field at once", func(t *testing.T) {
		_, errs := ParseCreate(InvoiceForm{})
		assert.Equal(t, FieldErrors{
			FieldCustomerID: {MsgCustomer},
			FieldAmount:     {MsgAmount},
			FieldStatus:     {MsgStatus},
		}, errs)
	})

	t.Run("only status selected", func(t *testing.T) {
		_, errs := ParseCreate(InvoiceForm{Status: "paid"})
		assert.Equal(t, FieldErrors{
			FieldCustomerID: {MsgCustomer},
			FieldAmount:     {MsgAmount},
		}, errs)
	})

	t.Run("customer that is not an id", func(t *testing.T) {
		_, errs := ParseCreate(InvoiceForm{CustomerID: "acme", Amount: "1", Status: "paid"})
		assert.Equal(t, FieldErrors{FieldCustomerID: {MsgCustomer}}, errs)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, errs := ParseCreate(InvoiceForm{CustomerID: customerID, Amount: "1", Status: "overdue"})
		assert.Equal(t, FieldErrors{FieldStatus: {MsgStatus}}, errs)
	})
}

func TestParseCreateRejectsNonPositiveAmounts(t *testing.T) {
	for _, amount := range []string{
		"0", "-1", "-0.01", "", "   ", "abc", "12abc", "NaN",
		"0.001", "0.004", "1e-9", "-1e30",
		"1e17", "1e30", "1e1000000000", "92233720368547758.08", "100000000000000000",
	} {
		t.Run(amount, func(t *testing.T) {
			_, errs := ParseCreate(InvoiceForm{CustomerID: customerID, Amount: amount, Status: "paid"})
			assert.Equal(t, FieldErrors{FieldAmount: {MsgAmount}}, errs)
		})
	}
}

func TestAmountInCents(t *testing.T) {
	tests := []struct {
		amount string
		want   int64
	}{
		{"1", 100},
		{"0.01", 1},
		{"19.99", 1999},
		{"0.1", 10},
		{"1234.565", 123457},
		{"35", 3500},
		{" 42.5 ", 4250},
		{"0.005", 1},
		{"1e2", 10000},
		{"92233720368547758.07", math.MaxInt64},
	}

	for _, tc := range tests {
		inv, errs := ParseCreate(InvoiceForm{CustomerID: customerID, Amount: tc.amount, Status: "paid"})
		require.Nil(t, errs, tc.amount)
		assert.Equal(t, tc.want, inv.AmountInCents(), "amount %q", tc.amount)
	}
}

func TestParseUpdate(t *testing.T) {
	t.Run("carries the route id", func(t *testing.T) {
		inv, errs := ParseUpdate("88b297fe-4118-4ada-be58-a3ee89c33129", InvoiceForm{CustomerID: customerID, Amount: "35", Status: "paid"})
		require.Nil(t, errs)
		assert.Equal(t, "88b297fe-4118-4ada-be58-a3ee89c33129", inv.ID)
		assert.Equal(t, int64(3500), inv.AmountInCents())
	})

	t.Run("missing id", func(t *testing.T) {
		_, errs := ParseUpdate(" ", InvoiceForm{CustomerID: customerID, Amount: "35", Status: "paid"})
		assert.Equal(t, FieldErrors{FieldID: {MsgID}}, errs)
	})

	t.Run("amount past the cents range", func(t *testing.T) {
		_, errs := ParseUpdate("88b297fe-4118-4ada-be58-a3ee89c33129", InvoiceForm{CustomerID: customerID, Amount: "1e17", Status: "paid"})
		assert.Equal(t, FieldErrors{FieldAmount: {MsgAmount}}, errs)
	})

	t.Run("missing amount", func(t *testing.T) {
		_, errs := ParseUpdate("88b297fe-4118-4ada-be58-a3ee89c33129", InvoiceForm{CustomerID: customerID, Status: "pending"})
		assert.Equal(t, FieldErrors{FieldAmount: {MsgAmount}}, errs)
	})
}

func TestIsStatus(t *testing.T) {
	assert.True(t, IsStatus("pending"))
	assert.True(t, IsStatus("paid"))
	assert.False(t, IsStatus("Paid"))
	assert.False(t, IsStatus(""))
}
