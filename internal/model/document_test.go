package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/ubl-generator/internal/model"
)

func TestNewInvoiceDefaults(t *testing.T) {
	doc := model.NewInvoice()

	assert.Equal(t, model.TypeInvoice, doc.Type)
	assert.Equal(t, "EUR", doc.Currency)
	assert.False(t, doc.BelgianExtension)
	assert.Equal(t, doc.IssueDate.AddDate(0, 0, 30), doc.DueDate)
	assert.Empty(t, doc.Lines())

	totals := doc.Totals()
	assert.True(t, totals.LineExtension.IsZero())
	assert.True(t, totals.TaxTotal.IsZero())
	assert.True(t, totals.LegalMonetaryTotal.IsZero())
}

func TestNewCreditNote(t *testing.T) {
	doc := model.NewCreditNote()
	assert.Equal(t, model.TypeCreditNote, doc.Type)
	assert.Equal(t, "381", doc.Type.TypeCode())
	assert.Equal(t, "CreditNote", doc.Type.Description())
}

func TestDocumentOptions(t *testing.T) {
	issue := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	doc := model.NewInvoice(
		model.WithBelgianExtension(),
		model.WithCurrency("USD"),
		model.WithIssueDate(issue),
	)

	assert.True(t, doc.BelgianExtension)
	assert.Equal(t, "USD", doc.Currency)
	assert.Equal(t, issue, doc.IssueDate)
	assert.Equal(t, issue.AddDate(0, 0, 30), doc.DueDate)
}

func TestAddLineComputesAmounts(t *testing.T) {
	doc := model.NewInvoice()

	line, err := doc.AddLine("consulting", decimal.NewFromInt(10), decimal.NewFromInt(100))
	require.NoError(t, err)

	assert.Equal(t, 1, line.ID)
	assert.Equal(t, "ZZ", line.Unit)
	assert.True(t, line.TaxRate.Equal(decimal.NewFromInt(21)))
	assert.Equal(t, "1000.00", line.LineExtensionAmount.StringFixed(2))
	assert.Equal(t, "210.00", line.TaxAmount.StringFixed(2))

	totals := doc.Totals()
	assert.Equal(t, "1000.00", totals.LineExtension.StringFixed(2))
	assert.Equal(t, "210.00", totals.TaxTotal.StringFixed(2))
	assert.Equal(t, "1210.00", totals.LegalMonetaryTotal.StringFixed(2))
}

func TestAddLineOptions(t *testing.T) {
	doc := model.NewInvoice()

	line, err := doc.AddLine("books", decimal.NewFromInt(5), decimal.NewFromInt(20),
		model.WithUnit("C62"),
		model.WithTaxRate(decimal.NewFromInt(6)),
	)
	require.NoError(t, err)

	assert.Equal(t, "C62", line.Unit)
	assert.True(t, line.TaxRate.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, "6.00", line.TaxAmount.StringFixed(2))
}

func TestAddLineAssignsSequentialIDs(t *testing.T) {
	doc := model.NewInvoice()

	for i := 1; i <= 5; i++ {
		line, err := doc.AddLine("item", decimal.NewFromInt(1), decimal.NewFromInt(10))
		require.NoError(t, err)
		assert.Equal(t, i, line.ID)
	}

	lines := doc.Lines()
	require.Len(t, lines, 5)
	for i, l := range lines {
		assert.Equal(t, i+1, l.ID)
	}
}

func TestAddLineRejectsInvalidInput(t *testing.T) {
	doc := model.NewInvoice()

	_, err := doc.AddLine("", decimal.NewFromInt(1), decimal.NewFromInt(10))
	require.Error(t, err)

	_, err = doc.AddLine("item", decimal.NewFromInt(-1), decimal.NewFromInt(10))
	require.Error(t, err)
	var lineErr *model.LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, "quantity", lineErr.Field)

	_, err = doc.AddLine("item", decimal.NewFromInt(1), decimal.NewFromInt(-10))
	require.Error(t, err)

	_, err = doc.AddLine("item", decimal.NewFromInt(1), decimal.NewFromInt(10),
		model.WithTaxRate(decimal.NewFromInt(-21)))
	require.Error(t, err)

	// nothing was appended
	assert.Empty(t, doc.Lines())
}

func TestTotalsAfterEveryAppend(t *testing.T) {
	doc := model.NewInvoice()

	_, err := doc.AddLine("a", decimal.NewFromInt(10), decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, "1210.00", doc.Totals().LegalMonetaryTotal.StringFixed(2))

	_, err = doc.AddLine("b", decimal.NewFromInt(5), decimal.NewFromInt(100),
		model.WithTaxRate(decimal.NewFromInt(21)))
	require.NoError(t, err)

	totals := doc.Totals()
	assert.Equal(t, "1500.00", totals.LineExtension.StringFixed(2))
	assert.Equal(t, "315.00", totals.TaxTotal.StringFixed(2))
	assert.Equal(t, "1815.00", totals.LegalMonetaryTotal.StringFixed(2))
}

func TestTaxGroupsFirstSeenOrder(t *testing.T) {
	doc := model.NewInvoice()

	mustAddLine(t, doc, "a", 10, 100, 21)
	mustAddLine(t, doc, "b", 1, 50, 6)
	mustAddLine(t, doc, "c", 2, 25, 21)

	groups := doc.TaxGroups()
	require.Len(t, groups, 2)

	assert.True(t, groups[0].Rate.Equal(decimal.NewFromInt(21)))
	assert.Equal(t, "1050.00", groups[0].TaxableAmount.StringFixed(2))
	assert.Equal(t, "220.50", groups[0].TaxAmount.StringFixed(2))

	assert.True(t, groups[1].Rate.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, "50.00", groups[1].TaxableAmount.StringFixed(2))
	assert.Equal(t, "3.00", groups[1].TaxAmount.StringFixed(2))
}

func TestTaxGroupsExactRateEquality(t *testing.T) {
	doc := model.NewInvoice()

	mustAddLineRate(t, doc, "a", "21")
	mustAddLineRate(t, doc, "b", "21.0")

	// 21 and 21.0 are the same rate
	assert.Len(t, doc.TaxGroups(), 1)
}

func TestSetSupplierValidates(t *testing.T) {
	doc := model.NewInvoice()

	err := doc.SetSupplier(model.Party{Name: "", Country: "BE"})
	require.Error(t, err)
	var partyErr *model.PartyError
	require.ErrorAs(t, err, &partyErr)
	assert.Equal(t, "name", partyErr.Field)
	assert.Nil(t, doc.Supplier())

	err = doc.SetSupplier(model.Party{Name: "Acme BV", Country: "BE"})
	require.NoError(t, err)
	require.NotNil(t, doc.Supplier())
	assert.Equal(t, "Acme BV", doc.Supplier().Name)

	// second call replaces
	err = doc.SetSupplier(model.Party{Name: "Other NV", Country: "NL"})
	require.NoError(t, err)
	assert.Equal(t, "Other NV", doc.Supplier().Name)
}

func TestSetCustomerValidates(t *testing.T) {
	doc := model.NewInvoice()

	err := doc.SetCustomer(model.Party{Name: "Client", Country: ""})
	require.Error(t, err)
	assert.Nil(t, doc.Customer())

	err = doc.SetCustomer(model.Party{Name: "Client", Country: "BE"})
	require.NoError(t, err)
	require.NotNil(t, doc.Customer())
}

func TestAttachAndPayment(t *testing.T) {
	doc := model.NewInvoice()
	assert.Nil(t, doc.Attachment())
	assert.Nil(t, doc.Payment())

	doc.Attach("detail.pdf", []byte("%PDF-1.4"))
	require.NotNil(t, doc.Attachment())
	assert.Equal(t, "detail.pdf", doc.Attachment().Filename)

	doc.SetPayment("BE71096123456769", "GKCCBEBB")
	require.NotNil(t, doc.Payment())
	assert.Equal(t, "BE71096123456769", doc.Payment().IBAN)
	assert.Equal(t, "GKCCBEBB", doc.Payment().BIC)
}

func mustAddLine(t *testing.T, doc *model.Document, name string, qty, price, rate int64) {
	t.Helper()
	_, err := doc.AddLine(name, decimal.NewFromInt(qty), decimal.NewFromInt(price),
		model.WithTaxRate(decimal.NewFromInt(rate)))
	require.NoError(t, err)
}

func mustAddLineRate(t *testing.T, doc *model.Document, name, rate string) {
	t.Helper()
	_, err := doc.AddLine(name, decimal.NewFromInt(1), decimal.NewFromInt(100),
		model.WithTaxRate(decimal.RequireFromString(rate)))
	require.NoError(t, err)
}
