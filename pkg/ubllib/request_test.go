package ubllib_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/ubl-generator/pkg/ubllib"
)

const fullRequest = `{
	"number": "INV-2026-042",
	"issue_date": "2026-03-15",
	"due_date": "2026-03-31",
	"currency": "EUR",
	"belgian_extension": true,
	"supplier": {"name": "Acme BV", "country": "BE", "vat_id": "BE0123456749"},
	"customer": {"name": "Client NV", "country": "BE"},
	"lines": [
		{"name": "consulting", "quantity": 10, "unit_price": 100},
		{"name": "books", "quantity": 2.5, "unit_price": 20.40, "tax_rate": "6%", "unit": "C62"}
	],
	"payment": {"iban": "BE71096123456769", "bic": "GKCCBEBB"}
}`

func TestParseDocumentJSON(t *testing.T) {
	req, err := ubllib.ParseDocumentJSON([]byte(fullRequest))
	require.NoError(t, err)

	assert.Equal(t, "INV-2026-042", req.Number)
	assert.True(t, req.BelgianExtension)
	require.NotNil(t, req.Supplier)
	assert.Equal(t, "Acme BV", req.Supplier.Name)
	require.Len(t, req.Lines, 2)

	_, err = ubllib.ParseDocumentJSON([]byte("{not json"))
	require.Error(t, err)
}

func TestDocumentRequestBuild(t *testing.T) {
	req, err := ubllib.ParseDocumentJSON([]byte(fullRequest))
	require.NoError(t, err)

	doc, err := req.Build(ubllib.TypeInvoice)
	require.NoError(t, err)

	assert.Equal(t, ubllib.TypeInvoice, doc.Type)
	assert.Equal(t, "INV-2026-042", doc.Number)
	assert.True(t, doc.BelgianExtension)
	assert.Equal(t, "2026-03-15", doc.IssueDate.Format("2006-01-02"))
	assert.Equal(t, "2026-03-31", doc.DueDate.Format("2006-01-02"))

	lines := doc.Lines()
	require.Len(t, lines, 2)

	assert.Equal(t, "consulting", lines[0].Name)
	assert.True(t, lines[0].TaxRate.Equal(decimal.NewFromInt(21)))
	assert.Equal(t, "ZZ", lines[0].Unit)

	assert.Equal(t, "books", lines[1].Name)
	assert.True(t, lines[1].Quantity.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, lines[1].UnitPrice.Equal(decimal.RequireFromString("20.4")))
	assert.True(t, lines[1].TaxRate.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, "C62", lines[1].Unit)

	require.NotNil(t, doc.Payment())
	assert.Equal(t, "BE71096123456769", doc.Payment().IBAN)
}

func TestDocumentRequestBuildCreditNote(t *testing.T) {
	req, err := ubllib.ParseDocumentJSON([]byte(fullRequest))
	require.NoError(t, err)

	doc, err := req.Build(ubllib.TypeCreditNote)
	require.NoError(t, err)
	assert.Equal(t, ubllib.TypeCreditNote, doc.Type)
}

func TestDocumentRequestBuildRejectsMissingFields(t *testing.T) {
	req, err := ubllib.ParseDocumentJSON([]byte(`{"number": ""}`))
	require.NoError(t, err)
	_, err = req.Build(ubllib.TypeInvoice)
	require.Error(t, err)

	req, err = ubllib.ParseDocumentJSON([]byte(`{"number": "X", "supplier": {"name": "A", "country": "BE"}}`))
	require.NoError(t, err)
	_, err = req.Build(ubllib.TypeInvoice)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer")
}

func TestDocumentRequestBuildRejectsBadDates(t *testing.T) {
	req, err := ubllib.ParseDocumentJSON([]byte(`{
		"number": "X",
		"issue_date": "15/03/2026",
		"supplier": {"name": "A", "country": "BE"},
		"customer": {"name": "B", "country": "BE"}
	}`))
	require.NoError(t, err)
	_, err = req.Build(ubllib.TypeInvoice)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "issue_date")
}

func TestDocumentRequestBuildRejectsBadLines(t *testing.T) {
	req, err := ubllib.ParseDocumentJSON([]byte(`{
		"number": "X",
		"supplier": {"name": "A", "country": "BE"},
		"customer": {"name": "B", "country": "BE"},
		"lines": [{"name": "item", "quantity": -1, "unit_price": 10}]
	}`))
	require.NoError(t, err)
	_, err = req.Build(ubllib.TypeInvoice)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestDocumentRequestBuildRejectsBadAttachment(t *testing.T) {
	req, err := ubllib.ParseDocumentJSON([]byte(`{
		"number": "X",
		"supplier": {"name": "A", "country": "BE"},
		"customer": {"name": "B", "country": "BE"},
		"attachment": {"filename": "x.pdf", "content": "!!!not-base64!!!"}
	}`))
	require.NoError(t, err)
	_, err = req.Build(ubllib.TypeInvoice)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attachment")
}

func TestRateUnmarshal(t *testing.T) {
	var r ubllib.Rate
	require.NoError(t, r.UnmarshalJSON([]byte(`21`)))
	assert.True(t, r.Equal(decimal.NewFromInt(21)))

	require.NoError(t, r.UnmarshalJSON([]byte(`"21%"`)))
	assert.True(t, r.Equal(decimal.NewFromInt(21)))

	require.NoError(t, r.UnmarshalJSON([]byte(`"6"`)))
	assert.True(t, r.Equal(decimal.NewFromInt(6)))

	require.Error(t, r.UnmarshalJSON([]byte(`"abc%"`)))
	require.Error(t, r.UnmarshalJSON([]byte(`true`)))
}
