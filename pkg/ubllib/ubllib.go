// Package ubllib provides a public API for generating and validating
// PEPPOL BIS Billing 3.0 UBL documents.
//
// Example usage:
//
//	doc := ubllib.NewInvoice("INV-2026-001")
//	doc.SetSupplier(ubllib.Party{Name: "Acme BV", Country: "BE", VATID: "BE0123456749"})
//	doc.SetCustomer(ubllib.Party{Name: "Client NV", Country: "BE"})
//	doc.AddLine("consulting", ubllib.Dec(10), ubllib.Dec(100))
//	xml, err := ubllib.Build(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
package ubllib

import (
	"github.com/shopspring/decimal"

	"github.com/rezonia/ubl-generator/internal/model"
	"github.com/rezonia/ubl-generator/internal/ubl"
	"github.com/rezonia/ubl-generator/internal/validator"
)

// Re-export core types for public API
type (
	Document     = model.Document
	DocumentType = model.DocumentType
	Party        = model.Party
	InvoiceLine  = model.InvoiceLine
	Attachment   = model.Attachment
	Payment      = model.Payment
	Totals       = model.Totals
	TaxGroup     = model.TaxGroup
	Option       = model.Option
	LineOption   = model.LineOption
)

// Re-export document types
const (
	TypeInvoice    = model.TypeInvoice
	TypeCreditNote = model.TypeCreditNote
)

// Re-export error types
type (
	LineError  = model.LineError
	PartyError = model.PartyError
)

// Re-export validator types
type (
	Report   = validator.Report
	Finding  = validator.Finding
	Severity = validator.Severity
)

// NewInvoice creates an empty invoice document
func NewInvoice(number string, opts ...Option) *Document {
	d := model.NewInvoice(opts...)
	d.Number = number
	return d
}

// NewCreditNote creates an empty credit note document
func NewCreditNote(number string, opts ...Option) *Document {
	d := model.NewCreditNote(opts...)
	d.Number = number
	return d
}

// Re-export document options
var (
	WithBelgianExtension = model.WithBelgianExtension
	WithCurrency         = model.WithCurrency
	WithIssueDate        = model.WithIssueDate
	WithUnit             = model.WithUnit
	WithTaxRate          = model.WithTaxRate
)

// Build serializes a document to UBL 2.1 XML
func Build(d *Document) ([]byte, error) {
	return ubl.Build(d)
}

// Dec builds a decimal from an int64, a convenience for line quantities
// and prices
func Dec(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}
