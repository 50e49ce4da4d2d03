// Package model holds the document model for PEPPOL UBL invoices and credit
// notes: parties, lines, derived totals and tax category mapping.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/ubl-generator/internal/decimal"
)

// DocumentType selects the UBL document variant
type DocumentType string

const (
	TypeInvoice    DocumentType = "invoice"
	TypeCreditNote DocumentType = "creditnote"
)

// TypeCode returns the UNCL1001 document type code
func (t DocumentType) TypeCode() string {
	if t == TypeCreditNote {
		return "381"
	}
	return "380"
}

// Description returns the document reference description text
func (t DocumentType) Description() string {
	if t == TypeCreditNote {
		return "CreditNote"
	}
	return "CommercialInvoice"
}

// Defaults applied at construction
const (
	DefaultCurrency = "EUR"
	DefaultUnit     = "ZZ"

	dueDays = 30
)

// DefaultTaxRate is the Belgian standard VAT rate
var DefaultTaxRate = decimal.NewFromInt(21)

// InvoiceLine is one priced line of a document. Lines are immutable once
// created: the derived amounts are computed at insertion and never touched
// again independently of their inputs.
type InvoiceLine struct {
	ID                  int             `json:"id"`
	Name                string          `json:"name"`
	Quantity            decimal.Decimal `json:"quantity"`
	Unit                string          `json:"unit"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	TaxRate             decimal.Decimal `json:"tax_rate"`
	LineExtensionAmount decimal.Decimal `json:"line_extension_amount"`
	TaxAmount           decimal.Decimal `json:"tax_amount"`
}

// Attachment is an embedded binary document reference
type Attachment struct {
	Filename string
	Content  []byte
}

// Payment holds credit-transfer payment instructions
type Payment struct {
	IBAN string
	BIC  string
}

// Totals holds the derived monetary totals of a document
type Totals struct {
	LineExtension      decimal.Decimal
	TaxTotal           decimal.Decimal
	LegalMonetaryTotal decimal.Decimal
}

// TaxGroup is a per-rate subtotal over the document's lines
type TaxGroup struct {
	Rate          decimal.Decimal
	TaxableAmount decimal.Decimal
	TaxAmount     decimal.Decimal
}

// Document is an invoice or credit note under construction. The type and the
// Belgian-extension flag are fixed at creation. A Document is not safe for
// concurrent use; callers sharing one across goroutines must serialize access.
type Document struct {
	Type             DocumentType
	Number           string
	IssueDate        time.Time
	DueDate          time.Time
	Currency         string
	BelgianExtension bool

	supplier   *Party
	customer   *Party
	lines      []InvoiceLine
	attachment *Attachment
	payment    *Payment
}

// Option configures a document at construction
type Option func(*Document)

// WithBelgianExtension enables the UBL.BE customization
func WithBelgianExtension() Option {
	return func(d *Document) { d.BelgianExtension = true }
}

// WithCurrency overrides the default EUR currency
func WithCurrency(code string) Option {
	return func(d *Document) { d.Currency = code }
}

// WithIssueDate overrides the default issue date (today); the due date
// follows unless set explicitly afterwards
func WithIssueDate(t time.Time) Option {
	return func(d *Document) {
		d.IssueDate = t
		d.DueDate = t.AddDate(0, 0, dueDays)
	}
}

// NewInvoice creates an empty invoice
func NewInvoice(opts ...Option) *Document {
	return newDocument(TypeInvoice, opts...)
}

// NewCreditNote creates an empty credit note
func NewCreditNote(opts ...Option) *Document {
	return newDocument(TypeCreditNote, opts...)
}

func newDocument(t DocumentType, opts ...Option) *Document {
	issue := time.Now().UTC().Truncate(24 * time.Hour)
	d := &Document{
		Type:      t,
		IssueDate: issue,
		DueDate:   issue.AddDate(0, 0, dueDays),
		Currency:  DefaultCurrency,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetSupplier validates and attaches the supplier party. Calling it again
// replaces the previous party.
func (d *Document) SetSupplier(p Party) error {
	if err := p.Validate(); err != nil {
		return err
	}
	d.supplier = &p
	return nil
}

// SetCustomer validates and attaches the customer party
func (d *Document) SetCustomer(p Party) error {
	if err := p.Validate(); err != nil {
		return err
	}
	d.customer = &p
	return nil
}

// Supplier returns the supplier party, nil if not set
func (d *Document) Supplier() *Party { return d.supplier }

// Customer returns the customer party, nil if not set
func (d *Document) Customer() *Party { return d.customer }

// LineOption configures a line at insertion
type LineOption func(*InvoiceLine)

// WithUnit sets the unit-of-measure code (default "ZZ")
func WithUnit(unit string) LineOption {
	return func(l *InvoiceLine) { l.Unit = unit }
}

// WithTaxRate sets the VAT rate percentage (default 21)
func WithTaxRate(rate decimal.Decimal) LineOption {
	return func(l *InvoiceLine) { l.TaxRate = rate }
}

// AddLine appends a new line and returns it. IDs are 1-based, assigned in
// insertion order and never reused; there is no line removal. Quantity and
// unit price must be non-negative.
func (d *Document) AddLine(name string, quantity, unitPrice decimal.Decimal, opts ...LineOption) (InvoiceLine, error) {
	if name == "" {
		return InvoiceLine{}, NewLineError("name", nil, "is required")
	}
	if quantity.IsNegative() {
		return InvoiceLine{}, NewLineError("quantity", quantity.String(), "must not be negative")
	}
	if unitPrice.IsNegative() {
		return InvoiceLine{}, NewLineError("unit_price", unitPrice.String(), "must not be negative")
	}

	line := InvoiceLine{
		ID:        len(d.lines) + 1,
		Name:      name,
		Quantity:  quantity,
		Unit:      DefaultUnit,
		UnitPrice: unitPrice,
		TaxRate:   DefaultTaxRate,
	}
	for _, opt := range opts {
		opt(&line)
	}
	if line.TaxRate.IsNegative() {
		return InvoiceLine{}, NewLineError("tax_rate", line.TaxRate.String(), "must not be negative")
	}

	line.LineExtensionAmount = dec.Mul(quantity, unitPrice)
	line.TaxAmount = dec.TaxOf(line.LineExtensionAmount, line.TaxRate)

	d.lines = append(d.lines, line)
	return line, nil
}

// Lines returns the lines in insertion order
func (d *Document) Lines() []InvoiceLine {
	out := make([]InvoiceLine, len(d.lines))
	copy(out, d.lines)
	return out
}

// Totals recomputes the derived totals from the full line set. It is a pure
// accessor: tax_total = sum of line tax amounts, legal monetary total =
// sum of line extension amounts + tax_total.
func (d *Document) Totals() Totals {
	t := Totals{
		LineExtension: decimal.Zero,
		TaxTotal:      decimal.Zero,
	}
	for _, l := range d.lines {
		t.LineExtension = t.LineExtension.Add(l.LineExtensionAmount)
		t.TaxTotal = t.TaxTotal.Add(l.TaxAmount)
	}
	t.LegalMonetaryTotal = t.LineExtension.Add(t.TaxTotal)
	return t
}

// TaxGroups groups lines by tax rate in first-seen order. Rates are compared
// by exact decimal value, so 21 and 21.0 land in the same group and no
// floating-point drift can split groups.
func (d *Document) TaxGroups() []TaxGroup {
	var groups []TaxGroup
	for _, l := range d.lines {
		idx := -1
		for i := range groups {
			if groups[i].Rate.Equal(l.TaxRate) {
				idx = i
				break
			}
		}
		if idx == -1 {
			groups = append(groups, TaxGroup{
				Rate:          l.TaxRate,
				TaxableAmount: decimal.Zero,
				TaxAmount:     decimal.Zero,
			})
			idx = len(groups) - 1
		}
		groups[idx].TaxableAmount = groups[idx].TaxableAmount.Add(l.LineExtensionAmount)
		groups[idx].TaxAmount = groups[idx].TaxAmount.Add(l.TaxAmount)
	}
	return groups
}

// Attach embeds binary content under the given filename. The content is
// base64-encoded at serialization time and declared application/pdf.
func (d *Document) Attach(filename string, content []byte) {
	d.attachment = &Attachment{Filename: filename, Content: content}
}

// Attachment returns the attachment reference, nil if not set
func (d *Document) Attachment() *Attachment { return d.attachment }

// SetPayment records credit-transfer payment instructions
func (d *Document) SetPayment(iban, bic string) {
	d.payment = &Payment{IBAN: iban, BIC: bic}
}

// Payment returns the payment instructions, nil if not set
func (d *Document) Payment() *Payment { return d.payment }
