package ubllib

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/ubl-generator/internal/model"
	"github.com/rezonia/ubl-generator/internal/pdf"
)

// dateLayout is the wire format for request dates
const dateLayout = "2006-01-02"

// Rate is a VAT rate that unmarshals from either a JSON number (21) or a
// percentage string ("21%").
type Rate struct {
	decimal.Decimal
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Rate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		d, err := model.ParseTaxRate(s)
		if err != nil {
			return err
		}
		r.Decimal = d
		return nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("invalid tax rate %s", string(data))
	}
	r.Decimal = d
	return nil
}

// LineRequest is one document line in a generation request
type LineRequest struct {
	Name      string      `json:"name"`
	Quantity  json.Number `json:"quantity"`
	UnitPrice json.Number `json:"unit_price"`
	TaxRate   *Rate       `json:"tax_rate,omitempty"`
	Unit      string      `json:"unit,omitempty"`
}

// PaymentRequest carries credit-transfer instructions
type PaymentRequest struct {
	IBAN string `json:"iban"`
	BIC  string `json:"bic,omitempty"`
}

// AttachmentRequest carries an embedded PDF, base64-encoded
type AttachmentRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// DocumentRequest is the JSON shape accepted by the generation API and the
// CLI. Dates use the 2006-01-02 layout; omitted dates fall back to the
// document defaults (today, due in 30 days).
type DocumentRequest struct {
	Number           string             `json:"number"`
	IssueDate        string             `json:"issue_date,omitempty"`
	DueDate          string             `json:"due_date,omitempty"`
	Currency         string             `json:"currency,omitempty"`
	BelgianExtension bool               `json:"belgian_extension,omitempty"`
	Supplier         *model.Party       `json:"supplier"`
	Customer         *model.Party       `json:"customer"`
	Lines            []LineRequest      `json:"lines"`
	Payment          *PaymentRequest    `json:"payment,omitempty"`
	Attachment       *AttachmentRequest `json:"attachment,omitempty"`
}

// ParseDocumentJSON decodes a DocumentRequest from raw JSON
func ParseDocumentJSON(data []byte) (*DocumentRequest, error) {
	var req DocumentRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid document request: %w", err)
	}
	return &req, nil
}

// Build constructs a Document of the given type from the request. Attachments
// are base64-decoded and checked to be well-formed PDFs before embedding.
func (r *DocumentRequest) Build(docType DocumentType) (*Document, error) {
	if r.Number == "" {
		return nil, fmt.Errorf("number is required")
	}
	if r.Supplier == nil {
		return nil, fmt.Errorf("supplier is required")
	}
	if r.Customer == nil {
		return nil, fmt.Errorf("customer is required")
	}

	var opts []Option
	if r.BelgianExtension {
		opts = append(opts, WithBelgianExtension())
	}
	if r.Currency != "" {
		opts = append(opts, WithCurrency(r.Currency))
	}
	if r.IssueDate != "" {
		issue, err := time.Parse(dateLayout, r.IssueDate)
		if err != nil {
			return nil, fmt.Errorf("invalid issue_date %q: %w", r.IssueDate, err)
		}
		opts = append(opts, WithIssueDate(issue))
	}

	var doc *Document
	switch docType {
	case TypeCreditNote:
		doc = NewCreditNote(r.Number, opts...)
	default:
		doc = NewInvoice(r.Number, opts...)
	}

	if r.DueDate != "" {
		due, err := time.Parse(dateLayout, r.DueDate)
		if err != nil {
			return nil, fmt.Errorf("invalid due_date %q: %w", r.DueDate, err)
		}
		doc.DueDate = due
	}

	if err := doc.SetSupplier(*r.Supplier); err != nil {
		return nil, fmt.Errorf("supplier: %w", err)
	}
	if err := doc.SetCustomer(*r.Customer); err != nil {
		return nil, fmt.Errorf("customer: %w", err)
	}

	for i, l := range r.Lines {
		qty, err := decimal.NewFromString(l.Quantity.String())
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid quantity %q", i+1, l.Quantity)
		}
		price, err := decimal.NewFromString(l.UnitPrice.String())
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid unit_price %q", i+1, l.UnitPrice)
		}

		var lineOpts []LineOption
		if l.Unit != "" {
			lineOpts = append(lineOpts, WithUnit(l.Unit))
		}
		if l.TaxRate != nil {
			lineOpts = append(lineOpts, WithTaxRate(l.TaxRate.Decimal))
		}
		if _, err := doc.AddLine(l.Name, qty, price, lineOpts...); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	if r.Payment != nil {
		doc.SetPayment(r.Payment.IBAN, r.Payment.BIC)
	}

	if r.Attachment != nil {
		content, err := base64.StdEncoding.DecodeString(r.Attachment.Content)
		if err != nil {
			return nil, fmt.Errorf("attachment: invalid base64 content: %w", err)
		}
		if err := pdf.Check(content); err != nil {
			return nil, fmt.Errorf("attachment: %w", err)
		}
		doc.Attach(r.Attachment.Filename, content)
	}

	return doc, nil
}
