// Package ubl renders the document model into namespace-qualified UBL 2.1
// XML for the PEPPOL BIS Billing 3.0 profile, optionally with the Belgian
// UBL.BE customization.
package ubl

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	dec "github.com/rezonia/ubl-generator/internal/decimal"
	"github.com/rezonia/ubl-generator/internal/model"
)

// Build serializes a document into UTF-8 UBL XML. Output is deterministic:
// serializing the same document twice yields byte-identical bytes.
func Build(d *model.Document) ([]byte, error) {
	if d.Number == "" {
		return nil, fmt.Errorf("ubl: document number is required")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rootName, ns := "Invoice", NsInvoice
	if d.Type == model.TypeCreditNote {
		rootName, ns = "CreditNote", NsCreditNote
	}
	root := doc.CreateElement(rootName)
	root.CreateAttr("xmlns", ns)
	root.CreateAttr("xmlns:cac", NsCac)
	root.CreateAttr("xmlns:cbc", NsCbc)

	writeHeader(root, d)
	writeDocumentReferences(root, d)
	writeParty(root, "cac:AccountingSupplierParty", d.Supplier())
	writeParty(root, "cac:AccountingCustomerParty", d.Customer())
	writePaymentMeans(root, d.Payment())
	writeTaxTotal(root, d)
	writeMonetaryTotal(root, d)
	writeLines(root, d)

	doc.Indent(2)
	return doc.WriteToBytes()
}

func text(parent *etree.Element, tag, value string) *etree.Element {
	el := parent.CreateElement(tag)
	el.SetText(value)
	return el
}

// amount writes a monetary element with the mandatory currencyID attribute.
// Monetary values always carry exactly two decimal places; quantities and
// percentages keep their natural representation.
func amount(parent *etree.Element, tag, currency string, v decimal.Decimal) {
	el := text(parent, tag, dec.Format2(v))
	el.CreateAttr("currencyID", currency)
}

func writeHeader(root *etree.Element, d *model.Document) {
	customization := CustomizationPeppol
	if d.BelgianExtension {
		customization = CustomizationUBLBE
	}
	text(root, "cbc:CustomizationID", customization)
	text(root, "cbc:ProfileID", ProfileID)
	text(root, "cbc:ID", d.Number)
	text(root, "cbc:IssueDate", d.IssueDate.Format("2006-01-02"))
	text(root, "cbc:DueDate", d.DueDate.Format("2006-01-02"))
	if d.Type == model.TypeCreditNote {
		text(root, "cbc:CreditNoteTypeCode", d.Type.TypeCode())
	} else {
		text(root, "cbc:InvoiceTypeCode", d.Type.TypeCode())
	}
	text(root, "cbc:DocumentCurrencyCode", d.Currency)

	orderRef := root.CreateElement("cac:OrderReference")
	text(orderRef, "cbc:ID", d.Number)
}

func writeDocumentReferences(root *etree.Element, d *model.Document) {
	if d.BelgianExtension {
		ref := root.CreateElement("cac:AdditionalDocumentReference")
		text(ref, "cbc:ID", "UBL.BE")
		text(ref, "cbc:DocumentDescription", d.Type.Description())
	}

	if att := d.Attachment(); att != nil {
		ref := root.CreateElement("cac:AdditionalDocumentReference")
		text(ref, "cbc:ID", d.Number)
		text(ref, "cbc:DocumentDescription", "PDF")
		wrap := ref.CreateElement("cac:Attachment")
		obj := text(wrap, "cbc:EmbeddedDocumentBinaryObject", base64.StdEncoding.EncodeToString(att.Content))
		obj.CreateAttr("mimeCode", mimePDF)
		obj.CreateAttr("filename", att.Filename)
	}
}

func writeParty(root *etree.Element, tag string, p *model.Party) {
	if p == nil {
		return
	}
	wrapper := root.CreateElement(tag)
	party := wrapper.CreateElement("cac:Party")

	endpoint := text(party, "cbc:EndpointID", p.EndpointID())
	endpoint.CreateAttr("schemeID", endpointScheme)

	if p.Address != "" {
		addr := party.CreateElement("cac:PostalAddress")
		text(addr, "cbc:StreetName", p.Address)
		if p.City != "" {
			text(addr, "cbc:CityName", p.City)
		}
		if p.PostalCode != "" {
			text(addr, "cbc:PostalZone", p.PostalCode)
		}
		country := addr.CreateElement("cac:Country")
		text(country, "cbc:IdentificationCode", p.Country)
	}

	if p.VATID != "" {
		scheme := party.CreateElement("cac:PartyTaxScheme")
		text(scheme, "cbc:CompanyID", p.VATID)
		tax := scheme.CreateElement("cac:TaxScheme")
		text(tax, "cbc:ID", taxSchemeVAT)
	}

	legal := party.CreateElement("cac:PartyLegalEntity")
	text(legal, "cbc:RegistrationName", p.Name)
}

func writePaymentMeans(root *etree.Element, p *model.Payment) {
	if p == nil {
		return
	}
	means := root.CreateElement("cac:PaymentMeans")
	text(means, "cbc:PaymentMeansCode", paymentMeansCreditTransfer)
	account := means.CreateElement("cac:PayeeFinancialAccount")
	text(account, "cbc:ID", p.IBAN)
	if p.BIC != "" {
		branch := account.CreateElement("cac:FinancialInstitutionBranch")
		text(branch, "cbc:ID", p.BIC)
	}
}

func writeTaxTotal(root *etree.Element, d *model.Document) {
	if len(d.Lines()) == 0 {
		return
	}
	totals := d.Totals()
	tt := root.CreateElement("cac:TaxTotal")
	amount(tt, "cbc:TaxAmount", d.Currency, totals.TaxTotal)

	for _, g := range d.TaxGroups() {
		sub := tt.CreateElement("cac:TaxSubtotal")
		amount(sub, "cbc:TaxableAmount", d.Currency, g.TaxableAmount)
		amount(sub, "cbc:TaxAmount", d.Currency, g.TaxAmount)
		writeTaxCategory(sub, "cac:TaxCategory", g.Rate, d.BelgianExtension)
	}
}

func writeTaxCategory(parent *etree.Element, tag string, rate decimal.Decimal, belgian bool) {
	cat := parent.CreateElement(tag)
	text(cat, "cbc:ID", model.TaxCategoryID(rate))
	if belgian {
		text(cat, "cbc:Name", model.TaxCategoryName(rate))
	}
	text(cat, "cbc:Percent", rate.String())
	scheme := cat.CreateElement("cac:TaxScheme")
	text(scheme, "cbc:ID", taxSchemeVAT)
}

func writeMonetaryTotal(root *etree.Element, d *model.Document) {
	if len(d.Lines()) == 0 {
		return
	}
	totals := d.Totals()
	lmt := root.CreateElement("cac:LegalMonetaryTotal")
	amount(lmt, "cbc:LineExtensionAmount", d.Currency, totals.LineExtension)
	// no discount handling: tax-exclusive equals the line extension sum
	amount(lmt, "cbc:TaxExclusiveAmount", d.Currency, totals.LineExtension)
	amount(lmt, "cbc:TaxInclusiveAmount", d.Currency, totals.LegalMonetaryTotal)
	amount(lmt, "cbc:PayableAmount", d.Currency, totals.LegalMonetaryTotal)
}

func writeLines(root *etree.Element, d *model.Document) {
	for _, l := range d.Lines() {
		el := root.CreateElement("cac:InvoiceLine")
		text(el, "cbc:ID", strconv.Itoa(l.ID))
		qty := text(el, "cbc:InvoicedQuantity", l.Quantity.String())
		qty.CreateAttr("unitCode", l.Unit)
		amount(el, "cbc:LineExtensionAmount", d.Currency, l.LineExtensionAmount)

		if d.BelgianExtension {
			tt := el.CreateElement("cac:TaxTotal")
			amount(tt, "cbc:TaxAmount", d.Currency, l.TaxAmount)
		}

		item := el.CreateElement("cac:Item")
		text(item, "cbc:Name", l.Name)
		writeTaxCategory(item, "cac:ClassifiedTaxCategory", l.TaxRate, d.BelgianExtension)

		price := el.CreateElement("cac:Price")
		amount(price, "cbc:PriceAmount", d.Currency, l.UnitPrice)
	}
}
