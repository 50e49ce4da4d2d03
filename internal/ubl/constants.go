package ubl

// UBL 2.1 namespaces
const (
	NsInvoice    = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NsCreditNote = "urn:oasis:names:specification:ubl:schema:xsd:CreditNote-2"
	NsCac        = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NsCbc        = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
)

// PEPPOL BIS Billing 3.0 identifiers. Belgian documents replace the
// customization id with the UBL.BE one.
const (
	CustomizationPeppol = "urn:cen.eu:en16931:2017#compliant#urn:fdc:peppol.eu:2017:poacc:billing:3.0"
	CustomizationUBLBE  = "urn:cen.eu:en16931:2017#conformant#urn:UBL.BE:1.0.0.20180214"
	ProfileID           = "urn:fdc:peppol.eu:2017:poacc:billing:01:1.0"
)

const (
	endpointScheme = "0208"
	taxSchemeVAT   = "VAT"
	mimePDF        = "application/pdf"

	// UNCL4461 code 30: credit transfer
	paymentMeansCreditTransfer = "30"
)
