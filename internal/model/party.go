package model

// Party identifies one side of a commercial document.
type Party struct {
	Name       string `json:"name"`
	Country    string `json:"country"`
	VATID      string `json:"vat_id,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// Validate checks that the required fields are present
func (p Party) Validate() error {
	if p.Name == "" {
		return NewPartyError("name", "is required")
	}
	if p.Country == "" {
		return NewPartyError("country", "is required")
	}
	return nil
}

// EndpointID returns the VAT id with any leading alphabetic country prefix
// stripped, as required by the 0208 endpoint identification scheme.
// "BE0123456749" becomes "0123456749"; digits are preserved exactly.
func (p Party) EndpointID() string {
	s := p.VATID
	i := 0
	for i < len(s) && ((s[i] >= 'A' && s[i] <= 'Z') || (s[i] >= 'a' && s[i] <= 'z')) {
		i++
	}
	return s[i:]
}
