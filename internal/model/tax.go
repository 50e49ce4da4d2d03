package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// UNCL5305 tax category codes used by PEPPOL BIS Billing 3.0
const (
	TaxCategoryZeroRated = "Z"
	TaxCategoryStandard  = "S"
)

var (
	rate6  = decimal.NewFromInt(6)
	rate12 = decimal.NewFromInt(12)
	rate21 = decimal.NewFromInt(21)
)

// TaxCategoryID maps a VAT rate to its UNCL5305 category code.
// The Belgian rates 6, 12 and 21 all map to the standard category;
// any other rate falls back to zero-rated, same as rate 0.
func TaxCategoryID(rate decimal.Decimal) string {
	switch {
	case rate.Equal(rate6), rate.Equal(rate12), rate.Equal(rate21):
		return TaxCategoryStandard
	default:
		return TaxCategoryZeroRated
	}
}

// TaxCategoryName maps a VAT rate to the UBL.BE tax category name.
// Only Belgian documents emit it; standard PEPPOL output omits the name.
func TaxCategoryName(rate decimal.Decimal) string {
	switch {
	case rate.Equal(rate6):
		return "01"
	case rate.Equal(rate12):
		return "02"
	case rate.Equal(rate21):
		return "03"
	default:
		return "00"
	}
}

// ParseTaxRate parses a rate given either as a plain number ("21") or as a
// percentage string ("21%"); both forms denote the same numeric rate.
func ParseTaxRate(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid tax rate %q: %w", s, err)
	}
	return d, nil
}
