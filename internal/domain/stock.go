package domain

import "github.com/shopspring/decimal"

// ProductInfo is what the product query resolves a barcode to.
type ProductInfo struct {
	ProductID      string
	ProductName    *string
	BaseUnit       *string
	BaseISOUnit    *string
	AlternateUnits []UnitConversion
}

// UnitConversion relates one alternate unit of measure to the base unit:
// one alternate unit equals Numerator/Denominator base units.
type UnitConversion struct {
	UnitCode    string
	ISOUnitCode *string
	Numerator   *float64
	Denominator *float64
	Ratio       *float64
}

// NewUnitConversion fills Ratio when both factors are present and the
// denominator is non-zero.
func NewUnitConversion(code string, iso *string, numerator, denominator *float64) UnitConversion {
	u := UnitConversion{
		UnitCode:    code,
		ISOUnitCode: iso,
		Numerator:   numerator,
		Denominator: denominator,
	}
	if numerator != nil && denominator != nil && *denominator != 0 {
		r := *numerator / *denominator
		u.Ratio = &r
	}
	return u
}

// StockLineItem is one ledger row. Quantity is nil when the backend value was
// missing or unparsable; such rows never contribute to a total.
type StockLineItem struct {
	StorageLocation *string
	StockType       *string
	Quantity        *decimal.Decimal
	Raw             map[string]any
}

// AlternateQuantity is the total expressed in an alternate unit. Quantity is
// nil when the conversion factor is unavailable, which is not the same as zero
// stock.
type AlternateQuantity struct {
	UnitCode    string
	ISOUnitCode *string
	Quantity    *float64
	Numerator   *float64
	Denominator *float64
	Ratio       *float64
}

type RawEnvelopes struct {
	Product any
	Stock   any
}

// StockResult is the terminal outcome of one lookup.
type StockResult struct {
	Barcode             string
	ProductID           string
	ProductName         *string
	BaseUnit            *string
	BaseISOUnit         *string
	TotalBaseQuantity   float64
	AlternateQuantities []AlternateQuantity
	LineItems           []StockLineItem
	Raw                 RawEnvelopes
}
