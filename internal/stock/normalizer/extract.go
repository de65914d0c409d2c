package normalizer

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"stockscan/internal/domain"
)

const (
	fieldProduct         = "Product"
	fieldProductLongText = "ProductLongText"
	fieldStorageLocation = "StorageLocation"
	fieldStockType       = "InventoryStockType"
	fieldStockQuantity   = "MatlWrhsStkQtyInMatlBaseUnit"
	fieldNumerator       = "QuantityNumerator"
	fieldDenominator     = "QuantityDenominator"
)

var (
	basicTextNav = []string{"_ProductBasicText", "to_ProductBasicText"}
	unitNav      = []string{"_ProductUnitOfMeasure", "_ProductUnitsOfMeasure", "to_ProductUnitsOfMeasure"}
	stockNav     = []string{"to_MatlStkInAcctMod", "_MatlStkInAcctMod"}

	// Alias order tracks which backend generation introduced each name. Do not
	// reorder: the first string hit is trusted.
	unitCodeAliases = []string{"AlternativeUnit", "AlternativeUnitOfMeasure", "UnitOfMeasure", "QuantityUnit"}
	unitISOAliases  = []string{"AlternativeUnitISOCode", "UnitOfMeasureISOCode", "ISOUnit", "ISOCode"}
	baseUnitAliases = []string{"BaseUnit", "BaseUnitOfMeasure"}
	baseISOAliases  = []string{"BaseISOUnit", "BaseUnitISOCode"}
)

// ExtractProduct finds the product key: on the root object, then on the first
// element of "value", then on the first element of "d.results", and last on
// a single V2 entity under "d".
func ExtractProduct(payload any) (string, bool) {
	for _, env := range ParseEnvelopes(payload) {
		first, ok := env.First()
		if !ok {
			continue
		}
		if product, ok := first[fieldProduct].(string); ok {
			return product, product != ""
		}
	}
	return "", false
}

// ExtractProductName reads ProductLongText from the expanded basic-text
// navigation of the first product record.
func ExtractProductName(payload any) (string, bool) {
	for _, first := range firstRecords(payload) {
		texts, ok := navRecords(first, basicTextNav...)
		if !ok || len(texts) == 0 {
			continue
		}
		if name, ok := texts[0][fieldProductLongText].(string); ok {
			return name, true
		}
	}
	return "", false
}

// ExtractBaseUnits returns the product's base unit and its ISO code.
func ExtractBaseUnits(payload any) (base, iso *string) {
	for _, first := range firstRecords(payload) {
		b, hasBase := stringField(first, baseUnitAliases...)
		i, hasISO := stringField(first, baseISOAliases...)
		if !hasBase && !hasISO {
			continue
		}
		if hasBase {
			base = &b
		}
		if hasISO {
			iso = &i
		}
		return base, iso
	}
	return nil, nil
}

// ExtractUnits returns the alternate units of measure of the first product
// record. Records without a resolvable unit code are skipped.
func ExtractUnits(payload any) []domain.UnitConversion {
	for _, first := range firstRecords(payload) {
		records, ok := navRecords(first, unitNav...)
		if !ok {
			continue
		}

		units := make([]domain.UnitConversion, 0, len(records))
		for _, rec := range records {
			code, ok := stringField(rec, unitCodeAliases...)
			if !ok || code == "" {
				continue
			}
			var iso *string
			if s, ok := stringField(rec, unitISOAliases...); ok {
				iso = &s
			}
			units = append(units, domain.NewUnitConversion(
				code,
				iso,
				ParseFloat(rec[fieldNumerator]),
				ParseFloat(rec[fieldDenominator]),
			))
		}
		return units
	}
	return nil
}

// ExtractProductInfo combines the product extractors. ok is false when no
// product key was found.
func ExtractProductInfo(payload any) (domain.ProductInfo, bool) {
	productID, ok := ExtractProduct(payload)
	if !ok {
		return domain.ProductInfo{}, false
	}

	info := domain.ProductInfo{
		ProductID:      productID,
		AlternateUnits: ExtractUnits(payload),
	}
	if name, ok := ExtractProductName(payload); ok {
		info.ProductName = &name
	}
	info.BaseUnit, info.BaseISOUnit = ExtractBaseUnits(payload)
	return info, true
}

// ExtractStockItems returns the ledger rows expanded under the first stock
// record, in backend order.
func ExtractStockItems(payload any) []domain.StockLineItem {
	for _, first := range firstRecords(payload) {
		records, ok := navRecords(first, stockNav...)
		if !ok {
			continue
		}

		items := make([]domain.StockLineItem, 0, len(records))
		for _, rec := range records {
			item := domain.StockLineItem{
				Quantity: ParseQuantity(rec[fieldStockQuantity]),
				Raw:      rec,
			}
			if s, ok := rec[fieldStorageLocation].(string); ok {
				item.StorageLocation = &s
			}
			if s, ok := rec[fieldStockType].(string); ok {
				item.StockType = &s
			}
			items = append(items, item)
		}
		return items
	}
	return []domain.StockLineItem{}
}

// ParseQuantity accepts numbers as decoded by encoding/json (float64 or
// json.Number) and decimal strings. Anything else, including an empty or
// malformed string, yields nil.
func ParseQuantity(raw any) *decimal.Decimal {
	var (
		d   decimal.Decimal
		err error
	)
	switch v := raw.(type) {
	case json.Number:
		d, err = decimal.NewFromString(v.String())
	case float64:
		d = decimal.NewFromFloat(v)
	case float32:
		d = decimal.NewFromFloat32(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(v))
	default:
		return nil
	}
	if err != nil {
		return nil
	}
	return &d
}

// ParseFloat is ParseQuantity for conversion factors.
func ParseFloat(raw any) *float64 {
	d := ParseQuantity(raw)
	if d == nil {
		return nil
	}
	f, _ := d.Float64()
	return &f
}

// firstRecords lists the leading record of every list-carrying envelope in
// priority order, then the flat root.
func firstRecords(payload any) []map[string]any {
	envelopes := ParseEnvelopes(payload)
	out := make([]map[string]any, 0, len(envelopes))
	var flat map[string]any
	for _, env := range envelopes {
		first, ok := env.First()
		if !ok {
			continue
		}
		if env.Kind == KindFlat {
			flat = first
			continue
		}
		out = append(out, first)
	}
	if flat != nil {
		out = append(out, flat)
	}
	return out
}
