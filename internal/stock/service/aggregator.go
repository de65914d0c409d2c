package service

import (
	"github.com/shopspring/decimal"

	"stockscan/internal/config"
	"stockscan/internal/domain"
)

// Aggregator sums ledger rows that belong to the configured storage location
// and stock type, and expresses the sum in alternate units.
type Aggregator struct {
	storageLocation string
	stockType       string
}

func NewAggregator(cfg config.StockConfig) *Aggregator {
	a := &Aggregator{
		storageLocation: cfg.StorageLocation,
		stockType:       cfg.StockType,
	}
	if a.storageLocation == "" {
		a.storageLocation = config.DefaultStorageLocation
	}
	if a.stockType == "" {
		a.stockType = config.DefaultStockType
	}
	return a
}

// Counts reports whether a row belongs to available warehouse stock.
func (a *Aggregator) Counts(item domain.StockLineItem) bool {
	if item.StorageLocation == nil || *item.StorageLocation != a.storageLocation {
		return false
	}
	if item.StockType == nil || *item.StockType != a.stockType {
		return false
	}
	return item.Quantity != nil
}

func (a *Aggregator) Total(items []domain.StockLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if a.Counts(item) {
			total = total.Add(*item.Quantity)
		}
	}
	return total
}

// Convert expresses total in every alternate unit other than the base unit.
// A unit whose numerator is missing or zero, or whose denominator is
// missing, gets a nil quantity.
func (a *Aggregator) Convert(total decimal.Decimal, baseUnit *string, units []domain.UnitConversion) []domain.AlternateQuantity {
	out := make([]domain.AlternateQuantity, 0, len(units))
	for _, u := range units {
		if baseUnit != nil && u.UnitCode == *baseUnit {
			continue
		}

		alt := domain.AlternateQuantity{
			UnitCode:    u.UnitCode,
			ISOUnitCode: u.ISOUnitCode,
			Numerator:   u.Numerator,
			Denominator: u.Denominator,
			Ratio:       u.Ratio,
		}
		if u.Numerator != nil && *u.Numerator != 0 && u.Denominator != nil {
			q := total.
				Mul(decimal.NewFromFloat(*u.Denominator)).
				Div(decimal.NewFromFloat(*u.Numerator)).
				InexactFloat64()
			alt.Quantity = &q
		}
		out = append(out, alt)
	}
	return out
}
