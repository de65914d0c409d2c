package domain

import "time"

const (
	OutcomeDone               = "done"
	OutcomeValidationError    = "validation_error"
	OutcomeConfigurationError = "configuration_error"
	OutcomeNotFound           = "not_found"
	OutcomeProductQueryFailed = "product_query_failed"
	OutcomeStockQueryFailed   = "stock_query_failed"
)

// ScanRecord is one audit log row. It is written after a lookup finishes and
// is never read back to answer a lookup.
type ScanRecord struct {
	ID            string
	TraceID       string
	OperatorID    *string
	Barcode       string
	ProductID     *string
	Outcome       string
	TotalQuantity *float64
	ErrorMessage  *string
	DurationMs    int64
	CreatedAt     time.Time
}
