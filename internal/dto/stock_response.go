package dto

// StockResponse is the flattened lookup result returned by GET /api/stock.
type StockResponse struct {
	TraceID        string             `json:"traceId"`
	Barcode        string             `json:"barcode"`
	Product        string             `json:"product"`
	ProductName    *string            `json:"productName"`
	Stock          float64            `json:"stock"`
	BaseUom        *string            `json:"baseUom"`
	BaseIsoUom     *string            `json:"baseIsoUom"`
	AlternateUnits []AlternateUnitDTO `json:"alternateUnits"`
	StockItems     []map[string]any   `json:"stockItems"`
	Raw            RawEnvelopesDTO    `json:"raw"`
}

// AlternateUnitDTO.Quantity is null when no conversion factor is known.
type AlternateUnitDTO struct {
	Uom         string   `json:"uom"`
	IsoUom      *string  `json:"isoUom"`
	Quantity    *float64 `json:"quantity"`
	Numerator   *float64 `json:"numerator"`
	Denominator *float64 `json:"denominator"`
	Ratio       *float64 `json:"ratio"`
}

type RawEnvelopesDTO struct {
	Product any `json:"product"`
	Stock   any `json:"stock"`
}
