package dto

import "time"

type ScanRecordDTO struct {
	ID         string    `json:"id"`
	TraceID    string    `json:"traceId"`
	Operator   *string   `json:"operator"`
	Barcode    string    `json:"barcode"`
	Product    *string   `json:"product"`
	Outcome    string    `json:"outcome"`
	Stock      *float64  `json:"stock"`
	Error      *string   `json:"error"`
	DurationMs int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ScanHistoryResponse struct {
	Scans []ScanRecordDTO `json:"scans"`
}
