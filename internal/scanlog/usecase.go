package scanlog

import (
	"context"

	"stockscan/internal/dto"
)

type historyUseCase struct {
	service Service
}

func NewHistoryUseCase(service Service) HistoryUseCase {
	return &historyUseCase{service: service}
}

func (uc *historyUseCase) RecentScans(ctx context.Context, limit int) (*dto.ScanHistoryResponse, error) {
	records, err := uc.service.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	scans := make([]dto.ScanRecordDTO, 0, len(records))
	for _, r := range records {
		scans = append(scans, dto.ScanRecordDTO{
			ID:         r.ID,
			TraceID:    r.TraceID,
			Operator:   r.OperatorID,
			Barcode:    r.Barcode,
			Product:    r.ProductID,
			Outcome:    r.Outcome,
			Stock:      r.TotalQuantity,
			Error:      r.ErrorMessage,
			DurationMs: r.DurationMs,
			CreatedAt:  r.CreatedAt,
		})
	}

	return &dto.ScanHistoryResponse{Scans: scans}, nil
}
