package scanlog

import (
	"context"

	"stockscan/internal/domain"
	"stockscan/internal/dto"
)

type HistoryUseCase interface {
	RecentScans(ctx context.Context, limit int) (*dto.ScanHistoryResponse, error)
}

type Service interface {
	Record(ctx context.Context, record domain.ScanRecord) error
	Recent(ctx context.Context, limit int) ([]domain.ScanRecord, error)
}

type Repository interface {
	Insert(ctx context.Context, record domain.ScanRecord) error
	FindRecent(ctx context.Context, limit int) ([]domain.ScanRecord, error)
}
