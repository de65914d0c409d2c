package scanlog

import (
	"context"

	"stockscan/internal/domain"
	apperrors "stockscan/internal/errors"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type scanService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &scanService{repo: repo}
}

func (s *scanService) Record(ctx context.Context, record domain.ScanRecord) error {
	if err := s.repo.Insert(ctx, record); err != nil {
		return apperrors.NewInternalError("recording scan", err)
	}
	return nil
}

// Recent returns the newest records first. A non-positive limit means the
// default; anything above MaxLimit is capped.
func (s *scanService) Recent(ctx context.Context, limit int) ([]domain.ScanRecord, error) {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	records, err := s.repo.FindRecent(ctx, limit)
	if err != nil {
		return nil, apperrors.NewInternalError("listing scan log", err)
	}
	return records, nil
}
