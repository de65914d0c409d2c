package scanlog

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"stockscan/internal/scanlog/repository"
)

// NewModule returns the history endpoint and the Service that lookups record
// into. The ScanLog table is created if missing.
func NewModule(ctx context.Context, db *sql.DB, logger *zap.Logger) (*Controller, Service, error) {
	repo := repository.NewMySQLRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, nil, fmt.Errorf("preparing scan log: %w", err)
	}
	svc := NewService(repo)
	uc := NewHistoryUseCase(svc)
	return NewController(uc, logger), svc, nil
}
