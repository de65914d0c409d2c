package repository

import (
	"context"
	"database/sql"
	"fmt"

	"stockscan/internal/domain"
)

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

const createTable = `
	CREATE TABLE IF NOT EXISTS ScanLog (
		id CHAR(36) NOT NULL PRIMARY KEY,
		traceId CHAR(36) NOT NULL,
		operatorId VARCHAR(40),
		barcode VARCHAR(64) NOT NULL,
		productId VARCHAR(40),
		outcome VARCHAR(40) NOT NULL,
		totalQuantity DECIMAL(18,3),
		errorMessage TEXT,
		durationMs BIGINT NOT NULL DEFAULT 0,
		createdAt DATETIME(3) NOT NULL,
		INDEX idx_created (createdAt)
	)`

// EnsureSchema creates the ScanLog table when missing.
func (r *MySQLRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("creating ScanLog table: %w", err)
	}
	return nil
}

func (r *MySQLRepository) Insert(ctx context.Context, rec domain.ScanRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ScanLog (id, traceId, operatorId, barcode, productId, outcome, totalQuantity,
		                     errorMessage, durationMs, createdAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.TraceID, rec.OperatorID, rec.Barcode, rec.ProductID, rec.Outcome, rec.TotalQuantity,
		rec.ErrorMessage, rec.DurationMs, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting scan record: %w", err)
	}
	return nil
}

func (r *MySQLRepository) FindRecent(ctx context.Context, limit int) ([]domain.ScanRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, traceId, operatorId, barcode, productId, outcome, totalQuantity,
		       errorMessage, durationMs, createdAt
		FROM ScanLog
		ORDER BY createdAt DESC, id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying scan log: %w", err)
	}
	defer rows.Close()

	var records []domain.ScanRecord
	for rows.Next() {
		var rec domain.ScanRecord
		err := rows.Scan(
			&rec.ID, &rec.TraceID, &rec.OperatorID, &rec.Barcode, &rec.ProductID, &rec.Outcome,
			&rec.TotalQuantity, &rec.ErrorMessage, &rec.DurationMs, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning scan log row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scan log rows: %w", err)
	}

	return records, nil
}
