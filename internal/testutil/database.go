package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the test database. It expects a MySQL instance on
// localhost:3306 with a 'stockscan_test' schema and skips the test otherwise.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/stockscan_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"ScanLog"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the scan log table.
func SetupTestTables(t *testing.T, db *sql.DB) {
	if _, err := db.Exec(scanLogTable); err != nil {
		t.Logf("failed to create table ScanLog: %v", err)
	}
	if _, err := db.Exec("DELETE FROM ScanLog"); err != nil {
		t.Logf("failed to clean table ScanLog: %v", err)
	}
}

const scanLogTable = `
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
