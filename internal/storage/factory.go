package storage

import (
	"context"
	"fmt"
	"os"
)

// Driver identifies a storage backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverMemory   Driver = "memory"
)

// Open selects a KV implementation using environment variables.
//
//	CLINIC_STORAGE_DRIVER: sqlite|postgres|memory (default sqlite)
//	CLINIC_STORAGE_PATH:   database file when driver=sqlite (default ./clinic.db)
//	DB_*:                  connection variables when driver=postgres
func Open(ctx context.Context) (KV, error) {
	driver := os.Getenv("CLINIC_STORAGE_DRIVER")
	if driver == "" {
		driver = string(DriverSQLite)
	}
	switch Driver(driver) {
	case DriverSQLite:
		return NewSQLite(os.Getenv("CLINIC_STORAGE_PATH"))
	case DriverPostgres:
		return NewPostgres(ctx)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
