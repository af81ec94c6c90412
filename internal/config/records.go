package config

import (
	"fmt"
	"os"
	"strings"
)

type RecordsDriver string

const (
	DriverSQLite   RecordsDriver = "sqlite"
	DriverPostgres RecordsDriver = "postgres"
	DriverMemory   RecordsDriver = "memory"
)

type Records struct {
	Driver     RecordsDriver
	SQLitePath string
}

func NewRecords() (*Records, error) {
	cfg := &Records{
		Driver:     DriverSQLite,
		SQLitePath: "records.db",
	}

	if driver, ok := os.LookupEnv("RECORDS_DRIVER"); ok {
		switch d := RecordsDriver(strings.ToLower(strings.TrimSpace(driver))); d {
		case DriverSQLite, DriverPostgres, DriverMemory:
			cfg.Driver = d
		default:
			return nil, fmt.Errorf("unknown RECORDS_DRIVER %q", driver)
		}
	}

	if path, ok := os.LookupEnv("SQLITE_PATH"); ok {
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("SQLITE_PATH env variable is empty")
		}
		cfg.SQLitePath = path
	}

	return cfg, nil
}
