package db

import (
	"fmt"
	"net/url"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// PostgresDSN builds a URL-form DSN; credentials are escaped.
func PostgresDSN(cfg Config) string {
	port := cfg.PostgresPort
	if port == 0 {
		port = 5432
	}
	sslMode := cfg.PostgresSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.PostgresUser, cfg.PostgresPassword),
		Host:     cfg.PostgresHost + ":" + strconv.Itoa(port),
		Path:     "/" + cfg.PostgresName,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}
	return u.String()
}

// Unique violations keep their *pgconn.PgError so constraint names reach the
// conflict message; TranslateError stays off for postgres.
func openPostgres(cfg Config, gormLog gormLogger.Interface) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(PostgresDSN(cfg)), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return gdb, nil
}
