package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// SQLiteMemoryDSN names a private in-memory database. Distinct names never
// share state.
func SQLiteMemoryDSN(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)
}

func openSQLite(path string, gormLog gormLogger.Interface) (*gorm.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "personnel.db"
	}
	if !strings.Contains(path, "?") {
		path += "?_foreign_keys=1"
	}
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite %q: %w", path, err)
	}
	return gdb, nil
}

// OpenSQLite opens a sqlite database with duplicate-key translation enabled.
// The returned handle is limited to a single connection.
func OpenSQLite(dsn string, gormLog gormLogger.Interface) (*gorm.DB, error) {
	if gormLog == nil {
		gormLog = gormLogger.Default.LogMode(gormLogger.Silent)
	}
	gdb, err := openSQLite(dsn, gormLog)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return gdb, nil
}
