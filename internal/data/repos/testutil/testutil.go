package testutil

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/yungbote/personnel-backend/internal/data/db"
	"github.com/yungbote/personnel-backend/internal/platform/logger"
	"gorm.io/gorm"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error

	dbSeq atomic.Int64
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a fresh, migrated in-memory SQLite database private to tb.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(tb.Name())
	name = name + "_" + strconv.FormatInt(dbSeq.Add(1), 10)

	gdb, err := db.OpenSQLite(db.SQLiteMemoryDSN(name), nil)
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}
	tb.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.AutoMigrateAll(gdb); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}
	if err := db.EnsurePersonnelIndexes(gdb); err != nil {
		tb.Fatalf("failed to create test indexes: %v", err)
	}
	return gdb
}

// Tx opens a transaction that is rolled back when the test ends.
// While it is open the single SQLite connection belongs to it, so every repo
// call in the test must go through the returned handle.
func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
