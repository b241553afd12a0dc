package pagination

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/yungbote/personnel-backend/internal/data/db"
	"github.com/yungbote/personnel-backend/internal/domain/personnel"
	"gorm.io/gorm"
)

func seededRoles(t *testing.T, n int) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenSQLite(db.SQLiteMemoryDSN(t.Name()), nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.AutoMigrateAll(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		r := &personnel.Role{Name: fmt.Sprintf("role-%02d", i), CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := gdb.Create(r).Error; err != nil {
			t.Fatalf("seed role %d: %v", i, err)
		}
	}
	return gdb
}

func TestGormSourceWindowAndOrder(t *testing.T) {
	gdb := seededRoles(t, 7)
	src := NewGormSource[personnel.Role](gdb)
	ctx := context.Background()

	n, err := src.Count(ctx)
	if err != nil || n != 7 {
		t.Fatalf("Count: n=%d err=%v", n, err)
	}

	rows, err := src.Fetch(ctx, Sort{Field: "createdAt", Order: OrderDesc}, &Window{Skip: 2, Take: 3})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(rows) != 3 || rows[0].Name != "role-04" || rows[2].Name != "role-02" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestGormSourceFilterAppliesToCount(t *testing.T) {
	gdb := seededRoles(t, 6)
	src := NewGormSource[personnel.Role](gdb,
		WithFilter(func(q *gorm.DB) *gorm.DB { return q.Where("name IN ?", []string{"role-01", "role-03"}) }),
		WithSortFields(map[string]string{"name": "name"}),
	)

	page, err := Paginate[personnel.Role](context.Background(), src, Request{SortBy: "name"}, nil)
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	if page.Meta.TotalItems != 2 || len(page.Data) != 2 || page.Data[0].Name != "role-01" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestGormSourceExcludesSoftDeleted(t *testing.T) {
	gdb := seededRoles(t, 3)
	if err := gdb.Where("name = ?", "role-00").Delete(&personnel.Role{}).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	n, err := NewGormSource[personnel.Role](gdb).Count(context.Background())
	if err != nil || n != 2 {
		t.Fatalf("Count: n=%d err=%v", n, err)
	}
}

func TestGormSourceRejectsUnknownSortField(t *testing.T) {
	gdb := seededRoles(t, 1)
	_, err := NewGormSource[personnel.Role](gdb).Fetch(context.Background(), Sort{Field: "password"}, nil)
	if !errors.Is(err, ErrUnknownSortField) {
		t.Fatalf("expected ErrUnknownSortField, got %v", err)
	}
}
