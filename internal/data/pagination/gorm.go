package pagination

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultSortFields maps API sort names to columns every entity has.
var DefaultSortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

type sourceConfig struct {
	scopes   []func(*gorm.DB) *gorm.DB
	preloads []string
	sortable map[string]string
}

type SourceOption func(*sourceConfig)

// WithFilter restricts both Count and Fetch.
func WithFilter(scope func(*gorm.DB) *gorm.DB) SourceOption {
	return func(c *sourceConfig) {
		if scope != nil {
			c.scopes = append(c.scopes, scope)
		}
	}
}

// WithRelations preloads associations on fetched rows.
func WithRelations(relations ...string) SourceOption {
	return func(c *sourceConfig) {
		c.preloads = append(c.preloads, relations...)
	}
}

// WithSortFields adds sortable API fields on top of DefaultSortFields.
func WithSortFields(fields map[string]string) SourceOption {
	return func(c *sourceConfig) {
		for k, v := range fields {
			c.sortable[k] = v
		}
	}
}

// GormSource serves pages of T from its gorm table.
type GormSource[T any] struct {
	db  *gorm.DB
	cfg sourceConfig
}

func NewGormSource[T any](db *gorm.DB, opts ...SourceOption) *GormSource[T] {
	cfg := sourceConfig{sortable: make(map[string]string, len(DefaultSortFields))}
	for k, v := range DefaultSortFields {
		cfg.sortable[k] = v
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &GormSource[T]{db: db, cfg: cfg}
}

func (s *GormSource[T]) base(ctx context.Context) *gorm.DB {
	var model T
	return s.db.WithContext(ctx).Model(&model).Scopes(s.cfg.scopes...)
}

func (s *GormSource[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.base(ctx).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (s *GormSource[T]) Fetch(ctx context.Context, sort Sort, window *Window) ([]T, error) {
	column, ok := s.cfg.sortable[sort.Field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortField, sort.Field)
	}

	q := s.base(ctx)
	for _, rel := range s.cfg.preloads {
		q = q.Preload(rel)
	}
	q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Table: clause.CurrentTable, Name: column}, Desc: sort.Desc()},
		{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}},
	}})
	if window != nil {
		q = q.Offset(window.Skip).Limit(window.Take)
	}

	var out []T
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
