package role

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/yungbote/personnel-backend/internal/data/pagination"
	"github.com/yungbote/personnel-backend/internal/domain/personnel"
	"github.com/yungbote/personnel-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type RoleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, role *personnel.Role) (*personnel.Role, error)
	GetByID(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) (*personnel.Role, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*personnel.Role, error)
	Update(ctx context.Context, tx *gorm.DB, roleID uuid.UUID, fields map[string]any) error
	SoftDelete(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) error
	Source(tx *gorm.DB) pagination.Source[personnel.Role]
}

type roleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoleRepo(db *gorm.DB, baseLog *logger.Logger) RoleRepo {
	repoLog := baseLog.With("repo", "RoleRepo")
	return &roleRepo{db: db, log: repoLog}
}

func (rr *roleRepo) Create(ctx context.Context, tx *gorm.DB, role *personnel.Role) (*personnel.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if err := transaction.WithContext(ctx).Create(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

// GetByID returns gorm.ErrRecordNotFound when the role is absent or soft-deleted.
func (rr *roleRepo) GetByID(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) (*personnel.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var r personnel.Role
	if err := transaction.WithContext(ctx).
		Where("id = ?", roleID).
		First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// GetByName matches case-insensitively, the same way the unique index does.
func (rr *roleRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*personnel.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var r personnel.Role
	if err := transaction.WithContext(ctx).
		Where("lower(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (rr *roleRepo) Update(ctx context.Context, tx *gorm.DB, roleID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(fields) == 0 {
		return nil
	}
	res := transaction.WithContext(ctx).
		Model(&personnel.Role{}).
		Where("id = ?", roleID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (rr *roleRepo) SoftDelete(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ?", roleID).
		Delete(&personnel.Role{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (rr *roleRepo) Source(tx *gorm.DB) pagination.Source[personnel.Role] {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return pagination.NewGormSource[personnel.Role](transaction,
		pagination.WithSortFields(map[string]string{"name": "name"}),
	)
}
