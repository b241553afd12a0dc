package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/yungbote/personnel-backend/internal/domain/personnel"
	"github.com/yungbote/personnel-backend/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmploymentInfoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, info *personnel.EmploymentInfo) (*personnel.EmploymentInfo, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, infoID uuid.UUID, fields map[string]any) error
	SoftDelete(ctx context.Context, tx *gorm.DB, infoID uuid.UUID) error
	CountByDesignation(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) (int64, error)
}

type employmentInfoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmploymentInfoRepo(db *gorm.DB, baseLog *logger.Logger) EmploymentInfoRepo {
	repoLog := baseLog.With("repo", "EmploymentInfoRepo")
	return &employmentInfoRepo{db: db, log: repoLog}
}

// Create never upserts the referenced Role.
func (er *employmentInfoRepo) Create(ctx context.Context, tx *gorm.DB, info *personnel.EmploymentInfo) (*personnel.EmploymentInfo, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	if err := transaction.WithContext(ctx).Omit(clause.Associations).Create(info).Error; err != nil {
		return nil, err
	}
	return info, nil
}

func (er *employmentInfoRepo) UpdateFields(ctx context.Context, tx *gorm.DB, infoID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	if len(fields) == 0 {
		return nil
	}
	return rowsOrNotFound(transaction.WithContext(ctx).
		Model(&personnel.EmploymentInfo{}).
		Where("id = ?", infoID).
		Updates(fields))
}

func (er *employmentInfoRepo) SoftDelete(ctx context.Context, tx *gorm.DB, infoID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return rowsOrNotFound(transaction.WithContext(ctx).
		Where("id = ?", infoID).
		Delete(&personnel.EmploymentInfo{}))
}

// CountByDesignation counts live employment records pointing at roleID.
func (er *employmentInfoRepo) CountByDesignation(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var n int64
	if err := transaction.WithContext(ctx).
		Model(&personnel.EmploymentInfo{}).
		Where("designation_id = ?", roleID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
