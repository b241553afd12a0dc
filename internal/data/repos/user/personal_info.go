package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/yungbote/personnel-backend/internal/domain/personnel"
	"github.com/yungbote/personnel-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type PersonalInfoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, info *personnel.PersonalInfo) (*personnel.PersonalInfo, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, infoID uuid.UUID, fields map[string]any) error
	SoftDelete(ctx context.Context, tx *gorm.DB, infoID uuid.UUID) error
}

type personalInfoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonalInfoRepo(db *gorm.DB, baseLog *logger.Logger) PersonalInfoRepo {
	repoLog := baseLog.With("repo", "PersonalInfoRepo")
	return &personalInfoRepo{db: db, log: repoLog}
}

func (pr *personalInfoRepo) Create(ctx context.Context, tx *gorm.DB, info *personnel.PersonalInfo) (*personnel.PersonalInfo, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Create(info).Error; err != nil {
		return nil, err
	}
	return info, nil
}

// UpdateFields writes only the given columns; an empty map is a no-op.
func (pr *personalInfoRepo) UpdateFields(ctx context.Context, tx *gorm.DB, infoID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return rowsOrNotFound(transaction.WithContext(ctx).
		Model(&personnel.PersonalInfo{}).
		Where("id = ?", infoID).
		Updates(fields))
}

func (pr *personalInfoRepo) SoftDelete(ctx context.Context, tx *gorm.DB, infoID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return rowsOrNotFound(transaction.WithContext(ctx).
		Where("id = ?", infoID).
		Delete(&personnel.PersonalInfo{}))
}
