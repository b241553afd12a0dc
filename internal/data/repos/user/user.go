package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/personnel-backend/internal/data/pagination"
	"github.com/yungbote/personnel-backend/internal/domain/personnel"
	"github.com/yungbote/personnel-backend/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AggregateRelations are the preloads that make a User a full aggregate.
var AggregateRelations = []string{"PersonalInfo", "EmploymentInfo", "EmploymentInfo.Designation"}

// ListFilter narrows a user listing. A nil RoleID lists everyone.
type ListFilter struct {
	RoleID *uuid.UUID
}

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *personnel.User) (*personnel.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*personnel.User, error)
	GetByEmpID(ctx context.Context, tx *gorm.DB, empID int) (*personnel.User, error)
	UpdatePassword(ctx context.Context, tx *gorm.DB, userID uuid.UUID, passwordHash string) error
	Touch(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	SoftDelete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	Source(tx *gorm.DB, filter ListFilter) pagination.Source[personnel.User]
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

// Create inserts only the user row; the owned records must already exist.
func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, user *personnel.User) (*personnel.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if err := transaction.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID loads the full aggregate. gorm.ErrRecordNotFound when absent or soft-deleted.
func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*personnel.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var u personnel.User
	if err := withAggregate(transaction.WithContext(ctx)).
		Where("id = ?", userID).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (ur *userRepo) GetByEmpID(ctx context.Context, tx *gorm.DB, empID int) (*personnel.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	q := transaction.WithContext(ctx)
	var u personnel.User
	if err := withAggregate(q).
		Where("employment_info_id IN (?)", q.Session(&gorm.Session{NewDB: true}).
			Model(&personnel.EmploymentInfo{}).
			Select("id").
			Where("emp_id = ?", empID)).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (ur *userRepo) UpdatePassword(ctx context.Context, tx *gorm.DB, userID uuid.UUID, passwordHash string) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return rowsOrNotFound(transaction.WithContext(ctx).
		Model(&personnel.User{}).
		Where("id = ?", userID).
		Update("password", passwordHash))
}

// Touch bumps updated_at after a child-only change.
func (ur *userRepo) Touch(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return rowsOrNotFound(transaction.WithContext(ctx).
		Model(&personnel.User{}).
		Where("id = ?", userID).
		Update("updated_at", time.Now().UTC()))
}

func (ur *userRepo) SoftDelete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return rowsOrNotFound(transaction.WithContext(ctx).
		Where("id = ?", userID).
		Delete(&personnel.User{}))
}

func (ur *userRepo) Source(tx *gorm.DB, filter ListFilter) pagination.Source[personnel.User] {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	opts := []pagination.SourceOption{pagination.WithRelations(AggregateRelations...)}
	if filter.RoleID != nil {
		roleID := *filter.RoleID
		opts = append(opts, pagination.WithFilter(func(q *gorm.DB) *gorm.DB {
			return q.Where("employment_info_id IN (?)", q.Session(&gorm.Session{NewDB: true}).
				Model(&personnel.EmploymentInfo{}).
				Select("id").
				Where("designation_id = ?", roleID))
		}))
	}
	return pagination.NewGormSource[personnel.User](transaction, opts...)
}

func withAggregate(q *gorm.DB) *gorm.DB {
	for _, rel := range AggregateRelations {
		q = q.Preload(rel)
	}
	return q
}

func rowsOrNotFound(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
