package db

import (
	"fmt"

	"github.com/yungbote/personnel-backend/internal/domain/personnel"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&personnel.Role{},
		&personnel.PersonalInfo{},
		&personnel.EmploymentInfo{},
		&personnel.User{},
	)
}

// EnsurePersonnelIndexes creates the partial unique indexes that back the
// aggregate's uniqueness rules. Soft-deleted rows are excluded so their values
// can be reused. Both postgres and sqlite accept this syntax.
func EnsurePersonnelIndexes(db *gorm.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"idx_role_name_active", `
			CREATE UNIQUE INDEX IF NOT EXISTS idx_role_name_active
			ON role (lower(name))
			WHERE deleted_at IS NULL;`},
		{"idx_personal_info_mobile_active", `
			CREATE UNIQUE INDEX IF NOT EXISTS idx_personal_info_mobile_active
			ON personal_info (mobile)
			WHERE deleted_at IS NULL;`},
		{"idx_personal_info_email_active", `
			CREATE UNIQUE INDEX IF NOT EXISTS idx_personal_info_email_active
			ON personal_info (email)
			WHERE deleted_at IS NULL AND email IS NOT NULL;`},
		{"idx_employment_info_emp_id_active", `
			CREATE UNIQUE INDEX IF NOT EXISTS idx_employment_info_emp_id_active
			ON employment_info (emp_id)
			WHERE deleted_at IS NULL;`},
	}
	for _, s := range stmts {
		if err := db.Exec(s.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", s.name, err)
		}
	}
	return nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating personnel tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsurePersonnelIndexes(s.db); err != nil {
		s.log.Error("Personnel index migration failed", "error", err)
		return err
	}
	return nil
}
