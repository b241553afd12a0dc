package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/personnel-backend/internal/data/repos"
	domainagg "github.com/yungbote/personnel-backend/internal/domain/aggregates"
	"github.com/yungbote/personnel-backend/internal/domain/personnel"
	"github.com/yungbote/personnel-backend/internal/platform/logger"
)

const (
	SuperAdminEmpID    = 1
	superAdminMobile   = "7720988899"
	superAdminEmail    = "superadmin@company.com"
	superAdminPassword = "1234"
)

type Seeder struct {
	log       *logger.Logger
	roles     repos.RoleRepo
	users     repos.UserRepo
	aggregate domainagg.UserAggregate
}

func NewSeeder(log *logger.Logger, roles repos.RoleRepo, users repos.UserRepo, aggregate domainagg.UserAggregate) *Seeder {
	return &Seeder{log: log.With("service", "Seeder"), roles: roles, users: users, aggregate: aggregate}
}

// SeedSuperAdmin makes sure the Super Admin role and the bootstrap
// administrator exist. Running it again is a no-op.
func (s *Seeder) SeedSuperAdmin(ctx context.Context) error {
	role, err := s.roles.GetByName(ctx, nil, personnel.SuperAdminRoleName)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		desc := "Full administrative access"
		role, err = s.roles.Create(ctx, nil, &personnel.Role{Name: personnel.SuperAdminRoleName, Description: &desc})
		if err != nil {
			return fmt.Errorf("seed role: %w", err)
		}
		s.log.Info("Seeded role", "role", role.Name)
	} else if err != nil {
		return fmt.Errorf("load seed role: %w", err)
	}

	if _, err := s.users.GetByEmpID(ctx, nil, SuperAdminEmpID); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("load seed user: %w", err)
	}

	email := superAdminEmail
	user, err := s.aggregate.Create(ctx, domainagg.CreateUserInput{
		Password: superAdminPassword,
		PersonalInfo: domainagg.PersonalInfoInput{
			FirstName: "Super",
			LastName:  "Admin",
			Mobile:    superAdminMobile,
			Email:     &email,
		},
		EmploymentInfo: domainagg.EmploymentInfoInput{
			DesignationID: role.ID,
			EmpID:         SuperAdminEmpID,
			NoticePeriod:  60,
			Email:         &email,
		},
	})
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	s.log.Info("Seeded admin user", "user_id", user.ID.String())
	return nil
}
