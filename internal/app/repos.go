package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/personnel-backend/internal/data/repos"
	"github.com/yungbote/personnel-backend/internal/platform/logger"
)

type Repos struct {
	Role           repos.RoleRepo
	User           repos.UserRepo
	PersonalInfo   repos.PersonalInfoRepo
	EmploymentInfo repos.EmploymentInfoRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Role:           repos.NewRoleRepo(db, log),
		User:           repos.NewUserRepo(db, log),
		PersonalInfo:   repos.NewPersonalInfoRepo(db, log),
		EmploymentInfo: repos.NewEmploymentInfoRepo(db, log),
	}
}
