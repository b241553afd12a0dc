package repos

import (
	"github.com/yungbote/personnel-backend/internal/data/repos/role"
	"github.com/yungbote/personnel-backend/internal/data/repos/user"
	"github.com/yungbote/personnel-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type RoleRepo = role.RoleRepo

type UserRepo = user.UserRepo
type PersonalInfoRepo = user.PersonalInfoRepo
type EmploymentInfoRepo = user.EmploymentInfoRepo
type UserListFilter = user.ListFilter

func NewRoleRepo(db *gorm.DB, baseLog *logger.Logger) RoleRepo { return role.NewRoleRepo(db, baseLog) }

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewPersonalInfoRepo(db *gorm.DB, baseLog *logger.Logger) PersonalInfoRepo {
	return user.NewPersonalInfoRepo(db, baseLog)
}
func NewEmploymentInfoRepo(db *gorm.DB, baseLog *logger.Logger) EmploymentInfoRepo {
	return user.NewEmploymentInfoRepo(db, baseLog)
}
