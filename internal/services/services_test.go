package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/personnel-backend/internal/data/aggregates"
	"github.com/yungbote/personnel-backend/internal/data/repos"
	"github.com/yungbote/personnel-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/personnel-backend/internal/domain/aggregates"
	"github.com/yungbote/personnel-backend/internal/domain/personnel"
	"github.com/yungbote/personnel-backend/internal/platform/logger"
)

type env struct {
	db      *gorm.DB
	log     *logger.Logger
	roles   repos.RoleRepo
	users   repos.UserRepo
	employ  repos.EmploymentInfoRepo
	hasher  domainagg.PasswordHasher
	agg     domainagg.UserAggregate
	roleSvc RoleService
	userSvc UserService
	seeder  *Seeder
}

func newEnv(t *testing.T) env {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	e := env{
		db:     db,
		log:    log,
		roles:  repos.NewRoleRepo(db, log),
		users:  repos.NewUserRepo(db, log),
		employ: repos.NewEmploymentInfoRepo(db, log),
		hasher: NewBcryptHasher(4),
	}
	e.agg = aggregates.NewUserAggregate(aggregates.UserAggregateDeps{
		Base:           aggregates.BaseDeps{DB: db, Log: log},
		Roles:          e.roles,
		Users:          e.users,
		PersonalInfo:   repos.NewPersonalInfoRepo(db, log),
		EmploymentInfo: e.employ,
		Hasher:         e.hasher,
	})
	e.roleSvc = NewRoleService(db, log, e.roles, e.employ)
	e.userSvc = NewUserService(log, e.users, e.agg)
	e.seeder = NewSeeder(log, e.roles, e.users, e.agg)
	return e
}

func (e env) createUser(t *testing.T, roleName string, empID int, mobile string) *personnel.User {
	t.Helper()
	role, err := e.roleSvc.Create(context.Background(), CreateRoleInput{Name: roleName})
	if err != nil {
		t.Fatalf("create role: %v", err)
	}
	user, err := e.userSvc.Create(context.Background(), domainagg.CreateUserInput{
		Password: "secret-pass",
		PersonalInfo: domainagg.PersonalInfoInput{
			FirstName: "Asha",
			LastName:  "Rao",
			Mobile:    mobile,
		},
		EmploymentInfo: domainagg.EmploymentInfoInput{
			DesignationID: role.ID,
			EmpID:         empID,
			NoticePeriod:  30,
		},
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}
