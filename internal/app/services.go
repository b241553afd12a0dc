package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/personnel-backend/internal/data/aggregates"
	domainagg "github.com/yungbote/personnel-backend/internal/domain/aggregates"
	"github.com/yungbote/personnel-backend/internal/observability"
	"github.com/yungbote/personnel-backend/internal/platform/logger"
	"github.com/yungbote/personnel-backend/internal/services"
)

type Services struct {
	Hasher        domainagg.PasswordHasher
	UserAggregate domainagg.UserAggregate
	Auth          services.AuthService
	User          services.UserService
	Role          services.RoleService
	Seeder        *services.Seeder
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")
	hasher := services.NewBcryptHasher(cfg.Auth.BcryptCost)
	userAggregate := aggregates.NewUserAggregate(aggregates.UserAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:     db,
			Log:    log,
			Runner: aggregates.NewGormTxRunner(db),
			Hooks:  aggregates.NewObservabilityHooks(metrics),
		},
		Roles:          repos.Role,
		Users:          repos.User,
		PersonalInfo:   repos.PersonalInfo,
		EmploymentInfo: repos.EmploymentInfo,
		Hasher:         hasher,
	})
	return Services{
		Hasher:        hasher,
		UserAggregate: userAggregate,
		Auth:          services.NewAuthService(log, repos.User, hasher, cfg.AuthService()),
		User:          services.NewUserService(log, repos.User, userAggregate),
		Role:          services.NewRoleService(db, log, repos.Role, repos.EmploymentInfo),
		Seeder:        services.NewSeeder(log, repos.Role, repos.User, userAggregate),
	}
}
