package services

import (
	"context"
	"errors"
	"net/url"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/personnel-backend/internal/data/aggregates"
	"github.com/yungbote/personnel-backend/internal/data/pagination"
	"github.com/yungbote/personnel-backend/internal/data/repos"
	domainagg "github.com/yungbote/personnel-backend/internal/domain/aggregates"
	"github.com/yungbote/personnel-backend/internal/domain/personnel"
	"github.com/yungbote/personnel-backend/internal/platform/logger"
)

type UserService interface {
	Create(ctx context.Context, in domainagg.CreateUserInput) (*personnel.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*personnel.User, error)
	Update(ctx context.Context, in domainagg.UpdateUserInput) (*personnel.User, error)
	Delete(ctx context.Context, id uuid.UUID) (domainagg.DeleteUserResult, error)
	List(ctx context.Context, req pagination.Request, roleID *uuid.UUID, current *url.URL) (*pagination.Page[personnel.User], error)
}

type userService struct {
	log       *logger.Logger
	users     repos.UserRepo
	aggregate domainagg.UserAggregate
}

func NewUserService(log *logger.Logger, users repos.UserRepo, aggregate domainagg.UserAggregate) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{log: serviceLog, users: users, aggregate: aggregate}
}

func (us *userService) Create(ctx context.Context, in domainagg.CreateUserInput) (*personnel.User, error) {
	user, err := us.aggregate.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	us.log.Info("User created", "user_id", user.ID.String())
	return user, nil
}

func (us *userService) FindByID(ctx context.Context, id uuid.UUID) (*personnel.User, error) {
	const op = "Personnel.User.FindByID"
	user, err := us.users.GetByID(ctx, nil, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, aggregates.NotFoundError(op, "user", id)
	}
	if err != nil {
		return nil, domainagg.WithEntity(aggregates.MapError(op, err), id.String())
	}
	return user, nil
}

func (us *userService) Update(ctx context.Context, in domainagg.UpdateUserInput) (*personnel.User, error) {
	user, err := us.aggregate.Update(ctx, in)
	if err != nil {
		return nil, err
	}
	us.log.Info("User updated", "user_id", user.ID.String())
	return user, nil
}

func (us *userService) Delete(ctx context.Context, id uuid.UUID) (domainagg.DeleteUserResult, error) {
	res, err := us.aggregate.Delete(ctx, id)
	if err != nil {
		return domainagg.DeleteUserResult{}, err
	}
	us.log.Info("User deleted", "user_id", id.String())
	return res, nil
}

// List pages through live users, optionally only those holding roleID.
func (us *userService) List(ctx context.Context, req pagination.Request, roleID *uuid.UUID, current *url.URL) (*pagination.Page[personnel.User], error) {
	const op = "Personnel.User.List"
	src := us.users.Source(nil, repos.UserListFilter{RoleID: roleID})
	page, err := pagination.Paginate(ctx, src, req, current)
	if err != nil {
		return nil, mapListError(op, err)
	}
	return page, nil
}
