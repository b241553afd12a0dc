package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/personnel-backend/internal/data/aggregates"
	"github.com/yungbote/personnel-backend/internal/data/pagination"
	"github.com/yungbote/personnel-backend/internal/data/repos"
	domainagg "github.com/yungbote/personnel-backend/internal/domain/aggregates"
	"github.com/yungbote/personnel-backend/internal/domain/personnel"
	"github.com/yungbote/personnel-backend/internal/platform/logger"
)

type CreateRoleInput struct {
	Name        string
	Description *string
}

type UpdateRoleInput struct {
	Name        *string
	Description *string
}

type RoleService interface {
	Create(ctx context.Context, in CreateRoleInput) (*personnel.Role, error)
	FindByID(ctx context.Context, id uuid.UUID) (*personnel.Role, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateRoleInput) (*personnel.Role, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, req pagination.Request, current *url.URL) (*pagination.Page[personnel.Role], error)
}

type roleService struct {
	db             *gorm.DB
	log            *logger.Logger
	roles          repos.RoleRepo
	employmentInfo repos.EmploymentInfoRepo
}

func NewRoleService(db *gorm.DB, log *logger.Logger, roles repos.RoleRepo, employmentInfo repos.EmploymentInfoRepo) RoleService {
	serviceLog := log.With("service", "RoleService")
	return &roleService{db: db, log: serviceLog, roles: roles, employmentInfo: employmentInfo}
}

func (rs *roleService) Create(ctx context.Context, in CreateRoleInput) (*personnel.Role, error) {
	const op = "Personnel.Role.Create"
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "name is required", nil)
	}
	role, err := rs.roles.Create(ctx, nil, &personnel.Role{Name: name, Description: in.Description})
	if err != nil {
		return nil, rs.mapNameError(op, name, err)
	}
	rs.log.Info("Role created", "role_id", role.ID.String())
	return role, nil
}

func (rs *roleService) FindByID(ctx context.Context, id uuid.UUID) (*personnel.Role, error) {
	const op = "Personnel.Role.FindByID"
	role, err := rs.roles.GetByID(ctx, nil, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, aggregates.NotFoundError(op, "role", id)
	}
	if err != nil {
		return nil, domainagg.WithEntity(aggregates.MapError(op, err), id.String())
	}
	return role, nil
}

func (rs *roleService) Update(ctx context.Context, id uuid.UUID, in UpdateRoleInput) (*personnel.Role, error) {
	const op = "Personnel.Role.Update"
	fields := map[string]any{}
	var name string
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domainagg.NewError(domainagg.CodeValidation, op, "name must not be empty", nil)
		}
		fields["name"] = name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}

	var out *personnel.Role
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rs.roles.Update(ctx, tx, id, fields); err != nil {
			return err
		}
		role, err := rs.roles.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		out = role
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, aggregates.NotFoundError(op, "role", id)
	}
	if err != nil {
		return nil, domainagg.WithEntity(rs.mapNameError(op, name, err), id.String())
	}
	return out, nil
}

// Delete soft-deletes the role. A role still assigned to a live employee is
// kept and reported as a conflict.
func (rs *roleService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "Personnel.Role.Delete"
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := rs.employmentInfo.CountByDesignation(ctx, tx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return aggregates.ConflictError(fmt.Sprintf("role is assigned to %d user(s)", n))
		}
		return rs.roles.SoftDelete(ctx, tx, id)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return aggregates.NotFoundError(op, "role", id)
	}
	if err != nil {
		return domainagg.WithEntity(aggregates.MapError(op, err), id.String())
	}
	rs.log.Info("Role deleted", "role_id", id.String())
	return nil
}

func (rs *roleService) List(ctx context.Context, req pagination.Request, current *url.URL) (*pagination.Page[personnel.Role], error) {
	const op = "Personnel.Role.List"
	page, err := pagination.Paginate(ctx, rs.roles.Source(nil), req, current)
	if err != nil {
		return nil, mapListError(op, err)
	}
	return page, nil
}

func (rs *roleService) mapNameError(op, name string, err error) error {
	mapped := aggregates.MapError(op, err)
	if domainagg.IsCode(mapped, domainagg.CodeConflict) && name != "" {
		return domainagg.NewError(domainagg.CodeConflict, op, fmt.Sprintf("role with name %q already exists", name), err)
	}
	return mapped
}
