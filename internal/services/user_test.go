package services

import (
	"context"
	"net/url"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/personnel-backend/internal/data/pagination"
	domainagg "github.com/yungbote/personnel-backend/internal/domain/aggregates"
)

func TestUserServiceFindByID(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	created := e.createUser(t, "Engineer", 21, "9000000021")

	got, err := e.userSvc.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.EmpID() != 21 || got.EmploymentInfo.Designation == nil || got.EmploymentInfo.Designation.Name != "Engineer" {
		t.Fatalf("aggregate not fully loaded: %+v", got)
	}
	if got.Password == "secret-pass" {
		t.Fatalf("password stored in plain text")
	}

	if _, err := e.userSvc.FindByID(ctx, uuid.New()); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserServiceListFiltersByRole(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	eng := e.createUser(t, "Engineer", 31, "9000000031")
	e.createUser(t, "Designer", 32, "9000000032")

	u, _ := url.Parse("http://localhost/api/user?roleId=" + eng.EmploymentInfo.DesignationID.String())
	roleID := eng.EmploymentInfo.DesignationID
	page, err := e.userSvc.List(ctx, pagination.Request{}, &roleID, u)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Meta.TotalItems != 1 || len(page.Data) != 1 || page.Data[0].ID != eng.ID {
		t.Fatalf("unexpected filtered page: %+v", page.Meta)
	}

	all, err := e.userSvc.List(ctx, pagination.Request{}, nil, u)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if all.Meta.TotalItems != 2 {
		t.Fatalf("expected 2 users, got %d", all.Meta.TotalItems)
	}
}

func TestUserServiceListEmptyIsNormalPage(t *testing.T) {
	e := newEnv(t)
	u, _ := url.Parse("http://localhost/api/user")
	page, err := e.userSvc.List(context.Background(), pagination.Request{}, nil, u)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Data == nil || len(page.Data) != 0 || page.Meta.TotalItems != 0 {
		t.Fatalf("unexpected empty page: %+v", page)
	}
}

func TestUserServiceDeleteThenFind(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	created := e.createUser(t, "Engineer", 41, "9000000041")

	res, err := e.userSvc.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if res.UserID != created.ID || res.PersonalInfoID != created.PersonalInfoID {
		t.Fatalf("unexpected delete result: %+v", res)
	}
	if _, err := e.userSvc.FindByID(ctx, created.ID); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if _, err := e.userSvc.Delete(ctx, created.ID); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
