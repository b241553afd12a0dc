package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/personnel-backend/internal/domain/personnel"
	"gorm.io/gorm"
)

func SeedRole(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *personnel.Role {
	tb.Helper()
	r := &personnel.Role{ID: uuid.New(), Name: name}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed role: %v", err)
	}
	return r
}

// SeedUser writes the three aggregate rows directly, bypassing the aggregate.
func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, roleID uuid.UUID, empID int, mobile string) *personnel.User {
	tb.Helper()
	pi := &personnel.PersonalInfo{ID: uuid.New(), FirstName: "A", LastName: "B", Mobile: mobile}
	if err := tx.WithContext(ctx).Create(pi).Error; err != nil {
		tb.Fatalf("seed personal info: %v", err)
	}
	ei := &personnel.EmploymentInfo{ID: uuid.New(), DesignationID: roleID, EmpID: empID, NoticePeriod: 30}
	if err := tx.WithContext(ctx).Omit("Designation").Create(ei).Error; err != nil {
		tb.Fatalf("seed employment info: %v", err)
	}
	u := &personnel.User{ID: uuid.New(), Password: "pw", PersonalInfoID: pi.ID, EmploymentInfoID: ei.ID}
	if err := tx.WithContext(ctx).Omit("PersonalInfo", "EmploymentInfo").Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	u.PersonalInfo = pi
	u.EmploymentInfo = ei
	return u
}
