package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/personnel-backend/internal/domain/personnel"
)

var UserAggregateContract = Contract{
	Name:             "Personnel.UserAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	DeletePolicy:     DeletePolicySoft,
	Notes: "Owns the User, PersonalInfo and EmploymentInfo rows as one unit and validates the " +
		"designation Role inside the same transaction.",
}

// UserAggregate owns the atomic lifecycle of a user and its two child records.
//
// Write method failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeInternal.
type UserAggregate interface {
	Aggregate

	// Create persists PersonalInfo, EmploymentInfo and User in one transaction.
	Create(ctx context.Context, in CreateUserInput) (*personnel.User, error)

	// Update applies only the supplied parts and sub-fields.
	Update(ctx context.Context, in UpdateUserInput) (*personnel.User, error)

	// Delete removes all three records or none of them.
	Delete(ctx context.Context, id uuid.UUID) (DeleteUserResult, error)
}

// PasswordHasher is the opaque hashing capability the aggregate delegates to.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(plain, hashed string) bool
}

type PersonalInfoInput struct {
	FirstName   string
	LastName    string
	Mobile      string
	DateOfBirth *time.Time
	Email       *string
	BloodGroup  *personnel.BloodGroup
	Address     *string
}

type EmploymentInfoInput struct {
	DesignationID uuid.UUID
	EmpID         int
	NoticePeriod  int
	Email         *string
	JoiningDate   *time.Time
	ExpYears      *int
	ExpMonths     *int
	ExpDays       *int
}

type CreateUserInput struct {
	Password       string
	PersonalInfo   PersonalInfoInput
	EmploymentInfo EmploymentInfoInput
}

// PersonalInfoPatch fields left nil are not touched.
type PersonalInfoPatch struct {
	FirstName   *string
	LastName    *string
	Mobile      *string
	DateOfBirth *time.Time
	Email       *string
	BloodGroup  *personnel.BloodGroup
	Address     *string
}

// EmploymentInfoPatch fields left nil are not touched.
type EmploymentInfoPatch struct {
	DesignationID *uuid.UUID
	EmpID         *int
	NoticePeriod  *int
	Email         *string
	JoiningDate   *time.Time
	ExpYears      *int
	ExpMonths     *int
	ExpDays       *int
}

type UpdateUserInput struct {
	ID             uuid.UUID
	Password       *string
	PersonalInfo   *PersonalInfoPatch
	EmploymentInfo *EmploymentInfoPatch
}

type DeleteUserResult struct {
	UserID           uuid.UUID
	PersonalInfoID   uuid.UUID
	EmploymentInfoID uuid.UUID
	DeletedAt        time.Time
}
