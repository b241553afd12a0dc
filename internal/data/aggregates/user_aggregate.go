package aggregates

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/personnel-backend/internal/data/repos"
	domainagg "github.com/yungbote/personnel-backend/internal/domain/aggregates"
	"github.com/yungbote/personnel-backend/internal/domain/personnel"
	"github.com/yungbote/personnel-backend/internal/pkg/dbctx"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserAggregateDeps struct {
	Base BaseDeps

	Roles          repos.RoleRepo
	Users          repos.UserRepo
	PersonalInfo   repos.PersonalInfoRepo
	EmploymentInfo repos.EmploymentInfoRepo
	Hasher         domainagg.PasswordHasher
}

type userAggregate struct {
	deps UserAggregateDeps
}

func NewUserAggregate(deps UserAggregateDeps) domainagg.UserAggregate {
	deps.Base = deps.Base.withDefaults()
	return &userAggregate{deps: deps}
}

func (a *userAggregate) Contract() domainagg.Contract {
	return domainagg.UserAggregateContract
}

func (a *userAggregate) configured() bool {
	return a.deps.Roles != nil && a.deps.Users != nil && a.deps.PersonalInfo != nil &&
		a.deps.EmploymentInfo != nil && a.deps.Hasher != nil
}

func (a *userAggregate) Create(ctx context.Context, in domainagg.CreateUserInput) (*personnel.User, error) {
	const op = "Personnel.User.Create"
	entity := "emp:" + strconv.Itoa(in.EmploymentInfo.EmpID)
	if err := validateCreate(in); err != nil {
		return nil, domainagg.WithEntity(MapError(op, err), entity)
	}
	if !a.configured() {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "user aggregate repos not configured", nil)
	}

	var out *personnel.User
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		role, err := a.deps.Roles.GetByID(dbc.Ctx, dbc.Tx, in.EmploymentInfo.DesignationID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundError(op, "role", in.EmploymentInfo.DesignationID)
		}
		if err != nil {
			return fmt.Errorf("load role: %w", err)
		}

		pi := &personnel.PersonalInfo{
			FirstName:   strings.TrimSpace(in.PersonalInfo.FirstName),
			LastName:    strings.TrimSpace(in.PersonalInfo.LastName),
			Mobile:      strings.TrimSpace(in.PersonalInfo.Mobile),
			DateOfBirth: toDate(in.PersonalInfo.DateOfBirth),
			Email:       normalizeEmail(in.PersonalInfo.Email),
			BloodGroup:  in.PersonalInfo.BloodGroup,
			Address:     in.PersonalInfo.Address,
		}
		if _, err := a.deps.PersonalInfo.Create(dbc.Ctx, dbc.Tx, pi); err != nil {
			return fmt.Errorf("personal info: %w", err)
		}

		ei := &personnel.EmploymentInfo{
			DesignationID: role.ID,
			Designation:   role,
			EmpID:         in.EmploymentInfo.EmpID,
			Email:         normalizeEmail(in.EmploymentInfo.Email),
			JoiningDate:   toDate(in.EmploymentInfo.JoiningDate),
			ExpYears:      in.EmploymentInfo.ExpYears,
			ExpMonths:     in.EmploymentInfo.ExpMonths,
			ExpDays:       in.EmploymentInfo.ExpDays,
			NoticePeriod:  in.EmploymentInfo.NoticePeriod,
		}
		if _, err := a.deps.EmploymentInfo.Create(dbc.Ctx, dbc.Tx, ei); err != nil {
			return fmt.Errorf("employment info: %w", err)
		}

		hash, err := a.deps.Hasher.Hash(in.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		u := &personnel.User{
			Password:         hash,
			PersonalInfoID:   pi.ID,
			EmploymentInfoID: ei.ID,
		}
		if _, err := a.deps.Users.Create(dbc.Ctx, dbc.Tx, u); err != nil {
			return fmt.Errorf("user: %w", err)
		}

		out, err = a.deps.Users.GetByID(dbc.Ctx, dbc.Tx, u.ID)
		if err != nil {
			return fmt.Errorf("reload user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, domainagg.WithEntity(err, entity)
	}
	return out, nil
}

func (a *userAggregate) Update(ctx context.Context, in domainagg.UpdateUserInput) (*personnel.User, error) {
	const op = "Personnel.User.Update"
	if in.ID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing user id", nil)
	}
	entity := in.ID.String()
	if err := validateUpdate(in); err != nil {
		return nil, domainagg.WithEntity(MapError(op, err), entity)
	}
	if !a.configured() {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "user aggregate repos not configured", nil)
	}

	var out *personnel.User
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		current, err := a.deps.Users.GetByID(dbc.Ctx, dbc.Tx, in.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundError(op, "user", in.ID)
		}
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}

		touched := false
		if in.PersonalInfo != nil {
			fields := personalInfoFields(in.PersonalInfo)
			if err := a.deps.PersonalInfo.UpdateFields(dbc.Ctx, dbc.Tx, current.PersonalInfoID, fields); err != nil {
				return fmt.Errorf("personal info: %w", err)
			}
			touched = touched || len(fields) > 0
		}

		if in.EmploymentInfo != nil {
			if id := in.EmploymentInfo.DesignationID; id != nil {
				if _, err := a.deps.Roles.GetByID(dbc.Ctx, dbc.Tx, *id); errors.Is(err, gorm.ErrRecordNotFound) {
					return NotFoundError(op, "role", *id)
				} else if err != nil {
					return fmt.Errorf("load role: %w", err)
				}
			}
			fields := employmentInfoFields(in.EmploymentInfo)
			if err := a.deps.EmploymentInfo.UpdateFields(dbc.Ctx, dbc.Tx, current.EmploymentInfoID, fields); err != nil {
				return fmt.Errorf("employment info: %w", err)
			}
			touched = touched || len(fields) > 0
		}

		if in.Password != nil {
			hash, err := a.deps.Hasher.Hash(*in.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			if err := a.deps.Users.UpdatePassword(dbc.Ctx, dbc.Tx, current.ID, hash); err != nil {
				return fmt.Errorf("user: %w", err)
			}
		} else if touched {
			if err := a.deps.Users.Touch(dbc.Ctx, dbc.Tx, current.ID); err != nil {
				return fmt.Errorf("user: %w", err)
			}
		}

		out, err = a.deps.Users.GetByID(dbc.Ctx, dbc.Tx, current.ID)
		if err != nil {
			return fmt.Errorf("reload user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, domainagg.WithEntity(err, entity)
	}
	return out, nil
}

func (a *userAggregate) Delete(ctx context.Context, id uuid.UUID) (domainagg.DeleteUserResult, error) {
	const op = "Personnel.User.Delete"
	var out domainagg.DeleteUserResult
	if id == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing user id", nil)
	}
	if !a.configured() {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "user aggregate repos not configured", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		current, err := a.deps.Users.GetByID(dbc.Ctx, dbc.Tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundError(op, "user", id)
		}
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}

		if err := a.deps.EmploymentInfo.SoftDelete(dbc.Ctx, dbc.Tx, current.EmploymentInfoID); err != nil {
			return fmt.Errorf("employment info: %w", err)
		}
		if err := a.deps.PersonalInfo.SoftDelete(dbc.Ctx, dbc.Tx, current.PersonalInfoID); err != nil {
			return fmt.Errorf("personal info: %w", err)
		}
		if err := a.deps.Users.SoftDelete(dbc.Ctx, dbc.Tx, current.ID); err != nil {
			return fmt.Errorf("user: %w", err)
		}

		out = domainagg.DeleteUserResult{
			UserID:           current.ID,
			PersonalInfoID:   current.PersonalInfoID,
			EmploymentInfoID: current.EmploymentInfoID,
			DeletedAt:        time.Now().UTC(),
		}
		return nil
	})
	if err != nil {
		return domainagg.DeleteUserResult{}, domainagg.WithEntity(err, id.String())
	}
	return out, nil
}

func validateCreate(in domainagg.CreateUserInput) error {
	var problems []string
	if strings.TrimSpace(in.Password) == "" {
		problems = append(problems, "password is required")
	}
	if strings.TrimSpace(in.PersonalInfo.FirstName) == "" {
		problems = append(problems, "firstName is required")
	}
	if strings.TrimSpace(in.PersonalInfo.LastName) == "" {
		problems = append(problems, "lastName is required")
	}
	problems = append(problems, checkMobile(in.PersonalInfo.Mobile)...)
	problems = append(problems, checkBloodGroup(in.PersonalInfo.BloodGroup)...)
	if in.EmploymentInfo.DesignationID == uuid.Nil {
		problems = append(problems, "designation is required")
	}
	if in.EmploymentInfo.EmpID <= 0 {
		problems = append(problems, "empId must be greater than 0")
	}
	if in.EmploymentInfo.NoticePeriod < 0 {
		problems = append(problems, "noticePeriod must not be negative")
	}
	problems = append(problems, checkExperience(in.EmploymentInfo.ExpYears, in.EmploymentInfo.ExpMonths, in.EmploymentInfo.ExpDays)...)
	if len(problems) > 0 {
		return ValidationError(strings.Join(problems, "; "))
	}
	return nil
}

func validateUpdate(in domainagg.UpdateUserInput) error {
	var problems []string
	if in.Password != nil && strings.TrimSpace(*in.Password) == "" {
		problems = append(problems, "password must not be empty")
	}
	if p := in.PersonalInfo; p != nil {
		if p.FirstName != nil && strings.TrimSpace(*p.FirstName) == "" {
			problems = append(problems, "firstName must not be empty")
		}
		if p.LastName != nil && strings.TrimSpace(*p.LastName) == "" {
			problems = append(problems, "lastName must not be empty")
		}
		if p.Mobile != nil {
			problems = append(problems, checkMobile(*p.Mobile)...)
		}
		problems = append(problems, checkBloodGroup(p.BloodGroup)...)
	}
	if e := in.EmploymentInfo; e != nil {
		if e.DesignationID != nil && *e.DesignationID == uuid.Nil {
			problems = append(problems, "designation must not be empty")
		}
		if e.EmpID != nil && *e.EmpID <= 0 {
			problems = append(problems, "empId must be greater than 0")
		}
		if e.NoticePeriod != nil && *e.NoticePeriod < 0 {
			problems = append(problems, "noticePeriod must not be negative")
		}
		problems = append(problems, checkExperience(e.ExpYears, e.ExpMonths, e.ExpDays)...)
	}
	if len(problems) > 0 {
		return ValidationError(strings.Join(problems, "; "))
	}
	return nil
}

func checkMobile(mobile string) []string {
	if len(strings.TrimSpace(mobile)) != personnel.MobileLength {
		return []string{fmt.Sprintf("mobile must be exactly %d characters", personnel.MobileLength)}
	}
	return nil
}

func checkBloodGroup(bg *personnel.BloodGroup) []string {
	if bg != nil && !bg.Valid() {
		return []string{fmt.Sprintf("unknown bloodGroup %q", string(*bg))}
	}
	return nil
}

func checkExperience(years, months, days *int) []string {
	var out []string
	for _, f := range []struct {
		name string
		v    *int
	}{{"expYears", years}, {"expMonths", months}, {"expDays", days}} {
		if f.v != nil && *f.v < 0 {
			out = append(out, f.name+" must not be negative")
		}
	}
	return out
}

func personalInfoFields(p *domainagg.PersonalInfoPatch) map[string]any {
	fields := map[string]any{}
	if p.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*p.FirstName)
	}
	if p.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*p.LastName)
	}
	if p.Mobile != nil {
		fields["mobile"] = strings.TrimSpace(*p.Mobile)
	}
	if p.DateOfBirth != nil {
		fields["date_of_birth"] = datatypes.Date(*p.DateOfBirth)
	}
	if p.Email != nil {
		fields["email"] = normalizeEmail(p.Email)
	}
	if p.BloodGroup != nil {
		fields["blood_group"] = *p.BloodGroup
	}
	if p.Address != nil {
		fields["address"] = *p.Address
	}
	return fields
}

func employmentInfoFields(e *domainagg.EmploymentInfoPatch) map[string]any {
	fields := map[string]any{}
	if e.DesignationID != nil {
		fields["designation_id"] = *e.DesignationID
	}
	if e.EmpID != nil {
		fields["emp_id"] = *e.EmpID
	}
	if e.NoticePeriod != nil {
		fields["notice_period"] = *e.NoticePeriod
	}
	if e.Email != nil {
		fields["email"] = normalizeEmail(e.Email)
	}
	if e.JoiningDate != nil {
		fields["joining_date"] = datatypes.Date(*e.JoiningDate)
	}
	if e.ExpYears != nil {
		fields["exp_years"] = *e.ExpYears
	}
	if e.ExpMonths != nil {
		fields["exp_months"] = *e.ExpMonths
	}
	if e.ExpDays != nil {
		fields["exp_days"] = *e.ExpDays
	}
	return fields
}

func toDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(*t)
	return &d
}

// normalizeEmail lower-cases and trims; an empty address becomes NULL so it
// never collides with other empty addresses under the unique index.
func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*email))
	if v == "" {
		return nil
	}
	return &v
}
