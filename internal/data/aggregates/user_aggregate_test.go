package aggregates_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/personnel-backend/internal/data/aggregates"
	aggtestutil "github.com/yungbote/personnel-backend/internal/data/aggregates/testutil"
	"github.com/yungbote/personnel-backend/internal/data/repos"
	"github.com/yungbote/personnel-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/personnel-backend/internal/domain/aggregates"
	"github.com/yungbote/personnel-backend/internal/domain/personnel"
	"github.com/yungbote/personnel-backend/internal/pkg/pointers"
	"gorm.io/gorm"
)

type prefixHasher struct{ err error }

func (h prefixHasher) Hash(plain string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + plain, nil
}

func (prefixHasher) Compare(plain, hashed string) bool { return hashed == "hashed:"+plain }

type fixture struct {
	db    *gorm.DB
	agg   domainagg.UserAggregate
	hooks *aggtestutil.HooksRecorder
	role  *personnel.Role
}

func newFixture(t *testing.T, hasher domainagg.PasswordHasher, runner aggregates.TxRunner) fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	hooks := &aggtestutil.HooksRecorder{}
	role := testutil.SeedRole(t, context.Background(), db, "Engineer")
	if hasher == nil {
		hasher = prefixHasher{}
	}
	agg := aggregates.NewUserAggregate(aggregates.UserAggregateDeps{
		Base:           aggregates.BaseDeps{DB: db, Log: log, Hooks: hooks, Runner: runner},
		Roles:          repos.NewRoleRepo(db, log),
		Users:          repos.NewUserRepo(db, log),
		PersonalInfo:   repos.NewPersonalInfoRepo(db, log),
		EmploymentInfo: repos.NewEmploymentInfoRepo(db, log),
		Hasher:         hasher,
	})
	return fixture{db: db, agg: agg, hooks: hooks, role: role}
}

func createInput(roleID uuid.UUID, empID int, mobile string) domainagg.CreateUserInput {
	dob := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	return domainagg.CreateUserInput{
		Password: "secret",
		PersonalInfo: domainagg.PersonalInfoInput{
			FirstName:   "Asha",
			LastName:    "Rao",
			Mobile:      mobile,
			DateOfBirth: &dob,
			Email:       pointers.Ptr("Asha." + mobile + "@Example.com"),
			BloodGroup:  pointers.Ptr(personnel.BloodGroupOPositive),
		},
		EmploymentInfo: domainagg.EmploymentInfoInput{
			DesignationID: roleID,
			EmpID:         empID,
			NoticePeriod:  30,
			ExpYears:      pointers.Ptr(3),
		},
	}
}

func countUnscoped(t *testing.T, db *gorm.DB, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	if err := db.Unscoped().Model(model).Where(where, args...).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestUserAggregateCreate(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	u, err := f.agg.Create(ctx, createInput(f.role.ID, 101, "9000000101"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.PersonalInfo == nil || u.EmploymentInfo == nil || u.EmploymentInfo.Designation == nil {
		t.Fatalf("Create: expected full aggregate, got %+v", u)
	}
	if u.Password != "hashed:secret" {
		t.Fatalf("password not hashed: %q", u.Password)
	}
	if u.FullName() != "Asha Rao" || u.EmpID() != 101 || u.EmploymentInfo.Designation.ID != f.role.ID {
		t.Fatalf("unexpected aggregate: %+v", u)
	}
	if u.PersonalInfo.Email == nil || *u.PersonalInfo.Email != "asha.9000000101@example.com" {
		t.Fatalf("email not normalized: %v", u.PersonalInfo.Email)
	}
	if f.hooks.LastStatus() != "success" {
		t.Fatalf("hook status: %s", f.hooks.LastStatus())
	}
}

func TestUserAggregateCreateUnknownRolePersistsNothing(t *testing.T) {
	f := newFixture(t, nil, nil)
	missing := uuid.New()

	_, err := f.agg.Create(context.Background(), createInput(missing, 102, "9000000102"))
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	var aggErr *domainagg.Error
	if !errors.As(err, &aggErr) || aggErr.Message != "role not found with id: "+missing.String() {
		t.Fatalf("unexpected message: %v", err)
	}
	if n := countUnscoped(t, f.db, &personnel.PersonalInfo{}, "mobile = ?", "9000000102"); n != 0 {
		t.Fatalf("personal info persisted despite role failure: %d", n)
	}
	if len(f.hooks.Rollbacks) != 1 {
		t.Fatalf("expected one rollback, got %+v", f.hooks.Rollbacks)
	}
}

func TestUserAggregateCreateConflictRollsBackEarlierInserts(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	if _, err := f.agg.Create(ctx, createInput(f.role.ID, 200, "9000000200")); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	// Unique mobile, duplicate empId: personal info is inserted before the
	// employment insert fails.
	_, err := f.agg.Create(ctx, createInput(f.role.ID, 200, "9000000201"))
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if n := countUnscoped(t, f.db, &personnel.PersonalInfo{}, "mobile = ?", "9000000201"); n != 0 {
		t.Fatalf("personal info from failed create survived: %d", n)
	}
	if len(f.hooks.Conflicts) != 1 {
		t.Fatalf("expected one conflict hook, got %+v", f.hooks.Conflicts)
	}
}

func TestUserAggregateCreateDuplicateMobile(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	if _, err := f.agg.Create(ctx, createInput(f.role.ID, 300, "9000000300")); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := f.agg.Create(ctx, createInput(f.role.ID, 301, "9000000300"))
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if n := countUnscoped(t, f.db, &personnel.EmploymentInfo{}, "emp_id = ?", 301); n != 0 {
		t.Fatalf("employment info persisted: %d", n)
	}
}

func TestUserAggregateCreateHashFailureRollsBack(t *testing.T) {
	f := newFixture(t, prefixHasher{err: errors.New("hasher down")}, nil)

	_, err := f.agg.Create(context.Background(), createInput(f.role.ID, 400, "9000000400"))
	if !domainagg.IsCode(err, domainagg.CodeInternal) {
		t.Fatalf("expected internal, got %v", err)
	}
	var aggErr *domainagg.Error
	if !errors.As(err, &aggErr) || strings.Contains(aggErr.PublicMessage(), "hasher down") {
		t.Fatalf("internal cause leaked into public message: %v", err)
	}
	if n := countUnscoped(t, f.db, &personnel.EmploymentInfo{}, "emp_id = ?", 400); n != 0 {
		t.Fatalf("employment info persisted: %d", n)
	}
	if n := countUnscoped(t, f.db, &personnel.PersonalInfo{}, "mobile = ?", "9000000400"); n != 0 {
		t.Fatalf("personal info persisted: %d", n)
	}
}

func TestUserAggregateCreateCommitFailureRollsBack(t *testing.T) {
	db := testutil.DB(t)
	runner := &aggtestutil.InjectedTxRunner{
		Inner:         aggregates.NewGormTxRunner(db),
		FailAfterBody: errors.New("commit lost"),
	}
	log := testutil.Logger(t)
	role := testutil.SeedRole(t, context.Background(), db, "Ops")
	agg := aggregates.NewUserAggregate(aggregates.UserAggregateDeps{
		Base:           aggregates.BaseDeps{DB: db, Log: log, Runner: runner},
		Roles:          repos.NewRoleRepo(db, log),
		Users:          repos.NewUserRepo(db, log),
		PersonalInfo:   repos.NewPersonalInfoRepo(db, log),
		EmploymentInfo: repos.NewEmploymentInfoRepo(db, log),
		Hasher:         prefixHasher{},
	})

	_, err := agg.Create(context.Background(), createInput(role.ID, 500, "9000000500"))
	if !domainagg.IsCode(err, domainagg.CodeInternal) {
		t.Fatalf("expected internal, got %v", err)
	}
	if n := countUnscoped(t, db, &personnel.User{}, "1 = 1"); n != 0 {
		t.Fatalf("user rows survived rollback: %d", n)
	}
	if runner.RollbackCalls != 1 || runner.CommitCalls != 0 {
		t.Fatalf("unexpected runner counters: %+v", runner)
	}
}

func TestUserAggregateCreateValidation(t *testing.T) {
	f := newFixture(t, nil, nil)
	in := createInput(f.role.ID, 0, "123")
	in.Password = ""
	in.PersonalInfo.BloodGroup = pointers.Ptr(personnel.BloodGroup("Z"))

	_, err := f.agg.Create(context.Background(), in)
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation, got %v", err)
	}
	msg := err.(*domainagg.Error).Message
	for _, want := range []string{"password", "mobile", "empId", "bloodGroup"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("validation message missing %q: %s", want, msg)
		}
	}
	if len(f.hooks.Operations) != 0 {
		t.Fatalf("validation failures never open a transaction: %+v", f.hooks.Operations)
	}
}

func TestUserAggregateUpdatePartial(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	u, err := f.agg.Create(ctx, createInput(f.role.ID, 600, "9000000600"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := f.agg.Update(ctx, domainagg.UpdateUserInput{
		ID:           u.ID,
		PersonalInfo: &domainagg.PersonalInfoPatch{FirstName: pointers.Ptr("Ashwini")},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.PersonalInfo.FirstName != "Ashwini" || updated.PersonalInfo.LastName != "Rao" {
		t.Fatalf("partial update clobbered fields: %+v", updated.PersonalInfo)
	}
	if updated.PersonalInfo.Mobile != "9000000600" || updated.EmploymentInfo.EmpID != 600 {
		t.Fatalf("untouched parts changed: %+v / %+v", updated.PersonalInfo, updated.EmploymentInfo)
	}
	if updated.Password != u.Password {
		t.Fatalf("password changed without being supplied")
	}
}

func TestUserAggregateUpdatePasswordIsHashed(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	u, err := f.agg.Create(ctx, createInput(f.role.ID, 700, "9000000700"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	updated, err := f.agg.Update(ctx, domainagg.UpdateUserInput{ID: u.ID, Password: pointers.Ptr("n3w")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Password != "hashed:n3w" {
		t.Fatalf("password stored unhashed: %q", updated.Password)
	}
}

func TestUserAggregateUpdateUnknownDesignationKeepsPrior(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	u, err := f.agg.Create(ctx, createInput(f.role.ID, 800, "9000000800"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	missing := uuid.New()
	_, err = f.agg.Update(ctx, domainagg.UpdateUserInput{
		ID:             u.ID,
		PersonalInfo:   &domainagg.PersonalInfoPatch{LastName: pointers.Ptr("Iyer")},
		EmploymentInfo: &domainagg.EmploymentInfoPatch{DesignationID: &missing},
	})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}

	var ei personnel.EmploymentInfo
	if err := f.db.Where("id = ?", u.EmploymentInfoID).First(&ei).Error; err != nil {
		t.Fatalf("reload employment info: %v", err)
	}
	if ei.DesignationID != f.role.ID {
		t.Fatalf("designation changed despite failure: %s", ei.DesignationID)
	}
	var pi personnel.PersonalInfo
	if err := f.db.Where("id = ?", u.PersonalInfoID).First(&pi).Error; err != nil {
		t.Fatalf("reload personal info: %v", err)
	}
	if pi.LastName != "Rao" {
		t.Fatalf("personal info change survived rollback: %q", pi.LastName)
	}
}

func TestUserAggregateUpdateDuplicateEmpIDRollsBack(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	if _, err := f.agg.Create(ctx, createInput(f.role.ID, 850, "9000000850")); err != nil {
		t.Fatalf("Create first: %v", err)
	}
	second, err := f.agg.Create(ctx, createInput(f.role.ID, 851, "9000000851"))
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}

	_, err = f.agg.Update(ctx, domainagg.UpdateUserInput{
		ID:             second.ID,
		PersonalInfo:   &domainagg.PersonalInfoPatch{FirstName: pointers.Ptr("Meera")},
		EmploymentInfo: &domainagg.EmploymentInfoPatch{EmpID: pointers.Ptr(850)},
	})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(f.hooks.Conflicts) != 1 || f.hooks.Conflicts[0] != "Personnel.User.Update" {
		t.Fatalf("expected one update conflict hook, got %+v", f.hooks.Conflicts)
	}

	var pi personnel.PersonalInfo
	if err := f.db.Where("id = ?", second.PersonalInfoID).First(&pi).Error; err != nil {
		t.Fatalf("reload personal info: %v", err)
	}
	if pi.FirstName != "Asha" {
		t.Fatalf("personal info change survived rollback: %q", pi.FirstName)
	}
	var ei personnel.EmploymentInfo
	if err := f.db.Where("id = ?", second.EmploymentInfoID).First(&ei).Error; err != nil {
		t.Fatalf("reload employment info: %v", err)
	}
	if ei.EmpID != 851 {
		t.Fatalf("emp id changed despite conflict: %d", ei.EmpID)
	}
}

func TestUserAggregateContract(t *testing.T) {
	f := newFixture(t, nil, nil)
	c := f.agg.Contract()
	if c.Name != "Personnel.UserAggregate" || !c.RequiresAggregateOwnedTx() {
		t.Fatalf("aggregate must own its write transactions: %+v", c)
	}
	if c.DeletePolicy != domainagg.DeletePolicySoft || c.ReadPolicy != domainagg.ReadPolicyInvariantScoped {
		t.Fatalf("unexpected policies: %+v", c)
	}
}

func TestUserAggregateUpdateChangesDesignation(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	other := testutil.SeedRole(t, ctx, f.db, "Manager")
	u, err := f.agg.Create(ctx, createInput(f.role.ID, 900, "9000000900"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	updated, err := f.agg.Update(ctx, domainagg.UpdateUserInput{
		ID:             u.ID,
		EmploymentInfo: &domainagg.EmploymentInfoPatch{DesignationID: &other.ID, NoticePeriod: pointers.Ptr(90)},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.EmploymentInfo.Designation == nil || updated.EmploymentInfo.Designation.Name != "Manager" {
		t.Fatalf("designation not updated: %+v", updated.EmploymentInfo)
	}
	if updated.EmploymentInfo.NoticePeriod != 90 || updated.EmploymentInfo.EmpID != 900 {
		t.Fatalf("unexpected employment info: %+v", updated.EmploymentInfo)
	}
}

func TestUserAggregateUpdateMissingUser(t *testing.T) {
	f := newFixture(t, nil, nil)
	_, err := f.agg.Update(context.Background(), domainagg.UpdateUserInput{ID: uuid.New(), Password: pointers.Ptr("x")})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestUserAggregateDeleteThenNotFound(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	u, err := f.agg.Create(ctx, createInput(f.role.ID, 1000, "9000001000"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	res, err := f.agg.Delete(ctx, u.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if res.UserID != u.ID || res.PersonalInfoID != u.PersonalInfoID || res.EmploymentInfoID != u.EmploymentInfoID {
		t.Fatalf("unexpected delete result: %+v", res)
	}

	for _, m := range []any{&personnel.User{}, &personnel.PersonalInfo{}, &personnel.EmploymentInfo{}} {
		var n int64
		if err := f.db.Model(m).Count(&n).Error; err != nil {
			t.Fatalf("count: %v", err)
		}
		if n != 0 {
			t.Fatalf("%T still visible after delete", m)
		}
	}

	if _, err := f.agg.Delete(ctx, u.ID); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("second delete: expected not_found, got %v", err)
	}

	// Soft-deleted values no longer block reuse.
	if _, err := f.agg.Create(ctx, createInput(f.role.ID, 1000, "9000001000")); err != nil {
		t.Fatalf("re-create with freed values: %v", err)
	}
}
