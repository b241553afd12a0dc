package aggregates

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	domainagg "github.com/yungbote/personnel-backend/internal/domain/aggregates"
	"gorm.io/gorm"
)

var (
	// ErrValidation indicates caller input validation failure.
	ErrValidation = errors.New("aggregate validation")
	// ErrConflict indicates a uniqueness conflict detected before the store saw it.
	ErrConflict = errors.New("aggregate conflict")
)

const pgUniqueViolation = "23505"

// ValidationError tags an error as validation failure.
func ValidationError(msg string) error {
	return errors.Join(ErrValidation, errors.New(strings.TrimSpace(msg)))
}

// ConflictError tags an error as conflict failure.
func ConflictError(msg string) error {
	return errors.Join(ErrConflict, errors.New(strings.TrimSpace(msg)))
}

// NotFoundError builds a not_found aggregate error with a caller-facing message.
func NotFoundError(op, entity string, id any) error {
	return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("%s not found with id: %v", entity, id), nil)
}

// MapError maps infrastructure/domain failures into aggregate error codes.
// Classification uses error identity and SQLSTATE only, never message text.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var aggErr *domainagg.Error
	if errors.As(err, &aggErr) {
		return err
	}
	switch {
	case errors.Is(err, ErrValidation):
		return domainagg.NewError(domainagg.CodeValidation, op, joinedMessage(err, ErrValidation), err)
	case errors.Is(err, ErrConflict):
		return domainagg.NewError(domainagg.CodeConflict, op, joinedMessage(err, ErrConflict), err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainagg.Wrap(domainagg.CodeNotFound, op, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domainagg.Wrap(domainagg.CodeConflict, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.TrimSpace(pgErr.Code) == pgUniqueViolation {
		return domainagg.NewError(domainagg.CodeConflict, op, conflictMessage(pgErr), err)
	}
	return domainagg.Wrap(domainagg.CodeInternal, op, err)
}

func conflictMessage(pgErr *pgconn.PgError) string {
	msg := "duplicate value violates unique constraint"
	if c := strings.TrimSpace(pgErr.ConstraintName); c != "" {
		msg += " " + c
	}
	if d := strings.TrimSpace(pgErr.Detail); d != "" {
		msg += ": " + d
	}
	return msg
}

// joinedMessage drops the sentinel from an errors.Join chain so only the
// caller's text remains.
func joinedMessage(err, sentinel error) string {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, 2)
	for _, e := range joined.Unwrap() {
		if e == nil || e == sentinel {
			continue
		}
		if s := strings.TrimSpace(e.Error()); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return err.Error()
	}
	return strings.Join(parts, "; ")
}
