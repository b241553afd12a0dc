package services

import (
	"errors"

	"github.com/yungbote/personnel-backend/internal/data/aggregates"
	"github.com/yungbote/personnel-backend/internal/data/pagination"
	domainagg "github.com/yungbote/personnel-backend/internal/domain/aggregates"
)

// mapListError turns page-request problems into validation errors and
// everything else into the usual store mapping.
func mapListError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pagination.ErrInvalidOrder) || errors.Is(err, pagination.ErrUnknownSortField) {
		return domainagg.NewError(domainagg.CodeValidation, op, err.Error(), err)
	}
	return aggregates.MapError(op, err)
}
