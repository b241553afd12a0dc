package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	domainagg "github.com/yungbote/personnel-backend/internal/domain/aggregates"
	"github.com/yungbote/personnel-backend/internal/platform/apierr"
)

// RespondError maps err onto a status code and a caller-safe message. The raw
// error is attached to the gin context so the request logger records it.
func RespondError(c *gin.Context, err error) {
	status, msg := Classify(err)
	if err != nil {
		_ = c.Error(err)
	}
	c.JSON(status, Envelope{Status: false, Message: msg})
}

// Classify returns the HTTP status and public message for err.
func Classify(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, "unknown error"
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return http.StatusBadRequest, validationMessage(ve)
	}

	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		status := apiErr.HTTPStatusCode()
		if status >= http.StatusInternalServerError {
			return status, http.StatusText(status)
		}
		return status, apiErr.Error()
	}

	var aggErr *domainagg.Error
	if errors.As(err, &aggErr) {
		return statusForCode(aggErr.Code), aggErr.PublicMessage()
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return http.StatusBadRequest, "malformed request body"
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return http.StatusBadRequest, fmt.Sprintf("invalid value %q", numErr.Num)
	}

	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

func statusForCode(code domainagg.ErrorCode) int {
	switch code {
	case domainagg.CodeValidation:
		return http.StatusBadRequest
	case domainagg.CodeNotFound:
		return http.StatusNotFound
	case domainagg.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func validationMessage(ve validator.ValidationErrors) string {
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		parts = append(parts, fieldMessage(fe))
	}
	return strings.Join(parts, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := jsonFieldName(fe)
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "email":
		return field + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "uuid":
		return field + " must be a valid id"
	default:
		return fmt.Sprintf("%s failed on %s", field, fe.Tag())
	}
}

// jsonFieldName lower-cases the first rune of the struct field so messages
// use the same camelCase names as the request body.
func jsonFieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return "field"
	}
	return strings.ToLower(name[:1]) + name[1:]
}
