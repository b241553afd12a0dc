package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/yungbote/personnel-backend/internal/platform/apierr"
)

var registerTagNames sync.Once

// UseJSONFieldNames makes validator errors report the json (or form) name of
// a field instead of the Go struct field name.
func UseJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
}

// bindQuery binds query parameters into dst. A value that does not parse as
// the field's number or boolean type is a 400 naming the offending parameter.
func bindQuery(c *gin.Context, dst any) error {
	err := c.ShouldBindQuery(dst)
	var numErr *strconv.NumError
	if err == nil || !errors.As(err, &numErr) {
		return err
	}
	return apierr.BadRequest("invalid_query", fmt.Errorf("%s has invalid value %q", queryKeyFor(c, numErr.Num), numErr.Num))
}

// queryKeyFor finds the first query parameter carrying value, in sorted key order.
func queryKeyFor(c *gin.Context, value string) string {
	query := c.Request.URL.Query()
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range query[k] {
			if v == value {
				return k
			}
		}
	}
	return "query parameter"
}

func pathID(c *gin.Context) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apierr.BadRequest("invalid_id", fmt.Errorf("invalid id %q", raw))
	}
	return id, nil
}

// Date accepts either a calendar date ("2006-01-02") or an RFC 3339 timestamp.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return apierr.BadRequest("invalid_date", fmt.Errorf("invalid date %q, want YYYY-MM-DD", s))
}

func (d *Date) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
