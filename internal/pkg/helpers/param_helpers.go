package helpers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParseIDParam reads a positive int64 path parameter. A missing, malformed or
// non-positive value reports ok == false, which handlers treat as "not found".
func ParseIDParam(c *gin.Context, name string) (id int64, ok bool) {
	raw := strings.TrimSpace(c.Param(name))
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ParseOptionalIntQuery reads an optional integer query parameter.
// present is false when the parameter is absent or empty; err is set when a value
// was supplied but is not a base-10 integer.
func ParseOptionalIntQuery(c *gin.Context, name string) (value int, present bool, err error) {
	raw, exists := c.GetQuery(name)
	raw = strings.TrimSpace(raw)
	if !exists || raw == "" {
		return 0, false, nil
	}
	value, err = strconv.Atoi(raw)
	if err != nil {
		return 0, true, err
	}
	return value, true, nil
}
