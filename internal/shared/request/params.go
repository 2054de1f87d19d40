package request

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseUintParam reads a positive integer path parameter.
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	return parseUint(c.Param(name))
}

// ParseUintQuery reads an optional positive integer query parameter. The
// second result is false only when the parameter is present but malformed.
func ParseUintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, ok := parseUint(raw)
	if !ok {
		return nil, false
	}
	return &v, true
}

func parseUint(raw string) (uint, bool) {
	v, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
