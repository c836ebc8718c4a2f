package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// QueryInt64 parses an optional int64 query parameter, returning nil
// when absent or malformed.
func QueryInt64(c *gin.Context, name string) *int64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// QueryFloat64 parses an optional float query parameter, returning nil
// when absent or malformed.
func QueryFloat64(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// QueryString returns an optional string query parameter, nil when empty.
func QueryString(c *gin.Context, name string) *string {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	return &raw
}

// ParamID parses the :id path parameter.
func ParamID(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
