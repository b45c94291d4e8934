package ginutil

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// QueryInt extracts an integer from query parameters with default value
func QueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// QueryUint64 extracts an optional uint64 from query parameters
func QueryUint64(c *gin.Context, key string) *uint64 {
	valueStr := c.Query(key)
	if valueStr == "" {
		return nil
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		return nil
	}
	return &value
}

// ParamUint64 extracts a uint64 id from path parameters
func ParamUint64(c *gin.Context, key string) (uint64, error) {
	return strconv.ParseUint(c.Param(key), 10, 64)
}

// Pagination returns (page, limit) with page >= 1 and 1 <= limit <= 100
func Pagination(c *gin.Context) (int, int) {
	page := QueryInt(c, "page", 1)
	limit := QueryInt(c, "limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
