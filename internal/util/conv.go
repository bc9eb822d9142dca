package util

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// MustParseUint 将字符串转换为无符号整数，解析失败时返回 0
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ParamUint reads a positive numeric path parameter.
func ParamUint(c *gin.Context, name string) (uint, bool) {
	id := MustParseUint(c.Param(name))
	return id, id != 0
}

// QueryInt reads an integer query parameter, falling back to def.
func QueryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}
