package util

import (
	"aura_edu_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构，code 与 HTTP 状态码一致
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Code: status, Message: message, Data: data})
}

func Success(c *gin.Context, data interface{}) {
	respond(c, http.StatusOK, "success", data)
}

func Created(c *gin.Context, data interface{}) {
	respond(c, http.StatusCreated, "created", data)
}

func Page(c *gin.Context, list interface{}, total int64, page, limit int) {
	Success(c, PageResponse{List: list, Total: total, Page: page, Limit: limit})
}

func Error(c *gin.Context, status int, message string) {
	respond(c, status, message, nil)
}

// ErrorWithData 错误响应附带数据，例如 429 时返回剩余配额
func ErrorWithData(c *gin.Context, status int, message string, data interface{}) {
	respond(c, status, message, data)
}

func Unauthorized(c *gin.Context) { Error(c, http.StatusUnauthorized, "Unauthorized") }

func Forbidden(c *gin.Context) { Error(c, http.StatusForbidden, "Forbidden") }

func BadRequest(c *gin.Context, message string) { Error(c, http.StatusBadRequest, message) }

func NotFound(c *gin.Context) { Error(c, http.StatusNotFound, "Resource not found") }

func Conflict(c *gin.Context, message string) { Error(c, http.StatusConflict, message) }

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

// LogInternalError 记录原始错误，对外只返回通用的 500
func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	InternalServerError(c)
}
