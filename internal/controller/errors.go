package controller

import (
	"aura_edu_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError 将业务错误映射为统一响应，未知错误记录日志后返回 500
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrTopicNotFound),
		errors.Is(err, util.ErrCodeExampleNotFound),
		errors.Is(err, util.ErrActivityNotFound),
		errors.Is(err, util.ErrSubmissionNotFound),
		errors.Is(err, util.ErrSessionNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrSessionEnded):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Error(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, util.ErrUserDisabled),
		errors.Is(err, util.ErrPermissionDenied):
		util.Error(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, util.ErrEmptyQuestion),
		errors.Is(err, util.ErrEmptySubmission),
		errors.Is(err, util.ErrInvalidDuration),
		errors.Is(err, util.ErrInvalidSettings),
		errors.Is(err, util.ErrInvalidRole):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrSubmissionTooLarge):
		util.Error(ctx, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, util.ErrQuotaExceeded):
		util.Error(ctx, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, util.ErrAssistantFailed):
		util.Error(ctx, http.StatusBadGateway, util.ErrAssistantFailed.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// currentUserID 读取认证中间件写入的用户，缺失时直接返回 401
func currentUserID(ctx *gin.Context) (uint, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return 0, false
	}
	return claims.UserID, true
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, ok := util.ParamUint(ctx, name)
	if !ok {
		util.BadRequest(ctx, "invalid "+name)
	}
	return id, ok
}

func pagination(ctx *gin.Context) (int, int) {
	page := util.QueryInt(ctx, "page", 1)
	limit := util.QueryInt(ctx, "limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
