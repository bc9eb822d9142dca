package controller

import (
	"aura_edu_backend/internal/service"
	"aura_edu_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	ActivityService *service.ActivityService
}

func NewActivityController(activityService *service.ActivityService) *ActivityController {
	return &ActivityController{ActivityService: activityService}
}

// bindCode 读取提交的代码，并在反序列化之前限制请求体大小
func bindCode(ctx *gin.Context) (string, bool) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, int64(util.MaxSubmissionBytes)*2)
	var req service.CodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(ctx, util.ErrSubmissionTooLarge)
			return "", false
		}
		util.BadRequest(ctx, err.Error())
		return "", false
	}
	return req.Code, true
}

// GetActivity godoc
// @Summary 练习详情
// @Tags 练习
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "练习ID"
// @Success 200 {object} util.Response{data=model.Activity}
// @Router /api/activities/{id} [get]
func (c *ActivityController) GetActivity(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	activity, err := c.ActivityService.GetActivity(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, activity)
}

// Lint godoc
// @Summary 实时语法检查
// @Description 启发式检查 HTML，返回全部问题以及会阻止通过的问题
// @Tags 练习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "练习ID"
// @Param body body service.CodeRequest true "代码"
// @Success 200 {object} util.Response{data=service.LintResult}
// @Router /api/activities/{id}/lint [post]
func (c *ActivityController) Lint(ctx *gin.Context) {
	if _, ok := pathID(ctx, "id"); !ok {
		return
	}
	code, ok := bindCode(ctx)
	if !ok {
		return
	}
	util.Success(ctx, c.ActivityService.Lint(code))
}

// Submit godoc
// @Summary 提交练习
// @Description 以与期望输出的相似度评分，返回显式的 is_completed 与 completion_status
// @Tags 练习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "练习ID"
// @Param body body service.CodeRequest true "代码"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 404 {object} util.Response
// @Failure 413 {object} util.Response
// @Router /api/activities/{id}/submit [post]
func (c *ActivityController) Submit(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	code, ok := bindCode(ctx)
	if !ok {
		return
	}

	result, err := c.ActivityService.Submit(ctx.Request.Context(), userID, id, code)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Status godoc
// @Summary 练习完成状态
// @Tags 练习
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "练习ID"
// @Success 200 {object} util.Response{data=service.ActivityStatus}
// @Router /api/activities/{id}/status [get]
func (c *ActivityController) Status(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	status, err := c.ActivityService.Status(ctx.Request.Context(), userID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, status)
}
