package controller

import (
	"aura_edu_backend/internal/service"
	"aura_edu_backend/internal/util"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// StartSession godoc
// @Summary 开始学习会话
// @Tags 学习分析
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.StartSessionRequest false "主题"
// @Success 201 {object} util.Response{data=model.LearningSession}
// @Router /api/analytics/sessions/start [post]
func (c *AnalyticsController) StartSession(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req service.StartSessionRequest
	// 请求体可以为空
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		util.BadRequest(ctx, err.Error())
		return
	}
	session, err := c.AnalyticsService.StartSession(ctx.Request.Context(), userID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, session)
}

// EndSession godoc
// @Summary 结束学习会话
// @Tags 学习分析
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "会话ID"
// @Param body body service.EndSessionRequest false "提问次数"
// @Success 200 {object} util.Response{data=model.LearningSession}
// @Failure 409 {object} util.Response "会话已结束"
// @Router /api/analytics/sessions/{id}/end [post]
func (c *AnalyticsController) EndSession(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.EndSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		util.BadRequest(ctx, err.Error())
		return
	}
	session, err := c.AnalyticsService.EndSession(ctx.Request.Context(), userID, id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// RecordSession godoc
// @Summary 记录完整会话
// @Tags 学习分析
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.RecordSessionRequest true "会话"
// @Success 201 {object} util.Response{data=model.LearningSession}
// @Router /api/analytics/sessions [post]
func (c *AnalyticsController) RecordSession(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req service.RecordSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	session, err := c.AnalyticsService.RecordSession(ctx.Request.Context(), userID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, session)
}

// GetDashboard godoc
// @Summary 学习分析看板
// @Description 每日时长、每周主题进度、时段分布与连续学习天数
// @Tags 学习分析
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=learnstats.Dashboard}
// @Router /api/analytics/dashboard [get]
func (c *AnalyticsController) GetDashboard(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	dashboard, err := c.AnalyticsService.Dashboard(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}
