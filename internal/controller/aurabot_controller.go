package controller

import (
	"aura_edu_backend/internal/service"
	"aura_edu_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuraBotController struct {
	AuraBotService *service.AuraBotService
}

func NewAuraBotController(auraBotService *service.AuraBotService) *AuraBotController {
	return &AuraBotController{AuraBotService: auraBotService}
}

// Ask godoc
// @Summary 向 AuraBot 提问
// @Description 每个会话有提问配额，超额返回 429 且不调用上游模型
// @Tags AuraBot
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.AskRequest true "问题与上下文"
// @Success 200 {object} util.Response{data=service.AskResponse}
// @Failure 429 {object} util.Response{data=service.AskResponse} "配额已用完"
// @Failure 502 {object} util.Response "助手暂不可用"
// @Router /api/aurabot/ask [post]
func (c *AuraBotController) Ask(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req service.AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuraBotService.Ask(ctx.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, util.ErrQuotaExceeded) && resp != nil {
			util.ErrorWithData(ctx, http.StatusTooManyRequests, err.Error(), resp)
			return
		}
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// GetQuota godoc
// @Summary 会话剩余提问次数
// @Tags AuraBot
// @Produce json
// @Security ApiKeyAuth
// @Param sessionId path string true "会话ID"
// @Success 200 {object} util.Response{data=service.QuotaStatus}
// @Router /api/aurabot/sessions/{sessionId}/quota [get]
func (c *AuraBotController) GetQuota(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	status, err := c.AuraBotService.QuotaStatus(ctx.Request.Context(), userID, ctx.Param("sessionId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// GetHistory godoc
// @Summary 会话问答历史
// @Tags AuraBot
// @Produce json
// @Security ApiKeyAuth
// @Param sessionId path string true "会话ID"
// @Param limit query int false "条数"
// @Success 200 {object} util.Response{data=[]model.AuraBotMessage}
// @Router /api/aurabot/sessions/{sessionId}/history [get]
func (c *AuraBotController) GetHistory(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sessionID := ctx.Param("sessionId")
	history, err := c.AuraBotService.History(ctx.Request.Context(), userID, sessionID, util.QueryInt(ctx, "limit", 50))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, history)
}
