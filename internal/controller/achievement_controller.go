package controller

import (
	"aura_edu_backend/internal/service"
	"aura_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	AchievementService *service.AchievementService
}

func NewAchievementController(achievementService *service.AchievementService) *AchievementController {
	return &AchievementController{AchievementService: achievementService}
}

// GetSummary godoc
// @Summary 成就概览
// @Description 已获得与未解锁的徽章、进度、总经验、等级和排行榜
// @Tags 成就
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.AchievementSummary}
// @Router /api/achievements/summary [get]
func (c *AchievementController) GetSummary(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	summary, err := c.AchievementService.Summary(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// GetLeaderboard godoc
// @Summary 经验排行榜
// @Tags 成就
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "数量"
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry}
// @Router /api/achievements/leaderboard [get]
func (c *AchievementController) GetLeaderboard(ctx *gin.Context) {
	limit := util.QueryInt(ctx, "limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}
	board, err := c.AchievementService.Leaderboard(ctx.Request.Context(), limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, board)
}
