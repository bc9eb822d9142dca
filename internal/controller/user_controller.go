package controller

import (
	"aura_edu_backend/internal/service"
	"aura_edu_backend/internal/util"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetSettings godoc
// @Summary 获取个人设置
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/user/settings [get]
func (c *UserController) GetSettings(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	settings, err := c.UserService.GetSettings(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}

// UpdateSettings godoc
// @Summary 更新个人设置
// @Description 请求体必须是 JSON 对象，整体替换原有设置
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/user/settings [put]
func (c *UserController) UpdateSettings(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, 64*1024))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	settings, err := c.UserService.UpdateSettings(ctx.Request.Context(), userID, json.RawMessage(body))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}

// GetStorageUsage godoc
// @Summary 个人数据占用
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.StorageUsage}
// @Router /api/user/storage [get]
func (c *UserController) GetStorageUsage(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	usage, err := c.UserService.StorageUsage(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, usage)
}

// ExportData godoc
// @Summary 导出个人数据
// @Description 将资料、提交、学习会话与问答记录打包为 JSON 并上传到存储
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ExportResult}
// @Router /api/user/export [post]
func (c *UserController) ExportData(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	result, err := c.UserService.Export(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// ClearData godoc
// @Summary 清空学习数据
// @Description 删除提交、学习会话与问答记录；经验与徽章保留
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/user/data [delete]
func (c *UserController) ClearData(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	if err := c.UserService.ClearData(ctx.Request.Context(), userID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
