package controller

import (
	"aura_edu_backend/internal/service"
	"aura_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminUserController struct {
	UserService *service.UserService
}

func NewAdminUserController(userService *service.UserService) *AdminUserController {
	return &AdminUserController{UserService: userService}
}

// ListUsers godoc
// @Summary 用户列表
// @Tags 管理-用户
// @Produce json
// @Security ApiKeyAuth
// @Param role query string false "角色"
// @Param search query string false "姓名或邮箱"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /admin/users [get]
func (c *AdminUserController) ListUsers(ctx *gin.Context) {
	page, limit := pagination(ctx)
	users, total, err := c.UserService.ListUsers(ctx.Request.Context(), ctx.Query("role"), ctx.Query("search"), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Page(ctx, users, total, page, limit)
}

// GetUser godoc
// @Summary 用户详情
// @Tags 管理-用户
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response{data=model.User}
// @Router /admin/users/{id} [get]
func (c *AdminUserController) GetUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	user, err := c.UserService.GetProfile(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UpdateUser godoc
// @Summary 修改用户
// @Description 修改姓名、角色或禁用状态
// @Tags 管理-用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "用户ID"
// @Param body body service.AdminUpdateUserRequest true "修改内容"
// @Success 200 {object} util.Response{data=model.User}
// @Router /admin/users/{id} [put]
func (c *AdminUserController) UpdateUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.AdminUpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	// 管理员不能禁用或降级自己
	if claims := util.GetUserFromContext(ctx); claims != nil && claims.UserID == id &&
		((req.Disabled != nil && *req.Disabled) || (req.Role != "" && req.Role != claims.Role)) {
		respondError(ctx, util.ErrPermissionDenied)
		return
	}
	user, err := c.UserService.UpdateUser(ctx.Request.Context(), id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// ResetPassword godoc
// @Summary 重置用户密码
// @Description 生成一次性临时密码并返回
// @Tags 管理-用户
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response
// @Router /admin/users/{id}/reset-password [post]
func (c *AdminUserController) ResetPassword(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	password, err := c.UserService.ResetPassword(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"temporaryPassword": password})
}

// DeleteUser godoc
// @Summary 删除用户
// @Tags 管理-用户
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response
// @Router /admin/users/{id} [delete]
func (c *AdminUserController) DeleteUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if claims := util.GetUserFromContext(ctx); claims != nil && claims.UserID == id {
		respondError(ctx, util.ErrPermissionDenied)
		return
	}
	if err := c.UserService.DeleteUser(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
