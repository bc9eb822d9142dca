package controller

import (
	"aura_edu_backend/internal/service"
	"aura_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CompareController struct {
	ComparisonService *service.ComparisonService
}

func NewCompareController(comparisonService *service.ComparisonService) *CompareController {
	return &CompareController{ComparisonService: comparisonService}
}

// Compare godoc
// @Summary 对比两段 HTML
// @Tags 管理-对比
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CompareRequest true "期望与实际"
// @Success 200 {object} util.Response{data=htmldiff.Report}
// @Failure 413 {object} util.Response "输入过大"
// @Router /admin/compare [post]
func (c *CompareController) Compare(ctx *gin.Context) {
	var req service.CompareRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	report, err := c.ComparisonService.Compare(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// CompareSubmission godoc
// @Summary 对比某次提交与期望输出
// @Tags 管理-对比
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "提交ID"
// @Success 200 {object} util.Response{data=service.SubmissionComparison}
// @Router /admin/submissions/{id}/compare [get]
func (c *CompareController) CompareSubmission(ctx *gin.Context) {
	result, err := c.ComparisonService.CompareSubmission(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
