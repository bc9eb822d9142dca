package controller

import (
	"aura_edu_backend/internal/service"
	"aura_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CourseController 学生端只读接口，只返回已发布课程
type CourseController struct {
	ContentService *service.ContentService
}

func NewCourseController(contentService *service.ContentService) *CourseController {
	return &CourseController{ContentService: contentService}
}

// ListCourses godoc
// @Summary 课程列表
// @Tags 课程
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param search query string false "关键字"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, limit := pagination(ctx)
	courses, total, err := c.ContentService.ListCourses(ctx.Request.Context(), true, ctx.Query("search"), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Page(ctx, courses, total, page, limit)
}

// GetCourse godoc
// @Summary 课程详情（含课时目录）
// @Tags 课程
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	course, err := c.ContentService.GetCourse(ctx.Request.Context(), id, true)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// GetLesson godoc
// @Summary 课时详情（含知识点、示例与练习）
// @Tags 课程
// @Produce json
// @Param id path int true "课时ID"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/lessons/{id} [get]
func (c *CourseController) GetLesson(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	lesson, err := c.ContentService.GetLesson(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// GetTopic godoc
// @Summary 知识点详情
// @Tags 课程
// @Produce json
// @Param id path int true "知识点ID"
// @Success 200 {object} util.Response{data=model.Topic}
// @Router /api/topics/{id} [get]
func (c *CourseController) GetTopic(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	topic, err := c.ContentService.GetTopic(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, topic)
}

// ListActivities godoc
// @Summary 课时练习列表
// @Tags 课程
// @Produce json
// @Param id path int true "课时ID"
// @Success 200 {object} util.Response{data=[]model.Activity}
// @Router /api/lessons/{id}/activities [get]
func (c *CourseController) ListActivities(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	list, err := c.ContentService.ListActivities(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, list)
}
