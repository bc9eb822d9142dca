package controller

import (
	"aura_edu_backend/internal/model"
	"aura_edu_backend/internal/service"
	"aura_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminContentController 后台内容管理：课程、课时、知识点、代码示例与练习
type AdminContentController struct {
	ContentService  *service.ContentService
	ActivityService *service.ActivityService
}

func NewAdminContentController(contentService *service.ContentService, activityService *service.ActivityService) *AdminContentController {
	return &AdminContentController{ContentService: contentService, ActivityService: activityService}
}

// swagger:model CourseRequest
type CourseRequest struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description"`
	Difficulty  model.Difficulty `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Published   bool             `json:"published"`
	Order       int              `json:"order"`
}

func (r CourseRequest) toModel() *model.Course {
	return &model.Course{Title: r.Title, Description: r.Description, Difficulty: r.Difficulty, Published: r.Published, Order: r.Order}
}

// swagger:model LessonRequest
type LessonRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// swagger:model TopicRequest
type TopicRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// swagger:model CodeExampleRequest
type CodeExampleRequest struct {
	Title       string `json:"title" binding:"required"`
	Language    string `json:"language"`
	Code        string `json:"code" binding:"required"`
	Explanation string `json:"explanation"`
}

// swagger:model ActivityRequest
type ActivityRequest struct {
	Title         string `json:"title" binding:"required"`
	Instructions  string `json:"instructions"`
	StarterCode   string `json:"starterCode"`
	ExpectedHTML  string `json:"expectedHtml" binding:"required"`
	PassThreshold int    `json:"passThreshold" binding:"min=0,max=100"`
	XP            int    `json:"xp" binding:"min=0"`
}

func (r ActivityRequest) toModel() *model.Activity {
	return &model.Activity{
		Title:         r.Title,
		Instructions:  r.Instructions,
		StarterCode:   r.StarterCode,
		ExpectedHTML:  r.ExpectedHTML,
		PassThreshold: r.PassThreshold,
		XP:            r.XP,
	}
}

// ListCourses godoc
// @Summary 后台课程列表（含未发布）
// @Tags 后台-内容
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /admin/courses [get]
func (c *AdminContentController) ListCourses(ctx *gin.Context) {
	page, limit := pagination(ctx)
	courses, total, err := c.ContentService.ListCourses(ctx.Request.Context(), false, ctx.Query("search"), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Page(ctx, courses, total, page, limit)
}

// GetCourse godoc
// @Summary 后台课程详情
// @Tags 后台-内容
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /admin/courses/{id} [get]
func (c *AdminContentController) GetCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	course, err := c.ContentService.GetCourse(ctx.Request.Context(), id, false)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// CreateCourse godoc
// @Summary 创建课程
// @Tags 后台-内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CourseRequest true "课程"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /admin/courses [post]
func (c *AdminContentController) CreateCourse(ctx *gin.Context) {
	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course := req.toModel()
	if err := c.ContentService.CreateCourse(ctx.Request.Context(), course); err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary 更新课程
// @Tags 后台-内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body CourseRequest true "课程"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /admin/courses/{id} [put]
func (c *AdminContentController) UpdateCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course, err := c.ContentService.UpdateCourse(ctx.Request.Context(), id, req.toModel())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Tags 后台-内容
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /admin/courses/{id} [delete]
func (c *AdminContentController) DeleteCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.ContentService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateLesson godoc
// @Summary 创建课时
// @Tags 后台-内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body LessonRequest true "课时"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Router /admin/courses/{id}/lessons [post]
func (c *AdminContentController) CreateLesson(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	lesson := &model.Lesson{CourseID: courseID, Title: req.Title, Content: req.Content, Order: req.Order}
	if err := c.ContentService.CreateLesson(ctx.Request.Context(), lesson); err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// UpdateLesson godoc
// @Summary 更新课时
// @Tags 后台-内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课时ID"
// @Param body body LessonRequest true "课时"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /admin/lessons/{id} [put]
func (c *AdminContentController) UpdateLesson(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	lesson, err := c.ContentService.UpdateLesson(ctx.Request.Context(), id, &model.Lesson{Title: req.Title, Content: req.Content, Order: req.Order})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// DeleteLesson godoc
// @Summary 删除课时
// @Tags 后台-内容
// @Security ApiKeyAuth
// @Param id path int true "课时ID"
// @Success 200 {object} util.Response
// @Router /admin/lessons/{id} [delete]
func (c *AdminContentController) DeleteLesson(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.ContentService.DeleteLesson(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateTopic godoc
// @Summary 创建知识点
// @Tags 后台-内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课时ID"
// @Param body body TopicRequest true "知识点"
// @Success 201 {object} util.Response{data=model.Topic}
// @Router /admin/lessons/{id}/topics [post]
func (c *AdminContentController) CreateTopic(ctx *gin.Context) {
	lessonID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	topic := &model.Topic{LessonID: lessonID, Title: req.Title, Content: req.Content, Order: req.Order}
	if err := c.ContentService.CreateTopic(ctx.Request.Context(), topic); err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, topic)
}

// UpdateTopic godoc
// @Summary 更新知识点
// @Tags 后台-内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "知识点ID"
// @Param body body TopicRequest true "知识点"
// @Success 200 {object} util.Response{data=model.Topic}
// @Router /admin/topics/{id} [put]
func (c *AdminContentController) UpdateTopic(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	topic, err := c.ContentService.UpdateTopic(ctx.Request.Context(), id, &model.Topic{Title: req.Title, Content: req.Content, Order: req.Order})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, topic)
}

// DeleteTopic godoc
// @Summary 删除知识点
// @Tags 后台-内容
// @Security ApiKeyAuth
// @Param id path int true "知识点ID"
// @Success 200 {object} util.Response
// @Router /admin/topics/{id} [delete]
func (c *AdminContentController) DeleteTopic(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.ContentService.DeleteTopic(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateCodeExample godoc
// @Summary 创建代码示例
// @Tags 后台-内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "知识点ID"
// @Param body body CodeExampleRequest true "代码示例"
// @Success 201 {object} util.Response{data=model.CodeExample}
// @Router /admin/topics/{id}/examples [post]
func (c *AdminContentController) CreateCodeExample(ctx *gin.Context) {
	topicID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req CodeExampleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	example := &model.CodeExample{TopicID: topicID, Title: req.Title, Language: req.Language, Code: req.Code, Explanation: req.Explanation}
	if err := c.ContentService.CreateCodeExample(ctx.Request.Context(), example); err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, example)
}

// UpdateCodeExample godoc
// @Summary 更新代码示例
// @Tags 后台-内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "示例ID"
// @Param body body CodeExampleRequest true "代码示例"
// @Success 200 {object} util.Response{data=model.CodeExample}
// @Router /admin/examples/{id} [put]
func (c *AdminContentController) UpdateCodeExample(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req CodeExampleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	example, err := c.ContentService.UpdateCodeExample(ctx.Request.Context(), id,
		&model.CodeExample{Title: req.Title, Language: req.Language, Code: req.Code, Explanation: req.Explanation})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, example)
}

// DeleteCodeExample godoc
// @Summary 删除代码示例
// @Tags 后台-内容
// @Security ApiKeyAuth
// @Param id path int true "示例ID"
// @Success 200 {object} util.Response
// @Router /admin/examples/{id} [delete]
func (c *AdminContentController) DeleteCodeExample(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.ContentService.DeleteCodeExample(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateActivity godoc
// @Summary 创建练习
// @Tags 后台-内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课时ID"
// @Param body body ActivityRequest true "练习"
// @Success 201 {object} util.Response{data=model.Activity}
// @Router /admin/lessons/{id}/activities [post]
func (c *AdminContentController) CreateActivity(ctx *gin.Context) {
	lessonID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	activity := req.toModel()
	activity.LessonID = lessonID
	if err := c.ContentService.CreateActivity(ctx.Request.Context(), activity); err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, activity)
}

// UpdateActivity godoc
// @Summary 更新练习
// @Tags 后台-内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "练习ID"
// @Param body body ActivityRequest true "练习"
// @Success 200 {object} util.Response{data=model.Activity}
// @Router /admin/activities/{id} [put]
func (c *AdminContentController) UpdateActivity(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	activity, err := c.ContentService.UpdateActivity(ctx.Request.Context(), id, req.toModel())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, activity)
}

// DeleteActivity godoc
// @Summary 删除练习
// @Tags 后台-内容
// @Security ApiKeyAuth
// @Param id path int true "练习ID"
// @Success 200 {object} util.Response
// @Router /admin/activities/{id} [delete]
func (c *AdminContentController) DeleteActivity(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.ContentService.DeleteActivity(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListSubmissions godoc
// @Summary 练习提交记录
// @Tags 后台-内容
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "练习ID"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /admin/activities/{id}/submissions [get]
func (c *AdminContentController) ListSubmissions(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	page, limit := pagination(ctx)
	list, total, err := c.ActivityService.ListSubmissions(ctx.Request.Context(), id, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Page(ctx, list, total, page, limit)
}
