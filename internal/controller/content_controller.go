package controller

import (
	"bootcamp_lms_backend/internal/service"
	"bootcamp_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ContentController is the admin authoring surface for the course tree.
type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// @Summary List all courses including drafts
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/courses [get]
func (c *ContentController) ListCourses(ctx *gin.Context) {
	courses, err := c.ContentService.ListCourses()
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary Create a course
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CourseRequest true "course"
// @Success 201 {object} util.Response
// @Router /api/admin/courses [post]
func (c *ContentController) CreateCourse(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.ContentService.CreateCourse(req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary Update a course
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Param body body service.CourseRequest true "course"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [put]
func (c *ContentController) UpdateCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.ContentService.UpdateCourse(id, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary Delete a course and everything under it
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [delete]
func (c *ContentController) DeleteCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.ContentService.DeleteCourse(id); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Course deleted"})
}

// @Summary Add a module to a course
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Param body body service.ModuleRequest true "module"
// @Success 201 {object} util.Response
// @Router /api/admin/courses/{id}/modules [post]
func (c *ContentController) CreateModule(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.ContentService.CreateModule(id, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// @Summary Update a module
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "module id"
// @Param body body service.ModuleRequest true "module"
// @Success 200 {object} util.Response
// @Router /api/admin/modules/{id} [put]
func (c *ContentController) UpdateModule(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.ContentService.UpdateModule(id, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// @Summary Delete a module, its lessons and project
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "module id"
// @Success 200 {object} util.Response
// @Router /api/admin/modules/{id} [delete]
func (c *ContentController) DeleteModule(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.ContentService.DeleteModule(id); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Module deleted"})
}

// @Summary Add a lesson to a module
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "module id"
// @Param body body service.LessonRequest true "lesson"
// @Success 201 {object} util.Response
// @Router /api/admin/modules/{id}/lessons [post]
func (c *ContentController) CreateLesson(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.ContentService.CreateLesson(id, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// @Summary Update a lesson
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "lesson id"
// @Param body body service.LessonRequest true "lesson"
// @Success 200 {object} util.Response
// @Router /api/admin/lessons/{id} [put]
func (c *ContentController) UpdateLesson(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.ContentService.UpdateLesson(id, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// @Summary Delete a lesson and its quiz/activity payload
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/admin/lessons/{id} [delete]
func (c *ContentController) DeleteLesson(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.ContentService.DeleteLesson(id); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Lesson deleted"})
}

// @Summary Create or replace a module's project
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "module id"
// @Param body body service.ProjectRequest true "project"
// @Success 200 {object} util.Response
// @Router /api/admin/modules/{id}/project [put]
func (c *ContentController) UpsertProject(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.ProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	project, err := c.ContentService.UpsertProject(id, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, project)
}

// @Summary Remove a module's project
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "module id"
// @Success 200 {object} util.Response
// @Router /api/admin/modules/{id}/project [delete]
func (c *ContentController) DeleteProject(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.ContentService.DeleteProject(id); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Project deleted"})
}
