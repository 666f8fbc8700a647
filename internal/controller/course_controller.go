package controller

import (
	"bootcamp_lms_backend/internal/service"
	"bootcamp_lms_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CourseController serves the student-facing read side of the course tree
// plus the progress operations.
type CourseController struct {
	ContentService  *service.ContentService
	ProgressService *service.ProgressService
}

func NewCourseController(contentService *service.ContentService, progressService *service.ProgressService) *CourseController {
	return &CourseController{
		ContentService:  contentService,
		ProgressService: progressService,
	}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// @Summary List published courses
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	courses, err := c.ContentService.Catalog()
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary Course detail with modules and lessons
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	course, err := c.ContentService.GetCourse(id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary Lesson detail
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id} [get]
func (c *CourseController) GetLesson(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	lesson, err := c.ContentService.GetLesson(id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// @Summary Overall course progress for the current student
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/progress [get]
func (c *CourseController) GetCourseProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	// 404 for unknown courses rather than a misleading 0%
	if _, err := c.ContentService.GetCourse(id); err != nil {
		util.RespondError(ctx, err)
		return
	}

	progress, err := c.ProgressService.Overall(user.UserID, id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary Mark a lesson as completed
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/complete [post]
func (c *CourseController) CompleteLesson(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	progress, err := c.ProgressService.MarkLessonComplete(user.UserID, id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary Module project with its unlock state
// @Description Returns the project and whether it is unlocked; when locked,
// completedLessons/totalLessons explain what is missing.
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "module id"
// @Success 200 {object} util.Response
// @Router /api/modules/{id}/project [get]
func (c *CourseController) GetModuleProject(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	module, err := c.ContentService.GetModule(id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	gate, err := c.ProgressService.Gate(user.UserID, id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"project":          module.Project,
		"locked":           gate.Locked,
		"completedLessons": gate.CompletedLessons,
		"totalLessons":     gate.TotalLessons,
	})
}
