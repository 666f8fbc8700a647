package controller

import (
	"bootcamp_lms_backend/internal/service"
	"bootcamp_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// SubmissionController handles the student side of the submission workflow.
type SubmissionController struct {
	SubmissionService *service.SubmissionService
	QuizService       *service.QuizService
}

func NewSubmissionController(submissionService *service.SubmissionService, quizService *service.QuizService) *SubmissionController {
	return &SubmissionController{
		SubmissionService: submissionService,
		QuizService:       quizService,
	}
}

// @Summary Submit a project
// @Description Creates a fresh pending submission once the module gate is
// open; a 409 with completedLessons/totalLessons means the project is locked.
// @Tags submissions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "project id"
// @Param body body service.ProjectSubmissionRequest true "submission"
// @Success 201 {object} util.Response
// @Router /api/projects/{id}/submissions [post]
func (c *SubmissionController) SubmitProject(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.ProjectSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.SubmissionService.SubmitProject(user.UserID, id, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"submissionId": submission.ID,
		"status":       submission.Status,
	})
}

// @Summary My submission history for a project
// @Tags submissions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "project id"
// @Success 200 {object} util.Response
// @Router /api/projects/{id}/submissions [get]
func (c *SubmissionController) ListMySubmissions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	submissions, err := c.SubmissionService.HistoryForProject(user.UserID, id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

// @Summary Take a lesson's quiz
// @Tags submissions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "lesson id"
// @Param body body service.QuizAttemptRequest true "answers"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/quiz-attempts [post]
func (c *SubmissionController) SubmitQuizAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.QuizAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.SubmitAttempt(user.UserID, id, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Submit a lesson activity for review
// @Tags submissions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "lesson id"
// @Param body body service.ActivitySubmissionRequest true "submission"
// @Success 201 {object} util.Response
// @Router /api/lessons/{id}/activity-submissions [post]
func (c *SubmissionController) SubmitActivity(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.ActivitySubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.SubmissionService.SubmitActivity(user.UserID, id, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"submissionId": submission.ID,
		"status":       submission.Status,
	})
}
