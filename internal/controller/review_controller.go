package controller

import (
	"bootcamp_lms_backend/internal/service"
	"bootcamp_lms_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ReviewController is the instructor's view: the grading queue, individual
// submissions, and cohort progress.
type ReviewController struct {
	SubmissionService *service.SubmissionService
	CohortService     *service.CohortService
}

func NewReviewController(submissionService *service.SubmissionService, cohortService *service.CohortService) *ReviewController {
	return &ReviewController{
		SubmissionService: submissionService,
		CohortService:     cohortService,
	}
}

// @Summary Grading queue
// @Tags review
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "pending|in_review|approved|rejected"
// @Param kind query string false "project|lesson"
// @Success 200 {object} util.Response
// @Router /api/instructor/submissions [get]
func (c *ReviewController) ListQueue(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	submissions, total, err := c.SubmissionService.Queue(
		ctx.Query("status"), ctx.Query("kind"), page, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  submissions,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary Submission detail
// @Tags review
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "submission id"
// @Success 200 {object} util.Response
// @Router /api/instructor/submissions/{id} [get]
func (c *ReviewController) GetSubmission(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	submission, err := c.SubmissionService.ByID(id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}

// @Summary Claim a submission for grading
// @Tags review
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "submission id"
// @Success 200 {object} util.Response
// @Router /api/instructor/submissions/{id}/claim [post]
func (c *ReviewController) ClaimSubmission(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	submission, err := c.SubmissionService.MarkInReview(id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}

// @Summary Review a submission
// @Description Approve or reject with feedback and a grade. The updated
// submission is echoed back.
// @Tags review
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "submission id"
// @Param body body service.ReviewRequest true "review"
// @Success 200 {object} util.Response
// @Router /api/instructor/submissions/{id}/review [post]
func (c *ReviewController) ReviewSubmission(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.SubmissionService.Review(user.UserID, id, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}

// @Summary Per-student progress for a cohort
// @Tags review
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "cohort id"
// @Success 200 {object} util.Response
// @Router /api/instructor/cohorts/{id}/progress [get]
func (c *ReviewController) CohortProgress(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	overview, err := c.CohortService.ProgressOverview(id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}
