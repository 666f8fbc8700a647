package controller

import (
	"bootcamp_lms_backend/internal/service"
	"bootcamp_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CohortController struct {
	CohortService *service.CohortService
}

func NewCohortController(cohortService *service.CohortService) *CohortController {
	return &CohortController{CohortService: cohortService}
}

// @Summary List cohorts
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/cohorts [get]
func (c *CohortController) List(ctx *gin.Context) {
	cohorts, err := c.CohortService.List()
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, cohorts)
}

// @Summary Create a cohort
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CohortRequest true "cohort"
// @Success 201 {object} util.Response
// @Router /api/admin/cohorts [post]
func (c *CohortController) Create(ctx *gin.Context) {
	var req service.CohortRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cohort, err := c.CohortService.Create(req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, cohort)
}

// @Summary Update a cohort
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "cohort id"
// @Param body body service.CohortRequest true "cohort"
// @Success 200 {object} util.Response
// @Router /api/admin/cohorts/{id} [put]
func (c *CohortController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.CohortRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cohort, err := c.CohortService.Update(id, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, cohort)
}

// @Summary Delete a cohort
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "cohort id"
// @Success 200 {object} util.Response
// @Router /api/admin/cohorts/{id} [delete]
func (c *CohortController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.CohortService.Delete(id); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Cohort deleted"})
}
