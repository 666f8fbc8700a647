package controller

import (
	"bootcamp_lms_backend/internal/service"
	"bootcamp_lms_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// @Summary List users
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param role query string false "student|instructor|admin"
// @Success 200 {object} util.Response
// @Router /api/admin/users [get]
func (c *UserController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := c.UserService.List(ctx.Query("role"), page, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary Update a user's role, cohort or disabled flag
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "user id"
// @Param body body service.UserAdminRequest true "changes"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id} [patch]
func (c *UserController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.UserAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.AdminUpdate(id, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
