package controller

import (
	"bootcamp_lms_backend/internal/service"
	"bootcamp_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// @Summary Register a student account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.RegisterRequest true "registration"
// @Success 201 {object} util.Response
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Register(req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, resp)
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.LoginRequest true "credentials"
// @Success 200 {object} util.Response
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Login(req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary Current user profile
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.AuthService.Profile(user.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}
