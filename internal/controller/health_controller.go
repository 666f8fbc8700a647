package controller

import (
	"bootcamp_lms_backend/internal/util"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// @Summary Liveness and database connectivity check
// @Tags health
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	if err := sqlDB.Ping(); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
