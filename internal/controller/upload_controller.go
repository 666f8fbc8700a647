package controller

import (
	"bootcamp_lms_backend/internal/service"
	"bootcamp_lms_backend/internal/util"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Attachment size caps, in bytes.
const (
	maxAttachmentSize = 20 << 20
	maxVideoSize      = 500 << 20
)

var allowedVideoExt = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".webm": true,
	".mkv":  true,
}

// UploadController pushes submission attachments and lesson videos to the
// configured storage backend.
type UploadController struct {
	StorageService *service.StorageService
}

func NewUploadController(storageService *service.StorageService) *UploadController {
	return &UploadController{StorageService: storageService}
}

// @Summary Upload a submission attachment
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "attachment"
// @Success 201 {object} util.Response
// @Router /api/uploads/attachments [post]
func (c *UploadController) UploadAttachment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if file.Size > maxAttachmentSize {
		util.BadRequest(ctx, "file exceeds the 20MB limit")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	filename := fmt.Sprintf("attachments/%d/%s%s",
		user.UserID, uuid.New().String(), filepath.Ext(file.Filename))

	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src,
		file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
	})
}

// @Summary Upload a lesson video
// @Description The video is probed locally before being pushed to storage, so
// duration and resolution come back with the URL.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "video"
// @Success 201 {object} util.Response
// @Router /api/admin/uploads/videos [post]
func (c *UploadController) UploadVideo(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if file.Size > maxVideoSize {
		util.BadRequest(ctx, "video exceeds the 500MB limit")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedVideoExt[ext] {
		util.BadRequest(ctx, "unsupported video format")
		return
	}

	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("video-%s%s", uuid.New().String(), ext))
	if err := ctx.SaveUploadedFile(file, tmp); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmp)

	info, err := util.ProbeVideo(tmp)
	if err != nil {
		util.BadRequest(ctx, "file is not a readable video")
		return
	}

	filename := fmt.Sprintf("videos/%s/%s%s",
		time.Now().Format("2006/01"), uuid.New().String(), ext)

	url, err := c.StorageService.UploadFile(ctx.Request.Context(), filename, tmp,
		file.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"url":      url,
		"duration": info.Duration,
		"width":    info.Width,
		"height":   info.Height,
		"size":     info.Size,
	})
}
