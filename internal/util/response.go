package util

import (
	"bootcamp_lms_backend/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the uniform envelope for every endpoint.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse wraps paginated lists.
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// RespondError maps a service error onto the HTTP taxonomy. Unknown errors
// are logged and answered as 500.
func RespondError(c *gin.Context, err error) {
	var locked *LockedError
	var validation *ValidationError
	var external *ExternalServiceError

	switch {
	case errors.As(err, &locked):
		c.JSON(http.StatusConflict, Response{
			Code:    http.StatusConflict,
			Message: locked.Error(),
			Data:    locked,
		})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, Response{
			Code:    http.StatusBadRequest,
			Message: validation.Error(),
			Data:    validation,
		})
	case errors.As(err, &external):
		logger.Log.Error("External service failure", zap.Error(err))
		Error(c, http.StatusBadGateway, "The assistant is unavailable, please try again")
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrCourseNotFound),
		errors.Is(err, ErrModuleNotFound),
		errors.Is(err, ErrLessonNotFound),
		errors.Is(err, ErrProjectNotFound),
		errors.Is(err, ErrSubmissionNotFound),
		errors.Is(err, ErrCohortNotFound),
		errors.Is(err, ErrConversationNotFound):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrPermissionDenied):
		Forbidden(c)
	case errors.Is(err, ErrInvalidCredentials):
		Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrEmailRegistered),
		errors.Is(err, ErrDuplicateOrder):
		Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrSubmissionFinal):
		Error(c, http.StatusConflict, err.Error())
	default:
		LogInternalError(c, err)
	}
}
