package controller

import (
	"bootcamp_lms_backend/internal/service"
	"bootcamp_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AssistantController exposes the study-assistant chat to students.
type AssistantController struct {
	AssistantService *service.AssistantService
}

func NewAssistantController(assistantService *service.AssistantService) *AssistantController {
	return &AssistantController{AssistantService: assistantService}
}

type createConversationRequest struct {
	Title string `json:"title"`
}

type sendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// @Summary Start a new assistant conversation
// @Tags assistant
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body createConversationRequest true "conversation"
// @Success 201 {object} util.Response
// @Router /api/assistant/conversations [post]
func (c *AssistantController) CreateConversation(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req createConversationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	conversation, err := c.AssistantService.CreateConversation(user.UserID, req.Title)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, conversation)
}

// @Summary List my conversations
// @Tags assistant
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/assistant/conversations [get]
func (c *AssistantController) ListConversations(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	conversations, err := c.AssistantService.ListConversations(user.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, conversations)
}

// @Summary Full transcript of a conversation
// @Tags assistant
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "conversation id"
// @Success 200 {object} util.Response
// @Router /api/assistant/conversations/{id}/messages [get]
func (c *AssistantController) GetMessages(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	messages, err := c.AssistantService.Messages(user.UserID, id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, messages)
}

// @Summary Send a message to the assistant
// @Description A 502 means the language model provider failed; the student's
// message is still saved and can be retried.
// @Tags assistant
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "conversation id"
// @Param body body sendMessageRequest true "message"
// @Success 200 {object} util.Response
// @Router /api/assistant/conversations/{id}/messages [post]
func (c *AssistantController) SendMessage(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.AssistantService.SendMessage(user.UserID, id, req.Message)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, reply)
}
