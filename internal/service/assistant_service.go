package service

import (
	"bootcamp_lms_backend/internal/model"
	"bootcamp_lms_backend/internal/repository"
	"bootcamp_lms_backend/internal/util"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// historyWindow caps how much transcript is replayed to the LLM per turn.
const historyWindow = 20

const assistantPreamble = "You are a teaching assistant for a coding bootcamp. " +
	"Help students understand programming concepts from their lessons. " +
	"Explain step by step, prefer small runnable examples, and never just " +
	"hand over a finished project solution. If a question is unrelated to " +
	"programming or the course material, politely steer the student back " +
	"to the course."

// AssistantService persists chat transcripts and forwards each turn, plus a
// fixed instructional preamble, to the LLM. Pure I/O glue around AIService.
type AssistantService struct {
	conversations *repository.ConversationRepository
	ai            *AIService
}

func NewAssistantService(conversations *repository.ConversationRepository, ai *AIService) *AssistantService {
	return &AssistantService{conversations: conversations, ai: ai}
}

func (s *AssistantService) CreateConversation(userID uint, title string) (*model.Conversation, error) {
	if strings.TrimSpace(title) == "" {
		title = "New conversation"
	}
	conversation := &model.Conversation{
		UserID: userID,
		Title:  title,
	}
	if err := s.conversations.Create(conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

func (s *AssistantService) ListConversations(userID uint) ([]model.Conversation, error) {
	return s.conversations.ListForUser(userID)
}

func (s *AssistantService) Messages(userID, conversationID uint) ([]model.ConversationMessage, error) {
	if _, err := s.ownedConversation(userID, conversationID); err != nil {
		return nil, err
	}
	return s.conversations.Messages(conversationID, 0)
}

type AssistantReply struct {
	Message string `json:"message"`
}

// SendMessage appends the student's turn, asks the LLM with the recent
// transcript, and appends the reply. The user's message is persisted even
// when the provider fails, so the student can retry without retyping.
func (s *AssistantService) SendMessage(userID, conversationID uint, message string) (*AssistantReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, util.NewValidationError("message", "message is required")
	}

	if _, err := s.ownedConversation(userID, conversationID); err != nil {
		return nil, err
	}

	if err := s.conversations.AppendMessage(&model.ConversationMessage{
		ConversationID: conversationID,
		Role:           "user",
		Content:        message,
	}); err != nil {
		return nil, err
	}

	history, err := s.conversations.Messages(conversationID, historyWindow)
	if err != nil {
		return nil, err
	}

	messages := make([]AIChatMessage, 0, len(history)+1)
	messages = append(messages, AIChatMessage{Role: "system", Content: assistantPreamble})
	for _, m := range history {
		messages = append(messages, AIChatMessage{Role: m.Role, Content: m.Content})
	}

	reply, err := s.ai.Chat(messages)
	if err != nil {
		return nil, &util.ExternalServiceError{Service: "assistant", Err: err}
	}

	if err := s.conversations.AppendMessage(&model.ConversationMessage{
		ConversationID: conversationID,
		Role:           "assistant",
		Content:        reply,
	}); err != nil {
		return nil, err
	}

	return &AssistantReply{Message: reply}, nil
}

func (s *AssistantService) ownedConversation(userID, conversationID uint) (*model.Conversation, error) {
	conversation, err := s.conversations.ByIDForUser(conversationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrConversationNotFound
		}
		return nil, err
	}
	return conversation, nil
}
