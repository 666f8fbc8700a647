package repository

import (
	"bootcamp_lms_backend/internal/model"

	"gorm.io/gorm"
)

type ConversationRepository struct {
	DB *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{DB: db}
}

func (r *ConversationRepository) Create(conversation *model.Conversation) error {
	return r.DB.Create(conversation).Error
}

func (r *ConversationRepository) ByIDForUser(id, userID uint) (*model.Conversation, error) {
	var conversation model.Conversation
	err := r.DB.
		Where("id = ? AND user_id = ?", id, userID).
		First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *ConversationRepository) ListForUser(userID uint) ([]model.Conversation, error) {
	var conversations []model.Conversation
	err := r.DB.
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&conversations).Error
	return conversations, err
}

func (r *ConversationRepository) AppendMessage(message *model.ConversationMessage) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		// bump updated_at so the conversation list sorts by recency
		return tx.Model(&model.Conversation{}).
			Where("id = ?", message.ConversationID).
			Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP(3)")).Error
	})
}

// Messages returns the most recent messages in chronological order.
func (r *ConversationRepository) Messages(conversationID uint, limit int) ([]model.ConversationMessage, error) {
	var messages []model.ConversationMessage
	query := r.DB.
		Where("conversation_id = ?", conversationID).
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
