package model

import "time"

// Conversation is one assistant chat thread owned by a student.
type Conversation struct {
	BaseModel
	UserID   uint                  `gorm:"index;not null" json:"userId"`
	Title    string                `gorm:"size:255" json:"title"`
	Messages []ConversationMessage `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

func (Conversation) TableName() string {
	return "conversations"
}

type ConversationMessage struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID uint      `gorm:"index;not null" json:"conversationId"`
	Role           string    `gorm:"size:20;not null" json:"role"` // user or assistant
	Content        string    `gorm:"type:longtext;not null" json:"content"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`
}

func (ConversationMessage) TableName() string {
	return "conversation_messages"
}
