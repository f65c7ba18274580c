package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatRole represents the sender of a chat message
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage represents a message in a chat session. Messages are
// append-only and ordered by creation time.
type ChatMessage struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	SessionID string    `json:"session_id" gorm:"type:uuid;not null;index"`
	Role      ChatRole  `json:"role" gorm:"type:varchar(16);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Session ChatSession `json:"session,omitempty" gorm:"foreignKey:SessionID"`
}

// TableName returns the table name for the ChatMessage model
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// BeforeCreate hook to assign the ID
func (cm *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if cm.ID == "" {
		cm.ID = uuid.NewString()
	}
	return nil
}

// IsFromUser checks if the message is from a user
func (cm *ChatMessage) IsFromUser() bool {
	return cm.Role == ChatRoleUser
}

// IsFromAssistant checks if the message is from an assistant
func (cm *ChatMessage) IsFromAssistant() bool {
	return cm.Role == ChatRoleAssistant
}
