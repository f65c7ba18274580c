package services

import (
	"errors"
	"time"

	"headphone_store_server/internal/models"

	"gorm.io/gorm"
)

type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

// CreateSession starts a new conversation
func (s *ChatService) CreateSession(userID *string) (*models.ChatSession, error) {
	session := &models.ChatSession{UserID: userID}
	if err := s.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession retrieves a session without messages
func (s *ChatService) GetSession(id string) (*models.ChatSession, error) {
	var session models.ChatSession
	if err := s.db.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Session", ID: id}
		}
		return nil, err
	}
	return &session, nil
}

// GetSessionWithMessages retrieves a session with its most recent limit
// messages populated in chronological order (oldest first).
func (s *ChatService) GetSessionWithMessages(id string, limit int) (*models.ChatSession, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return nil, err
	}

	var recent []models.ChatMessage
	if err := s.db.Where("session_id = ?", id).
		Order("created_at DESC").
		Limit(limit).
		Find(&recent).Error; err != nil {
		return nil, err
	}

	// query returns newest first, flip to chronological
	session.Messages = make([]models.ChatMessage, len(recent))
	for i, m := range recent {
		session.Messages[len(recent)-1-i] = m
	}
	return session, nil
}

// AppendMessage inserts a message and bumps the session's updated_at
func (s *ChatService) AppendMessage(sessionID string, role models.ChatRole, content string) (*models.ChatMessage, error) {
	if _, err := s.GetSession(sessionID); err != nil {
		return nil, err
	}

	msg := &models.ChatMessage{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
	}
	if err := s.db.Create(msg).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.ChatSession{}).
		Where("id = ?", sessionID).
		UpdateColumn("updated_at", time.Now()).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// DeleteSession removes a session and all of its messages. Returns false
// when the session does not exist.
func (s *ChatService) DeleteSession(id string) (bool, error) {
	if _, err := s.GetSession(id); err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, err
	}

	// explicit two-step delete: sqlite does not enforce the FK cascade
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&models.ChatMessage{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.ChatSession{}).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// RecentSessions returns the most recently active sessions
func (s *ChatService) RecentSessions(limit int) ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	err := s.db.Order("updated_at DESC").Limit(limit).Find(&sessions).Error
	return sessions, err
}
