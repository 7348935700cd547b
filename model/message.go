package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrPersistence marks a failed read or write against the chat history table.
var ErrPersistence = errors.New("persistence failed")

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of a persisted conversation. Rows are immutable:
// there is no update path, only create, list and bulk delete per user.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId    string    `json:"user_id" gorm:"index:idx_user_id_created_at"`
	Role      ChatRole  `gorm:"type:varchar(64)" json:"role"`
	Content   string    `gorm:"type:text" json:"content"`
	Language  string    `gorm:"type:varchar(8);default:'en'" json:"language"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_user_id_created_at"`
}

// ChatStore owns the chat_messages table.
type ChatStore struct {
	db *gorm.DB
}

func NewChatStore(db *gorm.DB) *ChatStore {
	return &ChatStore{db: db}
}

// Append stores a new message. The store assigns ID and CreatedAt.
func (s *ChatStore) Append(ctx context.Context, msg *ChatMessage) error {
	if msg.Language == "" {
		msg.Language = "en"
	}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("%w: create chat message: %v", ErrPersistence, err)
	}
	return nil
}

// Recent returns up to limit messages for the user, most recent first.
// Callers that need chronological order reverse the slice themselves.
func (s *ChatStore) Recent(ctx context.Context, userId string, limit int) ([]ChatMessage, error) {
	var messages []ChatMessage
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list chat messages: %v", ErrPersistence, err)
	}
	return messages, nil
}

// Purge removes every message belonging to the user.
func (s *ChatStore) Purge(ctx context.Context, userId string) error {
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Delete(&ChatMessage{}).Error; err != nil {
		return fmt.Errorf("%w: delete chat messages: %v", ErrPersistence, err)
	}
	return nil
}
