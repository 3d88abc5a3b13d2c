package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMessage struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Role          string         `gorm:"type:text;not null"` // user | assistant
	Content       string         `gorm:"type:text;not null"`
	Model         *string        `gorm:"type:text"`
	Complexity    *string        `gorm:"type:text"`
	Sources       datatypes.JSON `gorm:"type:jsonb"` // []entity.ChatSource
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
