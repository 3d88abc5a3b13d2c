package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySession filters chat messages belonging to one session
type BySession struct {
	SessionId uuid.UUID
}

func (s BySession) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.SessionId)
}

// ByUser filters rows owned by one user
type ByUser struct {
	UserId uuid.UUID
}

func (s ByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserId)
}
