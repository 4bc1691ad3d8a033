package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}

type ByVerdict struct {
	Verdict string
}

func (s ByVerdict) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("verdict = ?", s.Verdict)
}
