package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Assessment struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId        uuid.UUID      `gorm:"type:uuid;not null;index"`
	Verdict       string         `gorm:"type:varchar(50);not null"`
	Metrics       datatypes.JSON `gorm:"type:jsonb"`
	TaskRecord    datatypes.JSON `gorm:"type:jsonb"`
	ScanPath      string         `gorm:"type:text"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
}

func (Assessment) TableName() string {
	return "assessments"
}
