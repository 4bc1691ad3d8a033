package dto

import (
	"time"

	"github.com/google/uuid"

	"ergo-assist-be/pkg/store"
)

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllSessionsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type GetChatHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Kind      string    `json:"kind"`
	Chat      string    `json:"chat"`
	Filename  *string   `json:"filename,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	Text          string    `json:"text"`
}

type MessageDTO struct {
	Role     string `json:"role"`
	Kind     string `json:"kind"`
	Content  string `json:"content"`
	Filename string `json:"filename,omitempty"`
}

// SendMessageResponse carries the new transcript entries plus the updated
// session state so the client can re-render without a second round trip.
type SendMessageResponse struct {
	ChatSessionId uuid.UUID     `json:"chat_session_id"`
	Messages      []MessageDTO  `json:"messages"`
	State         store.Session `json:"state"`
	ClearText     bool          `json:"clear_text"`
	ClearUpload   bool          `json:"clear_upload"`
}

type SessionStateResponse struct {
	State store.Session `json:"state"`
}

type DeleteSessionRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id"`
}

// PublishVerdictMessage is the payload handed to the assessment consumer
// when a cross-check completes.
type PublishVerdictMessage struct {
	ChatSessionId  uuid.UUID          `json:"chat_session_id"`
	UserId         uuid.UUID          `json:"user_id"`
	Verdict        string             `json:"verdict"`
	Metrics        map[string]float64 `json:"metrics"`
	ScanPath       string             `json:"scan_path"`
	TaskRecordPath string             `json:"task_record_path"`
}
