package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ergo-assist-be/internal/constant"
	"ergo-assist-be/internal/dto"
	"ergo-assist-be/internal/entity"
	"ergo-assist-be/internal/repository/memory"
	"ergo-assist-be/internal/repository/specification"
	"ergo-assist-be/internal/repository/unitofwork"
	"ergo-assist-be/pkg/assess"
	"ergo-assist-be/pkg/store"

	"github.com/google/uuid"
)

// IChatService defines the assessment chat service interface
type IChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
	GetState(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SessionStateResponse, error)
	SendMessage(ctx context.Context, userId uuid.UUID, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	UploadScan(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, filename string, data []byte) (*dto.SendMessageResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, request *dto.DeleteSessionRequest) error
}

// sessionNotifier pushes live updates to every device a user has
// connected. Satisfied by the websocket hub.
type sessionNotifier interface {
	Send(userID uuid.UUID, messageType string, payload interface{})
}

// chatService wires the session engine to persistence and messaging.
// Events on one session are serialized through a per-session mutex; the
// engine itself assumes single-threaded access per session.
type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	sessionRepo      *memory.SessionRepository
	engine           *assess.Engine
	publisherService IPublisherService
	hub              sessionNotifier
	assessLogger     *log.Logger

	sessionLocks sync.Map // session id -> *sync.Mutex
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	sessionRepo *memory.SessionRepository,
	engine *assess.Engine,
	publisherService IPublisherService,
	hub sessionNotifier,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		sessionRepo:      sessionRepo,
		engine:           engine,
		publisherService: publisherService,
		hub:              hub,
		assessLogger:     initAssessLogger(),
	}
}

func initAssessLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "assessment.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[ASSESS] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

func (cs *chatService) lockSession(sessionId uuid.UUID) *sync.Mutex {
	v, _ := cs.sessionLocks.LoadOrStore(sessionId.String(), &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu
}

// CreateSession creates a new assessment session seeded with the greeting
func (cs *chatService) CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	chatSession := entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     "Assessment session",
		CreatedAt: now,
	}

	greeting := entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          constant.SessionGreeting,
		Role:          constant.ChatMessageRoleAssistant,
		Kind:          constant.ChatMessageKindText,
		ChatSessionId: chatSession.Id,
		CreatedAt:     now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Create(ctx, &chatSession); err != nil {
		return nil, err
	}
	if err := uow.ChatMessageRepository().Create(ctx, &greeting); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	cs.sessionRepo.Save(cs.engine.NewSession(chatSession.Id.String(), userId.String()))

	return &dto.CreateSessionResponse{Id: chatSession.Id}, nil
}

// GetAllSessions retrieves all assessment sessions for a user
func (cs *chatService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetAllSessionsResponse, 0, len(chatSessions))
	for _, s := range chatSessions {
		response = append(response, &dto.GetAllSessionsResponse{
			Id:        s.Id,
			Title:     s.Title,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}

	return response, nil
}

// GetChatHistory retrieves the transcript for a session
func (cs *chatService) GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if _, err := cs.verifySession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	chatMessages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.GetChatHistoryResponse, 0, len(chatMessages))
	for _, msg := range chatMessages {
		resp = append(resp, &dto.GetChatHistoryResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Kind:      msg.Kind,
			Chat:      msg.Chat,
			Filename:  msg.Filename,
			CreatedAt: msg.CreatedAt,
		})
	}

	return resp, nil
}

// GetState returns the current assessment state snapshot
func (cs *chatService) GetState(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SessionStateResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if _, err := cs.verifySession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	mu := cs.lockSession(sessionId)
	defer mu.Unlock()

	sess := cs.loadOrSeedSession(sessionId, userId)
	snapshot := sess.Snapshot()

	return &dto.SessionStateResponse{State: snapshot}, nil
}

// SendMessage runs one text event through the engine
func (cs *chatService) SendMessage(ctx context.Context, userId uuid.UUID, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if _, err := cs.verifySession(ctx, uow, userId, request.ChatSessionId); err != nil {
		return nil, err
	}

	mu := cs.lockSession(request.ChatSessionId)
	defer mu.Unlock()

	sess := cs.loadOrSeedSession(request.ChatSessionId, userId)
	result := cs.engine.HandleText(ctx, sess, request.Text)

	return cs.finishEvent(ctx, uow, userId, request.ChatSessionId, sess, result)
}

// UploadScan runs one file-upload event through the engine
func (cs *chatService) UploadScan(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, filename string, data []byte) (*dto.SendMessageResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if _, err := cs.verifySession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	mu := cs.lockSession(sessionId)
	defer mu.Unlock()

	sess := cs.loadOrSeedSession(sessionId, userId)
	result := cs.engine.HandleUpload(ctx, sess, filename, data)

	return cs.finishEvent(ctx, uow, userId, sessionId, sess, result)
}

// DeleteSession removes a session, its transcript and its live state
func (cs *chatService) DeleteSession(ctx context.Context, userId uuid.UUID, request *dto.DeleteSessionRequest) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if _, err := cs.verifySession(ctx, uow, userId, request.ChatSessionId); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteAllBySessionId(ctx, request.ChatSessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, request.ChatSessionId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	cs.sessionRepo.Delete(request.ChatSessionId.String())
	cs.sessionLocks.Delete(request.ChatSessionId.String())
	return nil
}

func (cs *chatService) verifySession(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, sessionId uuid.UUID) (*entity.ChatSession, error) {
	sess, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("session not found or access denied")
	}
	return sess, nil
}

// loadOrSeedSession fetches the live state, rebuilding a blank one after
// a cache eviction or process restart. Scan and task progress is lost in
// that case; the transcript in Postgres survives.
func (cs *chatService) loadOrSeedSession(sessionId uuid.UUID, userId uuid.UUID) *store.Session {
	if sess, ok := cs.sessionRepo.Get(sessionId.String()); ok {
		return sess
	}
	sess := cs.engine.NewSession(sessionId.String(), userId.String())
	cs.sessionRepo.Save(sess)
	return sess
}

// finishEvent persists the transcript delta, refreshes the cached
// state, pushes the update to the user's other devices and publishes
// the verdict event when the cross-check fired.
func (cs *chatService) finishEvent(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, sessionId uuid.UUID, sess *store.Session, result *assess.EventResult) (*dto.SendMessageResponse, error) {
	if len(result.Messages) > 0 {
		now := time.Now()
		entities := make([]*entity.ChatMessage, len(result.Messages))
		for i, m := range result.Messages {
			var filename *string
			if m.Filename != "" {
				f := m.Filename
				filename = &f
			}
			entities[i] = &entity.ChatMessage{
				Id:            uuid.New(),
				Chat:          m.Content,
				Role:          m.Role,
				Kind:          m.Kind,
				Filename:      filename,
				ChatSessionId: sessionId,
				// Preserve ordering for equal-resolution timestamps
				CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
			}
		}

		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}
		defer uow.Rollback()

		if err := uow.ChatMessageRepository().CreateBatch(ctx, entities); err != nil {
			return nil, err
		}
		if err := uow.Commit(); err != nil {
			return nil, err
		}
	}

	cs.sessionRepo.Save(sess)

	if result.VerdictComputed {
		payload := dto.PublishVerdictMessage{
			ChatSessionId:  sessionId,
			UserId:         userId,
			Verdict:        string(result.Verdict),
			Metrics:        result.Metrics,
			ScanPath:       sess.ScanPath,
			TaskRecordPath: sess.TaskRecordPath,
		}
		payloadJson, err := json.Marshal(payload)
		if err != nil {
			cs.assessLogger.Printf("[ERROR] marshal verdict payload: %v", err)
		} else if err := cs.publisherService.Publish(ctx, payloadJson); err != nil {
			cs.assessLogger.Printf("[ERROR] publish verdict for session %s: %v", sessionId, err)
		}
	}

	messages := make([]dto.MessageDTO, 0, len(result.Messages))
	for _, m := range result.Messages {
		messages = append(messages, dto.MessageDTO{
			Role:     m.Role,
			Kind:     m.Kind,
			Content:  m.Content,
			Filename: m.Filename,
		})
	}

	resp := &dto.SendMessageResponse{
		ChatSessionId: sessionId,
		Messages:      messages,
		State:         sess.Snapshot(),
		ClearText:     result.ClearText,
		ClearUpload:   result.ClearUpload,
	}

	if cs.hub != nil {
		cs.hub.Send(userId, "session_update", resp)
	}

	return resp, nil
}
