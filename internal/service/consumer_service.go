package service

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"ergo-assist-be/internal/dto"
	"ergo-assist-be/internal/entity"
	"ergo-assist-be/internal/pkg/mailer"
	"ergo-assist-be/internal/repository/specification"
	"ergo-assist-be/internal/repository/unitofwork"
	internalWS "ergo-assist-be/internal/websocket"
	"ergo-assist-be/pkg/events"
	pktNats "ergo-assist-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService turns completed cross-checks into durable audit rows,
// live websocket pushes and outbound notifications.
type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	uowFactory    unitofwork.RepositoryFactory
	hub           *internalWS.Hub
	emailService  mailer.IEmailService
	natsPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	hub *internalWS.Hub,
	emailService mailer.IEmailService,
	natsPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		uowFactory:    uowFactory,
		hub:           hub,
		emailService:  emailService,
		natsPublisher: natsPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishVerdictMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal verdict message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Recording assessment for session %s (verdict=%s)", payload.ChatSessionId, payload.Verdict)

	// The task record lives on disk next to the scan; an unreadable file
	// degrades the audit row, it does not block it.
	var taskRecord json.RawMessage
	if payload.TaskRecordPath != "" {
		if raw, err := os.ReadFile(payload.TaskRecordPath); err == nil {
			taskRecord = raw
		} else {
			log.Printf("[WARN] Task record %s unreadable: %v", payload.TaskRecordPath, err)
		}
	}

	assessment := &entity.Assessment{
		Id:            uuid.New(),
		ChatSessionId: payload.ChatSessionId,
		UserId:        payload.UserId,
		Verdict:       payload.Verdict,
		Metrics:       payload.Metrics,
		TaskRecord:    taskRecord,
		ScanPath:      payload.ScanPath,
		CreatedAt:     time.Now(),
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AssessmentRepository().Create(ctx, assessment); err != nil {
		log.Printf("[ERROR] Failed to persist assessment for session %s: %v", payload.ChatSessionId, err)
		msg.Nack() // Retriable
		return
	}

	if cs.hub != nil {
		cs.hub.Send(payload.UserId, "assessment_complete", map[string]interface{}{
			"chat_session_id": payload.ChatSessionId,
			"verdict":         payload.Verdict,
			"metrics":         payload.Metrics,
		})
	}

	if cs.emailService != nil {
		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: payload.UserId})
		if err != nil || user == nil {
			log.Printf("[WARN] Skipping report email, user %s not found", payload.UserId)
		} else if err := cs.emailService.SendAssessmentReport(user.Email, payload.ChatSessionId.String(), payload.Verdict, payload.Metrics); err != nil {
			log.Printf("[WARN] Failed to email assessment report to %s: %v", user.Email, err)
		}
	}

	if cs.natsPublisher != nil {
		evt := events.NewVerdictComputedEvent(
			payload.ChatSessionId.String(),
			payload.UserId.String(),
			payload.Verdict,
			payload.Metrics,
		)
		if err := cs.natsPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to republish verdict event: %v", err)
		}
	}

	msg.Ack()
}
