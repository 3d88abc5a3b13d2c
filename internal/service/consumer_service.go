package service

import (
	"context"
	"encoding/json"

	"case-knowledge-be/internal/dto"
	"case-knowledge-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub           *gochannel.GoChannel
	topicName        string
	ingestionService IIngestionService
	logger           logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	ingestionService IIngestionService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:           pubSub,
		topicName:        topicName,
		ingestionService: ingestionService,
		logger:           log,
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
	var payload dto.ProcessFileMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal message, dropping", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack invalid messages to prevent infinite retry.
		msg.Ack()
		return
	}

	cs.logger.Info("consumer", "processing case file", map[string]interface{}{
		"file_id":    payload.FileId,
		"project_id": payload.ProjectId,
	})

	outcome, err := cs.ingestionService.ProcessFile(ctx, payload.FileId, payload.ProjectId)
	if err != nil {
		// Pipeline failures are already recorded on the file row; a non-nil
		// error here means even that bookkeeping write failed.
		cs.logger.Error("consumer", "processing aborted", map[string]interface{}{
			"file_id": payload.FileId,
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}

	if outcome != nil {
		cs.logger.Info("consumer", "case file processed", map[string]interface{}{
			"file_id":        payload.FileId,
			"status":         outcome.Status,
			"chunks_created": outcome.ChunksCreated,
		})
	}
	msg.Ack()
}
