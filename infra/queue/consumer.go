package queue

import (
	"context"
	"errors"
	"io"

	"github.com/SundayYogurt/claim_service/internal/interfaces"
	"github.com/SundayYogurt/claim_service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type KafkaConsumer struct {
	Reader      *kafka.Reader
	Handler     interfaces.ConsumerHandler
	ServiceName string
}

func NewKafkaConsumer(broker, topic, groupID string, handler interfaces.ConsumerHandler) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{broker},
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6, //10MB
	})

	return &KafkaConsumer{
		Reader:      reader,
		Handler:     handler,
		ServiceName: "claim-svc",
	}
}

// Listen reads until ctx is cancelled. Handler errors are logged and the
// message is still committed.
func (kc *KafkaConsumer) Listen(ctx context.Context) error {
	defer kc.Reader.Close()

	for {
		msg, err := kc.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			logger.Error("error on reading message", zap.Error(err))
			continue
		}

		if err := kc.Handler.HandleMessage(string(msg.Value)); err != nil {
			logger.Warn("error on processing message",
				zap.String("service", kc.ServiceName),
				zap.ByteString("key", msg.Key),
				zap.Error(err),
			)
		}
	}
}
