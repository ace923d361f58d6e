package main

import (
	"context"
	"encoding/json"
	"errors"
	"os/signal"
	"syscall"

	"github.com/SundayYogurt/claim_service/config"
	"github.com/SundayYogurt/claim_service/infra/queue"
	"github.com/SundayYogurt/claim_service/internal/dto"
	"github.com/SundayYogurt/claim_service/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// eventLogger writes every submission event to the service log.
type eventLogger struct{}

func (eventLogger) HandleMessage(message string) error {
	var evt dto.SubmissionEvent
	if err := json.Unmarshal([]byte(message), &evt); err != nil {
		return err
	}
	logger.Info("submission event",
		zap.String("type", evt.Type),
		zap.String("submission_id", evt.SubmissionID),
		zap.String("method", evt.Method),
		zap.String("status", evt.Status),
		zap.String("at", evt.At),
	)
	return nil
}

func eventsCmd() *cobra.Command {
	var groupID string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Follow submission events on the Kafka topic and log them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if err := logger.Init(cfg.Env, cfg.LogFile); err != nil {
				return err
			}
			if cfg.KafkaBroker == "" {
				return errors.New("KAFKA_BROKER is not set")
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Info("following events", zap.String("broker", cfg.KafkaBroker), zap.String("topic", cfg.KafkaTopic))
			return queue.NewKafkaConsumer(cfg.KafkaBroker, cfg.KafkaTopic, groupID, eventLogger{}).Listen(ctx)
		},
	}

	cmd.Flags().StringVar(&groupID, "group", "claim-svc-events", "kafka consumer group")
	return cmd
}
