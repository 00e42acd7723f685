package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"lacajita-admin/internal/config"
	"lacajita-admin/internal/idp"
)

const topic = "lacajita-admin"

const (
	eventTypeRoleUpdate      = "role_update"
	eventTypeUserRolesUpdate = "user_roles_update"
	eventTypeContentUpdate   = "content_update"
)

type roleUpdateEvent struct {
	Role       *idp.Role  `json:"role,omitempty"`
	ChangeType ChangeType `json:"changeType"`
	Timestamp  time.Time  `json:"timestamp"`
}

type userRolesUpdateEvent struct {
	UserID     string     `json:"userId"`
	RoleID     string     `json:"roleId"`
	ChangeType ChangeType `json:"changeType"`
	Timestamp  time.Time  `json:"timestamp"`
}

type contentUpdateEvent struct {
	Kind       string     `json:"kind"`
	ContentID  string     `json:"contentId"`
	ChangeType ChangeType `json:"changeType"`
	Timestamp  time.Time  `json:"timestamp"`
}

type kafkaNotifier struct {
	logger *zap.SugaredLogger
	w      *kafka.Writer
}

func NewKafkaNotifier(ctx context.Context, wg *sync.WaitGroup, logger *zap.SugaredLogger, cfg config.KafkaConfig) Notifier {
	w := &kafka.Writer{
		Addr:        kafka.TCP(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		Topic:       topic,
		Async:       true,
		Balancer:    &kafka.LeastBytes{},
		ErrorLogger: zap.NewStdLog(zap.L()),
	}

	go func() {
		defer wg.Done()
		<-ctx.Done()
		logger.Info("shutting down kafka writer")
		if err := w.Close(); err != nil {
			logger.Errorw("failed to close kafka writer", "error", err)
		}
	}()

	return &kafkaNotifier{
		logger: logger,
		w:      w,
	}
}

func (k *kafkaNotifier) RoleUpdate(ctx context.Context, role *idp.Role, changeType ChangeType) error {
	event := roleUpdateEvent{Role: role, ChangeType: changeType, Timestamp: time.Now().UTC()}
	if err := k.publishEvent(ctx, eventTypeRoleUpdate, event); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

func (k *kafkaNotifier) UserRolesUpdate(ctx context.Context, userID string, roleID string, changeType ChangeType) error {
	event := userRolesUpdateEvent{UserID: userID, RoleID: roleID, ChangeType: changeType, Timestamp: time.Now().UTC()}
	if err := k.publishEvent(ctx, eventTypeUserRolesUpdate, event); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

func (k *kafkaNotifier) ContentUpdate(ctx context.Context, kind string, contentID string, changeType ChangeType) error {
	event := contentUpdateEvent{Kind: kind, ContentID: contentID, ChangeType: changeType, Timestamp: time.Now().UTC()}
	if err := k.publishEvent(ctx, eventTypeContentUpdate, event); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

func (k *kafkaNotifier) publishEvent(ctx context.Context, eventType string, event any) error {
	bytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := k.w.WriteMessages(ctx, kafka.Message{
		Value:   bytes,
		Headers: []kafka.Header{{Key: "X-Event-Type", Value: []byte(eventType)}},
	}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
