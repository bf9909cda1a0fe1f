package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/bruinrecruit/recruitment-service/internal/config"
	"github.com/bruinrecruit/recruitment-service/internal/domain"
	"github.com/bruinrecruit/recruitment-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventApplicationSubmitted, n.handleApplicationSubmitted)
	n.dispatcher.Subscribe(events.EventApplicationStatusChanged, n.handleStatusChanged)
	n.dispatcher.Subscribe(events.EventAvailabilitySubmitted, n.handleAvailabilitySubmitted)
	n.dispatcher.Subscribe(events.EventGraderReviewAdded, n.handleGraderReviewAdded)
}

func (n *NotificationService) handleApplicationSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("ApplicationSubmitted", zap.String("application_id", event.SubjectID), zap.String("user_id", event.Actor.UserID))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

// handleStatusChanged emails the candidate on verdicts and interview
// scheduling; every change goes to the webhook.
func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("ApplicationStatusChanged", zap.String("application_id", event.SubjectID), zap.Any("payload", event.Payload))
	if payload, ok := event.Payload.(events.StatusChangedPayload); ok && candidateFacing(payload) {
		n.sendEmailNotificationStub(ctx, event)
	}
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAvailabilitySubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("AvailabilitySubmitted", zap.String("application_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleGraderReviewAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("GraderReviewAdded", zap.String("application_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func candidateFacing(p events.StatusChangedPayload) bool {
	return p.NewStatus.Terminal() || p.NewStatus == domain.StatusScheduleInterview
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("application_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("application_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
