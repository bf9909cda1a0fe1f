package worker

import (
	"context"

	"github.com/bruinrecruit/recruitment-service/internal/events"
	"github.com/bruinrecruit/recruitment-service/internal/observability"
	"github.com/bruinrecruit/recruitment-service/internal/service"
)

// StartNotificationWorker subscribes the notifier and counts every published
// event type on metrics.
func StartNotificationWorker(dispatcher events.Dispatcher, notifier *service.NotificationService, metrics *observability.Metrics) {
	if dispatcher == nil {
		return
	}
	if notifier != nil {
		notifier.RegisterHandlers()
	}
	for _, eventType := range events.AllTypes {
		name := string(eventType)
		dispatcher.Subscribe(eventType, func(context.Context, events.Event) error {
			metrics.RecordEvent(name)
			return nil
		})
	}
}
