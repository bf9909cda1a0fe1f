package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bruinrecruit/recruitment-service/internal/domain"
)

func TestPublishContinuesAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	var calls []string
	d.Subscribe(EventApplicationSubmitted, func(context.Context, Event) error {
		calls = append(calls, "first")
		return errors.New("boom")
	})
	d.Subscribe(EventApplicationSubmitted, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.SubjectID)
		return nil
	})
	d.Subscribe(EventSeasonCreated, func(context.Context, Event) error {
		calls = append(calls, "unrelated")
		return nil
	})

	actor := domain.Actor{ID: "u1", AccessType: domain.AccessTypeStandard}
	err := d.Publish(context.Background(), New(EventApplicationSubmitted, "app-1", actor, time.Now(), nil))

	assert.NoError(t, err)
	assert.Equal(t, []string{"first", "second:app-1"}, calls)
}

func TestNewEventCarriesActor(t *testing.T) {
	at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	e := New(EventSeasonDeleted, "s1", domain.Actor{ID: "a1", AccessType: domain.AccessTypeAdmin}, at, nil)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "a1", e.Actor.UserID)
	assert.Equal(t, domain.AccessTypeAdmin, e.Actor.AccessType)
	assert.Equal(t, at, e.Timestamp)
}
