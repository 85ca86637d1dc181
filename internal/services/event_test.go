package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftregistry/internal/domain"
)

func newTestEvent(creatorID string) *domain.Event {
	return domain.NewEvent(
		"Nana's 80th", time.Now().Add(30*24*time.Hour), creatorID,
		"Surprise birthday party", "The old barn", domain.EventTypeBirthday,
		time.Now(), time.Now(),
	)
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns a key and sends the creation email", func(t *testing.T) {
		repo := newFakeEventRepo()
		emails := &fakeEmailService{}
		svc := NewEventService(repo, emails, testLogger, testTimeout)

		event := newTestEvent("creator-1")
		require.NoError(t, svc.CreateEvent(ctx, event, "creator@example.com"))

		require.NotEmpty(t, event.ID)
		require.Len(t, event.EventKey, 10)
		for _, r := range event.EventKey {
			assert.True(t, (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'), "key must be lowercase alphanumeric, got %q", event.EventKey)
		}
		require.Len(t, emails.eventCreated, 1)
		assert.Equal(t, "creator@example.com", emails.eventCreated[0].Email)
		assert.Equal(t, event.EventKey, emails.eventCreated[0].EventKey)
	})

	t.Run("retries on key collision", func(t *testing.T) {
		repo := newFakeEventRepo()
		repo.conflictsLeft = 2
		svc := NewEventService(repo, &fakeEmailService{}, testLogger, testTimeout)

		event := newTestEvent("creator-1")
		require.NoError(t, svc.CreateEvent(ctx, event, ""))
		require.NotEmpty(t, event.ID)
	})

	t.Run("gives up after repeated collisions", func(t *testing.T) {
		repo := newFakeEventRepo()
		repo.conflictsLeft = 10
		svc := NewEventService(repo, &fakeEmailService{}, testLogger, testTimeout)

		event := newTestEvent("creator-1")
		err := svc.CreateEvent(ctx, event, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unique event key")
	})

	t.Run("email failure does not fail creation", func(t *testing.T) {
		repo := newFakeEventRepo()
		emails := &fakeEmailService{sendErr: assert.AnError}
		svc := NewEventService(repo, emails, testLogger, testTimeout)

		event := newTestEvent("creator-1")
		require.NoError(t, svc.CreateEvent(ctx, event, "creator@example.com"))
		require.NotEmpty(t, event.ID)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo(), &fakeEmailService{}, testLogger, testTimeout)

		event := newTestEvent("creator-1")
		event.Name = "  "
		err := svc.CreateEvent(ctx, event, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		event = newTestEvent("creator-1")
		event.Date = time.Time{}
		err = svc.CreateEvent(ctx, event, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("defaults type to OTHER", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo(), &fakeEmailService{}, testLogger, testTimeout)
		event := newTestEvent("creator-1")
		event.Type = ""
		require.NoError(t, svc.CreateEvent(ctx, event, ""))
		assert.Equal(t, domain.EventTypeOther, event.Type)
	})
}

func TestEventService_GetEventByKey(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewEventService(repo, &fakeEmailService{}, testLogger, testTimeout)

	event := newTestEvent("creator-1")
	require.NoError(t, svc.CreateEvent(ctx, event, ""))

	t.Run("key is case and whitespace tolerant", func(t *testing.T) {
		got, err := svc.GetEventByKey(ctx, "  "+event.EventKey+" ")
		require.NoError(t, err)
		assert.Equal(t, event.ID, got.ID)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := svc.GetEventByKey(ctx, "nosuchkey0")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := svc.GetEventByKey(ctx, "   ")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewEventService(repo, &fakeEmailService{}, testLogger, testTimeout)

	event := newTestEvent("creator-1")
	require.NoError(t, svc.CreateEvent(ctx, event, ""))

	t.Run("creator updates name", func(t *testing.T) {
		name := "Nana's 81st"
		got, err := svc.UpdateEvent(ctx, event.ID, "creator-1", &name, nil, nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "Nana's 81st", got.Name)
	})

	t.Run("non-creator is refused", func(t *testing.T) {
		name := "hijacked"
		_, err := svc.UpdateEvent(ctx, event.ID, "intruder", &name, nil, nil, nil, nil)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := svc.UpdateEvent(ctx, "missing", "creator-1", nil, nil, nil, nil, nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewEventService(repo, &fakeEmailService{}, testLogger, testTimeout)

	event := newTestEvent("creator-1")
	require.NoError(t, svc.CreateEvent(ctx, event, ""))

	require.ErrorIs(t, svc.DeleteEvent(ctx, event.ID, "intruder"), domain.ErrForbidden)
	require.NoError(t, svc.DeleteEvent(ctx, event.ID, "creator-1"))
	require.ErrorIs(t, svc.DeleteEvent(ctx, event.ID, "creator-1"), domain.ErrNotFound)
}

func TestEventService_Listings(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewEventService(repo, &fakeEmailService{}, testLogger, testTimeout)

	birthday := newTestEvent("creator-1")
	require.NoError(t, svc.CreateEvent(ctx, birthday, ""))

	wedding := newTestEvent("creator-2")
	wedding.Name = "June wedding"
	wedding.Type = domain.EventTypeWedding
	wedding.Date = time.Now().Add(-24 * time.Hour) // already happened
	require.NoError(t, svc.CreateEvent(ctx, wedding, ""))

	t.Run("public lists everything", func(t *testing.T) {
		events, err := svc.ListPublicEvents(ctx)
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("upcoming excludes past events", func(t *testing.T) {
		events, err := svc.ListUpcomingEvents(ctx)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, birthday.ID, events[0].ID)
	})

	t.Run("by type", func(t *testing.T) {
		events, err := svc.ListEventsByType(ctx, domain.EventTypeWedding)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, wedding.ID, events[0].ID)
	})

	t.Run("by creator", func(t *testing.T) {
		events, err := svc.ListEventsByCreator(ctx, "creator-2")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, wedding.ID, events[0].ID)
	})

	t.Run("search matches name", func(t *testing.T) {
		events, err := svc.SearchEvents(ctx, "wedding")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, wedding.ID, events[0].ID)
	})
}
