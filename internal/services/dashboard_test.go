package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftregistry/internal/domain"
)

func TestDashboardService_BuildDashboard(t *testing.T) {
	ctx := context.Background()
	eventRepo := newFakeEventRepo()
	invRepo := newFakeInvitationRepo()
	giftRepo := newFakeGiftRepo()
	svc := NewDashboardService(eventRepo, invRepo, giftRepo, testTimeout)

	event := newTestEvent("creator-1")
	require.NoError(t, eventRepo.Create(ctx, event))

	invSvc := NewInvitationService(eventRepo, invRepo, &fakeEmailService{}, "http://localhost:3000", testLogger, testTimeout)
	_, _, err := invSvc.Invite(ctx, event.ID, "creator-1", []string{"ana@example.com", "bo@example.com"})
	require.NoError(t, err)
	for id, inv := range invRepo.byID {
		if inv.GuestEmail == "ana@example.com" {
			_, err := invSvc.Respond(ctx, id, "declined")
			require.NoError(t, err)
		}
	}

	giftSvc := NewGiftService(eventRepo, giftRepo, testTimeout)
	planned := newTestGift(event.ID)
	require.NoError(t, giftSvc.AddGift(ctx, planned, "guest-1"))
	purchased := newTestGift(event.ID)
	require.NoError(t, giftSvc.AddGift(ctx, purchased, "guest-2"))
	_, err = giftSvc.ConfirmGift(ctx, purchased.ID, "guest-2")
	require.NoError(t, err)

	t.Run("creator gets counts but never gift details", func(t *testing.T) {
		dash, err := svc.BuildDashboard(ctx, event.ID, "creator-1")
		require.NoError(t, err)
		assert.Equal(t, event.ID, dash.Event.ID)
		assert.Equal(t, 1, dash.RSVPs.Declined)
		assert.Equal(t, 1, dash.RSVPs.Pending)
		assert.Equal(t, 2, dash.RSVPs.TotalInvited)
		assert.Equal(t, 1, dash.Gifts.Planned)
		assert.Equal(t, 1, dash.Gifts.Purchased)
		assert.Equal(t, 0, dash.Gifts.Cancelled)
	})

	t.Run("non-creator is refused", func(t *testing.T) {
		_, err := svc.BuildDashboard(ctx, event.ID, "guest-1")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := svc.BuildDashboard(ctx, "missing", "creator-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
