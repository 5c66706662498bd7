package ads

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localherald/core/internal/models"
	"github.com/localherald/core/internal/store/storetest"
)

func newTestService(t *testing.T) (*Service, *storetest.Server) {
	t.Helper()
	srv := storetest.New()
	t.Cleanup(srv.Close)
	return NewService(srv.Client()), srv
}

func boolPtr(v bool) *bool { return &v }

func seedAd(srv *storetest.Server, title, position string, active *bool, start, end *time.Time) {
	srv.Seed(models.Advertisement{
		Base:      models.Base{Type: models.TypeAd},
		Title:     title,
		Position:  position,
		Active:    active,
		StartDate: start,
		EndDate:   end,
	})
}

func TestListByPositionFiltersSlotAndWindow(t *testing.T) {
	svc, srv := newTestService(t)
	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	seedAd(srv, "runnable", models.AdPositionTop, nil, &yesterday, &tomorrow)
	seedAd(srv, "open-ended", models.AdPositionTop, boolPtr(true), nil, nil)
	seedAd(srv, "not-started", models.AdPositionTop, nil, &tomorrow, nil)
	seedAd(srv, "ended", models.AdPositionTop, nil, nil, &yesterday)
	seedAd(srv, "paused", models.AdPositionTop, boolPtr(false), nil, nil)
	seedAd(srv, "other-slot", models.AdPositionSidebar, nil, nil, nil)

	items, err := svc.ListByPosition(context.Background(), models.AdPositionTop)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, ad := range items {
		assert.Contains(t, []string{"runnable", "open-ended"}, ad.Title)
	}
}

func TestListByPositionRejectsUnknownSlot(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.ListByPosition(context.Background(), "popup")
	assert.ErrorIs(t, err, errInvalidPosition)
}

func TestListAllIncludesEverything(t *testing.T) {
	svc, srv := newTestService(t)
	seedAd(srv, "paused", models.AdPositionTop, boolPtr(false), nil, nil)
	seedAd(srv, "running", models.AdPositionFooter, nil, nil, nil)

	items, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCreateValidatesPosition(t *testing.T) {
	svc, srv := newTestService(t)
	_, err := svc.Create(context.Background(), &CreateAdDTO{Position: "nowhere"})
	assert.ErrorIs(t, err, errInvalidPosition)
	assert.Zero(t, srv.MutateCalls())
}

func TestUpdateRequiresID(t *testing.T) {
	svc, srv := newTestService(t)
	link := "https://example.com"
	_, err := svc.Update(context.Background(), &UpdateAdDTO{Link: &link})
	assert.ErrorIs(t, err, errMissingID)
	assert.Zero(t, srv.MutateCalls())
}
