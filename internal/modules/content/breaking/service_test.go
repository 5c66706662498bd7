package breaking

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

func TestListOrdersByPriorityThenNewest(t *testing.T) {
	svc, srv := newTestService(t)
	// Seed order doubles as creation order: "p1-old" is created before
	// "p1-new", so on equal priority the newer one must come first.
	srv.Seed(models.BreakingNewsItem{Base: models.Base{Type: models.TypeBreakingNews}, Title: "p2", Priority: 2})
	srv.Seed(models.BreakingNewsItem{Base: models.Base{Type: models.TypeBreakingNews}, Title: "p1-old", Priority: 1})
	srv.Seed(models.BreakingNewsItem{Base: models.Base{Type: models.TypeBreakingNews}, Title: "p3", Priority: 3})
	srv.Seed(models.BreakingNewsItem{Base: models.Base{Type: models.TypeBreakingNews}, Title: "p1-new", Priority: 1})

	items, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, items, 4)

	titles := []string{items[0].Title, items[1].Title, items[2].Title, items[3].Title}
	assert.Equal(t, []string{"p1-new", "p1-old", "p2", "p3"}, titles)
}

func TestListHidesInactiveAndExpired(t *testing.T) {
	svc, srv := newTestService(t)
	expired := time.Now().Add(-time.Hour)
	upcoming := time.Now().Add(time.Hour)

	srv.Seed(models.BreakingNewsItem{Base: models.Base{Type: models.TypeBreakingNews}, Title: "visible"})
	srv.Seed(models.BreakingNewsItem{Base: models.Base{Type: models.TypeBreakingNews}, Title: "inactive", Active: boolPtr(false)})
	srv.Seed(models.BreakingNewsItem{Base: models.Base{Type: models.TypeBreakingNews}, Title: "expired", ExpiresAt: &expired})
	srv.Seed(models.BreakingNewsItem{Base: models.Base{Type: models.TypeBreakingNews}, Title: "still-good", ExpiresAt: &upcoming})

	items, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		assert.Contains(t, []string{"visible", "still-good"}, it.Title)
	}

	all, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestUpdateRequiresID(t *testing.T) {
	svc, srv := newTestService(t)
	title := "x"
	_, err := svc.Update(context.Background(), &UpdateItemDTO{Title: &title})
	assert.ErrorIs(t, err, errMissingID)
	assert.Zero(t, srv.MutateCalls())
}

func TestCreateDefaultsToVisible(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create(context.Background(), &CreateItemDTO{Title: "flash", Priority: 1})
	require.NoError(t, err)
	assert.True(t, created.Visible(time.Now()))
}
