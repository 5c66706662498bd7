package video

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localherald/core/internal/store/storetest"
)

func newTestService(t *testing.T) (*Service, *storetest.Server) {
	t.Helper()
	srv := storetest.New()
	t.Cleanup(srv.Close)
	return NewService(srv.Client()), srv
}

func TestListOrdersAndFilters(t *testing.T) {
	svc, srv := newTestService(t)
	srv.Seed(map[string]interface{}{"_type": "videoGallery", "title": "Harvest festival", "videoUrl": "https://youtu.be/a", "order": 2})
	srv.Seed(map[string]interface{}{"_type": "videoGallery", "title": "Council meeting", "videoUrl": "https://youtu.be/b", "order": 1})
	srv.Seed(map[string]interface{}{"_type": "videoGallery", "title": "Unlisted", "videoUrl": "https://youtu.be/c", "order": 1, "active": false})

	got, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Council meeting", got[0].Title)
	assert.Equal(t, "Harvest festival", got[1].Title)

	all, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOrderTiesNewestFirst(t *testing.T) {
	svc, srv := newTestService(t)
	srv.Seed(map[string]interface{}{"_type": "videoGallery", "title": "Older", "videoUrl": "https://youtu.be/a", "order": 1})
	srv.Seed(map[string]interface{}{"_type": "videoGallery", "title": "Newer", "videoUrl": "https://youtu.be/b", "order": 1})

	got, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Newer", got[0].Title)
}

func TestCreateUpdateDelete(t *testing.T) {
	svc, srv := newTestService(t)

	created, err := svc.Create(context.Background(), &CreateVideoDTO{Title: "Flood relief", VideoURL: "https://youtu.be/x"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	title := "Flood relief update"
	updated, err := svc.Update(context.Background(), &UpdateVideoDTO{ID: created.ID, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "https://youtu.be/x", updated.VideoURL)

	_, err = svc.Update(context.Background(), &UpdateVideoDTO{})
	assert.ErrorIs(t, err, errMissingID)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, srv.Documents("videoGallery"))
}
