package singleton

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localherald/core/internal/models"
	"github.com/localherald/core/internal/store"
	"github.com/localherald/core/internal/store/storetest"
)

func newTestService(t *testing.T) (*Service, *storetest.Server) {
	t.Helper()
	srv := storetest.New()
	t.Cleanup(srv.Close)
	return NewService(srv.Client()), srv
}

func TestGetMissingSingleton(t *testing.T) {
	svc, _ := newTestService(t)
	var hero models.HeroSection
	err := svc.Get(context.Background(), models.TypeHeroSection, &hero)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpsertCreatesThenPatches(t *testing.T) {
	svc, srv := newTestService(t)
	ctx := context.Background()

	var first models.HeroSection
	err := svc.Upsert(ctx, models.TypeHeroSection,
		map[string]interface{}{"headline": "big news"}, &first)
	require.NoError(t, err)
	assert.Equal(t, "big news", first.Headline)
	assert.Len(t, srv.Documents(models.TypeHeroSection), 1)

	var second models.HeroSection
	err = svc.Upsert(ctx, models.TypeHeroSection,
		map[string]interface{}{"headline": "bigger news", "link": "/story/x"}, &second)
	require.NoError(t, err)

	// Still one document, carrying the second payload.
	docs := srv.Documents(models.TypeHeroSection)
	require.Len(t, docs, 1)
	assert.Equal(t, "bigger news", second.Headline)
	assert.Equal(t, "/story/x", second.Link)
	assert.Equal(t, first.ID, second.ID)
}

func TestUpsertPatchesOldestWhenDuplicatesExist(t *testing.T) {
	svc, srv := newTestService(t)
	srv.Seed(map[string]interface{}{"_type": models.TypeSiteSettings, "siteTitle": "oldest"})
	srv.Seed(map[string]interface{}{"_type": models.TypeSiteSettings, "siteTitle": "newer"})

	var out models.SiteSettings
	err := svc.Upsert(context.Background(), models.TypeSiteSettings,
		map[string]interface{}{"tagline": "from the valley"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "oldest", out.SiteTitle)
	assert.Equal(t, "from the valley", out.Tagline)
}

func TestGetReadsOldest(t *testing.T) {
	svc, srv := newTestService(t)
	srv.Seed(map[string]interface{}{"_type": models.TypeLatestNews, "title": "first"})
	srv.Seed(map[string]interface{}{"_type": models.TypeLatestNews, "title": "second"})

	var out models.LatestNews
	require.NoError(t, svc.Get(context.Background(), models.TypeLatestNews, &out))
	assert.Equal(t, "first", out.Title)
}
