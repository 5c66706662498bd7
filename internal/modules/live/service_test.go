package live

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localherald/core/internal/config"
)

const liveBody = `<html><head>
<link rel="canonical" href="https://www.youtube.com/watch?v=dQw4w9WgXcQ">
</head><body>var ytInitialPlayerResponse = {"videoDetails":{"isLiveNow": true}};</body></html>`

const offAirBody = `<html><head>
<link rel="canonical" href="https://www.youtube.com/channel/UCabc123">
</head><body>no player here</body></html>`

// A finished broadcast keeps its watch canonical but isLiveNow is false.
const endedBody = `<html><head>
<link rel="canonical" href="https://www.youtube.com/watch?v=dQw4w9WgXcQ">
</head><body>{"isLiveNow": false}</body></html>`

func newProbeService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	upstream := httptest.NewServer(handler)
	t.Cleanup(upstream.Close)

	svc := NewService(config.LiveConfig{CacheTTLSeconds: 60}, nil)
	svc.base = upstream.URL
	return svc
}

func TestCheckReportsLiveBroadcast(t *testing.T) {
	var gotPath string
	svc := newProbeService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(liveBody))
	})

	st, err := svc.Check(context.Background(), "UCabc123")
	require.NoError(t, err)

	assert.Equal(t, "/channel/UCabc123/live", gotPath)
	assert.True(t, st.Live)
	assert.Equal(t, "dQw4w9WgXcQ", st.VideoID)
	assert.NotZero(t, st.CheckedAt)
}

func TestCheckReportsOffAir(t *testing.T) {
	svc := newProbeService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(offAirBody))
	})

	st, err := svc.Check(context.Background(), "UCabc123")
	require.NoError(t, err)
	assert.False(t, st.Live)
	assert.Empty(t, st.VideoID)
}

func TestCheckEndedBroadcastIsNotLive(t *testing.T) {
	svc := newProbeService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(endedBody))
	})

	st, err := svc.Check(context.Background(), "UCabc123")
	require.NoError(t, err)
	assert.False(t, st.Live)
}

func TestCheckHandleStylePath(t *testing.T) {
	var gotPath string
	svc := newProbeService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(offAirBody))
	})

	_, err := svc.Check(context.Background(), "@localherald")
	require.NoError(t, err)
	assert.Equal(t, "/@localherald/live", gotPath)
}

func TestCheckUpstreamError(t *testing.T) {
	svc := newProbeService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := svc.Check(context.Background(), "UCabc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
