package live

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/localherald/core/internal/config"
	"github.com/localherald/core/internal/pkg/redis"
)

// Status is the probe result for one channel.
type Status struct {
	Live      bool   `json:"live"`
	VideoID   string `json:"videoId,omitempty"`
	CheckedAt int64  `json:"checkedAt"`
}

type Service struct {
	http *resty.Client
	rdb  *redis.Client
	ttl  time.Duration
	base string
}

func NewService(cfg config.LiveConfig, rdb *redis.Client) *Service {
	client := resty.New().
		SetTimeout(10*time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (compatible; localherald/1.0)").
		SetHeader("Accept-Language", "en")
	return &Service{
		http: client,
		rdb:  rdb,
		ttl:  time.Duration(cfg.CacheTTLSeconds) * time.Second,
		base: "https://www.youtube.com",
	}
}

const cacheKeyPrefix = "lh:live-status:"

var (
	canonicalRe = regexp.MustCompile(`<link rel="canonical" href="https://www\.youtube\.com/watch\?v=([\w-]{6,20})"`)
	isLiveRe    = regexp.MustCompile(`"isLiveNow"\s*:\s*true`)
)

// Check probes whether the channel broadcasts live right now. Results
// are cached so a burst of readers produces one upstream request per
// TTL window.
func (s *Service) Check(ctx context.Context, channelID string) (*Status, error) {
	key := cacheKeyPrefix + channelID
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key); err == nil && cached != "" {
			var st Status
			if json.Unmarshal([]byte(cached), &st) == nil {
				return &st, nil
			}
		}
	}

	st, err := s.probe(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(st); err == nil {
			_ = s.rdb.Set(ctx, key, string(raw), s.ttl)
		}
	}
	return st, nil
}

// probe fetches the channel's /live page. When the channel is off air
// YouTube serves the channel page without a watch canonical; when a
// stream is up the canonical points at the watch URL and the player
// payload carries isLiveNow.
func (s *Service) probe(ctx context.Context, channelID string) (*Status, error) {
	resp, err := s.http.R().
		SetContext(ctx).
		Get(s.liveURL(channelID))
	if err != nil {
		return nil, fmt.Errorf("live: probe channel %s: %w", channelID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("live: probe channel %s: status %d", channelID, resp.StatusCode())
	}

	body := resp.String()
	st := &Status{CheckedAt: time.Now().UnixMilli()}
	if m := canonicalRe.FindStringSubmatch(body); m != nil && isLiveRe.MatchString(body) {
		st.Live = true
		st.VideoID = m[1]
	}
	return st, nil
}

func (s *Service) liveURL(channelID string) string {
	if strings.HasPrefix(channelID, "@") {
		return s.base + "/" + channelID + "/live"
	}
	return s.base + "/channel/" + channelID + "/live"
}
