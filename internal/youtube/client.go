// Package youtube wraps the YouTube Data API v3 calls needed to enumerate a
// channel's uploads and playlists.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"ytcatalog/internal/model"
)

// Client issues blocking, sequential requests against the Data API.
type Client struct {
	svc     *youtube.Service
	limiter *rate.Limiter
}

type clientConfig struct {
	endpoint   string
	httpClient *http.Client
	maxQPS     float64
}

// Option configures a Client.
type Option func(*clientConfig)

// WithEndpoint overrides the API base URL (used by tests).
func WithEndpoint(u string) Option {
	return func(c *clientConfig) {
		c.endpoint = u
	}
}

// WithHTTPClient injects the HTTP client. Authentication options are ignored
// by the API library when a client is supplied.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithMaxQPS paces requests to at most q per second. q <= 0 disables pacing.
func WithMaxQPS(q float64) Option {
	return func(c *clientConfig) {
		c.maxQPS = q
	}
}

// New creates a Client authenticated with an API key.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("api key required")
	}
	var cfg clientConfig
	for _, o := range opts {
		o(&cfg)
	}

	svcOpts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if cfg.endpoint != "" {
		svcOpts = append(svcOpts, option.WithEndpoint(cfg.endpoint))
	}
	if cfg.httpClient != nil {
		svcOpts = append(svcOpts, option.WithHTTPClient(cfg.httpClient))
	}
	svc, err := youtube.NewService(ctx, svcOpts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	c := &Client{svc: svc}
	if cfg.maxQPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.maxQPS), 1)
	}
	return c, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// SearchChannelID resolves a handle, custom name or username to a channel ID
// by taking the first channel-type search hit.
func (c *Client) SearchChannelID(ctx context.Context, query string) (string, error) {
	const op = "search.list"
	if err := c.wait(ctx); err != nil {
		return "", classify(op, err)
	}
	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", classify(op, err)
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("%w: no channel matches %q", ErrResolution, query)
	}

	hit := resp.Items[0]
	switch {
	case hit.Snippet != nil && hit.Snippet.ChannelId != "":
		return hit.Snippet.ChannelId, nil
	case hit.Id != nil && hit.Id.ChannelId != "":
		return hit.Id.ChannelId, nil
	default:
		return "", malformed(op, "search hit for %q has no channel ID", query)
	}
}

// Channel fetches a channel's title and related (system-managed) playlists.
func (c *Client) Channel(ctx context.Context, id string) (model.Channel, error) {
	const op = "channels.list"
	if err := c.wait(ctx); err != nil {
		return model.Channel{}, classify(op, err)
	}
	resp, err := c.svc.Channels.List([]string{"contentDetails", "snippet"}).
		Id(id).
		Context(ctx).
		Do()
	if err != nil {
		return model.Channel{}, classify(op, err)
	}
	if len(resp.Items) == 0 {
		return model.Channel{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	item := resp.Items[0]
	if item.Snippet == nil {
		return model.Channel{}, malformed(op, "channel %s has no snippet", id)
	}
	if item.ContentDetails == nil || item.ContentDetails.RelatedPlaylists == nil {
		return model.Channel{}, malformed(op, "channel %s has no related playlists", id)
	}

	rp := item.ContentDetails.RelatedPlaylists
	related := make(map[string]string, 5)
	for role, pid := range map[string]string{
		model.RoleUploads:      rp.Uploads,
		model.RoleLikes:        rp.Likes,
		model.RoleFavorites:    rp.Favorites,
		model.RoleWatchHistory: rp.WatchHistory,
		model.RoleWatchLater:   rp.WatchLater,
	} {
		if pid != "" {
			related[role] = pid
		}
	}
	if related[model.RoleUploads] == "" {
		return model.Channel{}, malformed(op, "channel %s has no uploads playlist", id)
	}

	chID := item.Id
	if chID == "" {
		chID = id
	}
	return model.Channel{ID: chID, Title: item.Snippet.Title, Related: related}, nil
}

// PlaylistPages returns a page fetcher over the playlists owned by a channel.
func (c *Client) PlaylistPages(channelID string) FetchPage[model.PlaylistRef] {
	const op = "playlists.list"
	return func(ctx context.Context, token string) (Page[model.PlaylistRef], error) {
		if err := c.wait(ctx); err != nil {
			return Page[model.PlaylistRef]{}, classify(op, err)
		}
		call := c.svc.Playlists.List([]string{"snippet"}).
			ChannelId(channelID).
			MaxResults(model.PageSize).
			Context(ctx)
		if token != "" {
			call = call.PageToken(token)
		}
		resp, err := call.Do()
		if err != nil {
			return Page[model.PlaylistRef]{}, classify(op, err)
		}

		page := Page[model.PlaylistRef]{NextToken: resp.NextPageToken}
		for i, item := range resp.Items {
			if item.Id == "" || item.Snippet == nil {
				return Page[model.PlaylistRef]{}, malformed(op, "playlist %d of channel %s lacks id or snippet", i, channelID)
			}
			page.Items = append(page.Items, model.PlaylistRef{ID: item.Id, Title: item.Snippet.Title})
		}
		log.WithFields(log.Fields{"channel": channelID, "items": len(page.Items), "more": page.NextToken != ""}).
			Debug("fetched playlists page")
		return page, nil
	}
}

// PlaylistItemPages returns a page fetcher over a playlist's membership.
func (c *Client) PlaylistItemPages(playlistID string) FetchPage[model.VideoRecord] {
	const op = "playlistItems.list"
	return func(ctx context.Context, token string) (Page[model.VideoRecord], error) {
		if err := c.wait(ctx); err != nil {
			return Page[model.VideoRecord]{}, classify(op, err)
		}
		call := c.svc.PlaylistItems.List([]string{"snippet", "contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(model.PageSize).
			Context(ctx)
		if token != "" {
			call = call.PageToken(token)
		}
		resp, err := call.Do()
		if err != nil {
			return Page[model.VideoRecord]{}, classify(op, err)
		}

		page := Page[model.VideoRecord]{NextToken: resp.NextPageToken}
		for i, item := range resp.Items {
			v, err := videoRecord(item)
			if err != nil {
				return Page[model.VideoRecord]{}, malformed(op, "item %d of playlist %s: %v", i, playlistID, err)
			}
			page.Items = append(page.Items, v)
		}
		log.WithFields(log.Fields{"playlist": playlistID, "items": len(page.Items), "more": page.NextToken != ""}).
			Debug("fetched playlist items page")
		return page, nil
	}
}

// Playlists lists every playlist owned by a channel.
func (c *Client) Playlists(ctx context.Context, channelID string) ([]model.PlaylistRef, error) {
	return Collect(ctx, c.PlaylistPages(channelID))
}

// PlaylistItems lists every video in a playlist, in playlist order.
func (c *Client) PlaylistItems(ctx context.Context, playlistID string) ([]model.VideoRecord, error) {
	return Collect(ctx, c.PlaylistItemPages(playlistID))
}

func videoRecord(item *youtube.PlaylistItem) (model.VideoRecord, error) {
	if item.ContentDetails == nil || item.ContentDetails.VideoId == "" {
		return model.VideoRecord{}, errors.New("missing contentDetails.videoId")
	}
	if item.Snippet == nil {
		return model.VideoRecord{}, errors.New("missing snippet")
	}
	published, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
	if err != nil {
		return model.VideoRecord{}, fmt.Errorf("snippet.publishedAt: %w", err)
	}
	return model.NewVideoRecord(item.ContentDetails.VideoId, item.Snippet.Title, published), nil
}
