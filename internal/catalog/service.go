// Package catalog orchestrates a channel export: resolve → channel metadata →
// custom playlist index → uploads → join → CSV and ledger.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"ytcatalog/internal/export"
	"ytcatalog/internal/ledger"
	"ytcatalog/internal/model"
	"ytcatalog/internal/progress"
	"ytcatalog/internal/util"
	"ytcatalog/internal/youtube"
)

// API is the remote surface the catalog needs. *youtube.Client implements it.
type API interface {
	SearchChannelID(ctx context.Context, query string) (string, error)
	Channel(ctx context.Context, id string) (model.Channel, error)
	PlaylistPages(channelID string) youtube.FetchPage[model.PlaylistRef]
	PlaylistItemPages(playlistID string) youtube.FetchPage[model.VideoRecord]
}

// Service runs channel exports against an API.
type Service struct {
	api      API
	opts     model.Options
	reporter progress.Reporter
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithAPI sets the remote API implementation.
func WithAPI(api API) Option {
	return func(s *Service) {
		s.api = api
	}
}

// WithOptions sets the run options.
func WithOptions(o model.Options) Option {
	return func(s *Service) {
		s.opts = o
	}
}

// WithReporter attaches a progress reporter.
func WithReporter(rp progress.Reporter) Option {
	return func(s *Service) {
		s.reporter = rp
	}
}

// WithClock overrides the clock used for ledger dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService constructs a Service with the provided options.
func NewService(opts ...Option) *Service {
	s := &Service{opts: model.DefaultOptions()}
	for _, o := range opts {
		o(s)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.opts.DataDir == "" {
		s.opts.DataDir = model.DefaultOptions().DataDir
	}
	return s
}

// Result is the merged outcome of Run.
type Result struct {
	Ref             model.ChannelRef
	Channel         model.Channel
	Videos          []model.VideoRecord
	CustomPlaylists []model.PlaylistRef
	Skipped         []SkippedPlaylist
	Merged          bool
}

// Exported is the outcome of Export.
type Exported struct {
	Result
	OutputPath string
	Bytes      int64
	LedgerPath string
	LedgerErr  error // non-fatal
}

// Resolve parses raw, looks the channel up if needed and fetches its metadata.
func (s *Service) Resolve(ctx context.Context, raw string) (model.ChannelRef, model.Channel, error) {
	if s.api == nil {
		return model.ChannelRef{}, model.Channel{}, errors.New("catalog: API is required")
	}
	ref, err := util.ParseChannelRef(raw)
	if err != nil {
		return ref, model.Channel{}, err
	}

	channelID := ref.Value
	if ref.NeedsLookup() {
		s.update(progress.StageResolving, 0, 0, fmt.Sprintf("Resolving %s: %s", ref.Kind, ref.Value))
		channelID, err = s.api.SearchChannelID(ctx, ref.Value)
		if err != nil {
			return ref, model.Channel{}, fmt.Errorf("resolve %s %q: %w", ref.Kind, ref.Value, err)
		}
	}
	s.update(progress.StageChannel, 0, 0, "Channel ID: "+channelID)

	ch, err := s.api.Channel(ctx, channelID)
	if err != nil {
		return ref, model.Channel{}, fmt.Errorf("fetch channel %s: %w", channelID, err)
	}
	s.update(progress.StageChannel, 0, 0, fmt.Sprintf("Channel name: %s (uploads %s)", ch.Title, ch.Uploads()))
	return ref, ch, nil
}

// CustomPlaylistsOf lists the channel's playlists minus the system-managed ones.
func (s *Service) CustomPlaylistsOf(ctx context.Context, ch model.Channel) ([]model.PlaylistRef, error) {
	s.update(progress.StagePlaylists, 0, 0, "Fetching playlists...")
	all, err := youtube.Collect(ctx, s.api.PlaylistPages(ch.ID))
	if err != nil {
		return nil, err
	}
	customs := CustomPlaylists(all, ch)
	s.update(progress.StagePlaylists, len(customs), 0, fmt.Sprintf("Found %d custom playlists", len(customs)))
	return customs, nil
}

// Run fetches the channel's uploads and, when enabled, merges custom playlist
// membership into them. Only an uploads failure is fatal once the channel is known.
func (s *Service) Run(ctx context.Context, raw string) (Result, error) {
	var res Result
	ref, ch, err := s.Resolve(ctx, raw)
	res.Ref = ref
	if err != nil {
		return res, err
	}
	res.Channel = ch

	var index model.PlaylistIndex
	if s.opts.IncludePlaylists {
		res.Merged = true
		customs, err := s.CustomPlaylistsOf(ctx, ch)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			s.warn(fmt.Sprintf("could not fetch playlists, continuing without them: %v", err))
		}
		res.CustomPlaylists = customs

		if len(customs) > 0 {
			s.update(progress.StageMapping, 0, len(customs), "Building playlist mapping...")
			index, res.Skipped, err = BuildPlaylistIndex(ctx, s.api.PlaylistItemPages, customs,
				func(i int, p model.PlaylistRef, perr error) {
					if perr != nil {
						s.warn(fmt.Sprintf("could not fetch items for playlist %q: %v", p.Title, perr))
					}
					s.update(progress.StageMapping, i+1, len(customs), fmt.Sprintf("Mapped playlist %q", p.Title))
				})
			if err != nil {
				return res, err
			}
		}
	}

	videos, err := s.readUploads(ctx, ch.Uploads())
	if err != nil {
		return res, fmt.Errorf("fetch uploads: %w", err)
	}
	if s.opts.IncludePlaylists {
		videos = Join(videos, index)
	}
	res.Videos = videos
	return res, nil
}

// readUploads drains the uploads playlist, reporting the running count per page.
func (s *Service) readUploads(ctx context.Context, uploads string) ([]model.VideoRecord, error) {
	s.update(progress.StageUploads, 0, 0, "Fetching videos...")
	var videos []model.VideoRecord
	for page, err := range youtube.Pages(ctx, s.api.PlaylistItemPages(uploads)) {
		if err != nil {
			return nil, err
		}
		videos = append(videos, page.Items...)
		s.update(progress.StageUploads, len(videos), 0, fmt.Sprintf("Fetched %s videos so far...", humanize.Comma(int64(len(videos)))))
	}
	return videos, nil
}

// Export runs the full flow and writes the CSV and ledger entry. It emits a
// single progress.Result. An empty channel yields ErrNoVideos and no file.
func (s *Service) Export(ctx context.Context, raw string) (Exported, error) {
	out, err := s.export(ctx, raw)
	if err != nil && !errors.Is(err, ErrNoVideos) {
		s.update(progress.StageError, 0, 0, err.Error())
		s.result(progress.Result{Err: err})
		return out, err
	}
	if errors.Is(err, ErrNoVideos) {
		s.update(progress.StageCompleted, 0, 0, "No videos found on this channel")
		s.result(progress.Result{})
		return out, err
	}
	s.update(progress.StageCompleted, len(out.Videos), len(out.Videos),
		fmt.Sprintf("Saved %s videos to %s (%s)", humanize.Comma(int64(len(out.Videos))), out.OutputPath, humanize.Bytes(uint64(out.Bytes))))
	s.result(progress.Result{OutputPath: out.OutputPath, Videos: len(out.Videos), Bytes: out.Bytes})
	return out, nil
}

func (s *Service) export(ctx context.Context, raw string) (Exported, error) {
	var out Exported
	res, err := s.Run(ctx, raw)
	out.Result = res
	if err != nil {
		return out, err
	}
	s.update(progress.StageUploads, len(res.Videos), len(res.Videos),
		fmt.Sprintf("Total videos fetched: %s", humanize.Comma(int64(len(res.Videos)))))
	if len(res.Videos) == 0 {
		return out, ErrNoVideos
	}

	s.update(progress.StageExport, 0, 0, "Saving to CSV...")
	path, n, err := export.Save(s.opts.DataDir, res.Channel.Title, res.Videos, res.Merged)
	if err != nil {
		return out, err
	}
	out.OutputPath, out.Bytes = path, n

	l := ledger.New(s.opts.DataDir)
	out.LedgerPath = l.Path()
	out.LedgerErr = l.Record(model.TrackingEntry{
		Date:        s.now(),
		ChannelName: res.Channel.Title,
		ChannelID:   res.Channel.ID,
		OutputFile:  path,
	})
	if out.LedgerErr != nil {
		s.warn(fmt.Sprintf("could not update tracking file: %v", out.LedgerErr))
	}
	return out, nil
}

func (s *Service) update(stage progress.Stage, count, total int, msg string) {
	if s.reporter == nil {
		return
	}
	s.reporter.Update(progress.Update{Stage: stage, Count: count, Total: total, Message: msg})
}

func (s *Service) warn(line string) {
	if s.reporter == nil {
		return
	}
	s.reporter.Log(progress.Log{Level: progress.LevelWarn, Line: line})
}

func (s *Service) result(r progress.Result) {
	if s.reporter == nil {
		return
	}
	s.reporter.Result(r)
}
