package catalog

import (
	"context"

	"ytcatalog/internal/model"
	"ytcatalog/internal/youtube"
)

// SkippedPlaylist records a custom playlist that could not be read.
type SkippedPlaylist struct {
	Playlist model.PlaylistRef
	Err      error
}

// CustomPlaylists removes system-managed playlists (uploads, likes, ...) from
// the channel listing, preserving enumeration order.
func CustomPlaylists(all []model.PlaylistRef, ch model.Channel) []model.PlaylistRef {
	system := ch.SystemPlaylistIDs()
	out := make([]model.PlaylistRef, 0, len(all))
	for _, p := range all {
		if _, ok := system[p.ID]; ok {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ItemSource yields a page fetcher for a playlist's membership.
type ItemSource func(playlistID string) youtube.FetchPage[model.VideoRecord]

// BuildPlaylistIndex reads each playlist in order and appends its title to
// every video it contains. A playlist that fails to read is skipped and
// reported; only context cancellation aborts the whole build.
func BuildPlaylistIndex(ctx context.Context, items ItemSource, playlists []model.PlaylistRef, onPlaylist func(i int, p model.PlaylistRef, err error)) (model.PlaylistIndex, []SkippedPlaylist, error) {
	index := model.PlaylistIndex{}
	var skipped []SkippedPlaylist
	for i, p := range playlists {
		videos, err := youtube.Collect(ctx, items(p.ID))
		if err != nil {
			if ctx.Err() != nil {
				return nil, skipped, ctx.Err()
			}
			skipped = append(skipped, SkippedPlaylist{Playlist: p, Err: err})
		} else {
			for _, v := range videos {
				index[v.VideoID] = append(index[v.VideoID], p.Title)
			}
		}
		if onPlaylist != nil {
			onPlaylist(i, p, err)
		}
	}
	return index, skipped, nil
}

// Join attaches playlist titles to each video. Videos absent from the index
// get an empty (non-nil) list; index entries without a video are dropped.
func Join(videos []model.VideoRecord, index model.PlaylistIndex) []model.VideoRecord {
	for i := range videos {
		titles := index[videos[i].VideoID]
		videos[i].Playlists = append(make([]string, 0, len(titles)), titles...)
	}
	return videos
}
