package model

import "time"

// WatchURLPrefix is prepended to a video ID to build its watch URL.
const WatchURLPrefix = "https://www.youtube.com/watch?v="

// DateLayout is the day-granularity layout used for published dates.
const DateLayout = "2006-01-02"

// VideoRecord is one uploaded video as exported to CSV.
type VideoRecord struct {
	VideoID     string
	Title       string
	PublishedAt time.Time // truncated to the day, UTC
	URL         string
	Playlists   []string // custom playlist titles, in enumeration order
}

// NewVideoRecord builds a record and derives its URL from the video ID.
func NewVideoRecord(id, title string, published time.Time) VideoRecord {
	y, m, d := published.UTC().Date()
	return VideoRecord{
		VideoID:     id,
		Title:       title,
		PublishedAt: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		URL:         WatchURLPrefix + id,
	}
}

// Date renders the published day as YYYY-MM-DD.
func (v VideoRecord) Date() string {
	return v.PublishedAt.Format(DateLayout)
}

// PlaylistRef identifies a playlist by ID and display title.
type PlaylistRef struct {
	ID    string
	Title string
}

// PlaylistIndex maps a video ID to the titles of the playlists containing it.
type PlaylistIndex map[string][]string
