package model

import "time"

// RefKind tags how a channel was referenced by the user.
type RefKind string

const (
	RefID     RefKind = "id"
	RefHandle RefKind = "handle"
	RefCustom RefKind = "custom"
	RefUser   RefKind = "user"
)

// ChannelRef is a parsed, not yet resolved, channel reference.
type ChannelRef struct {
	Kind  RefKind
	Value string
}

// NeedsLookup reports whether the reference must be resolved through search.
func (r ChannelRef) NeedsLookup() bool {
	return r.Kind != RefID
}

// Related playlist roles as reported by channels.list.
const (
	RoleUploads      = "uploads"
	RoleLikes        = "likes"
	RoleFavorites    = "favorites"
	RoleWatchHistory = "watchHistory"
	RoleWatchLater   = "watchLater"
)

// Channel holds the metadata needed to export a channel.
type Channel struct {
	ID      string
	Title   string
	Related map[string]string // role -> playlist ID
}

// Uploads returns the ID of the channel's uploads playlist.
func (c Channel) Uploads() string {
	return c.Related[RoleUploads]
}

// SystemPlaylistIDs returns the set of platform-managed playlist IDs.
func (c Channel) SystemPlaylistIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(c.Related))
	for _, id := range c.Related {
		if id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids
}

// TrackingEntry is one line of the tracking ledger.
type TrackingEntry struct {
	Date        time.Time
	ChannelName string
	ChannelID   string
	OutputFile  string
}
