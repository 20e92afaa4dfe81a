package model

// PageSize is the maximum number of items the API returns per page.
const PageSize = 50

// Options holds user-configurable runtime options as resolved from flags, env and config.
type Options struct {
	DataDir          string  // Root of csv_outputs/ and tracked_channels.txt.
	IncludePlaylists bool    // Run the custom playlist merge and emit the Playlists column.
	MaxQPS           float64 // Request pacing; 0 means unlimited.
	Verbose          bool
	NoUI             bool // Disable TUI when true
}

// DefaultOptions returns options matching the CLI defaults.
func DefaultOptions() Options {
	return Options{
		DataDir:          "data",
		IncludePlaylists: true,
	}
}
