package progress

// Stage identifies a high-level step of an export run.
type Stage string

const (
	StageResolving Stage = "resolving"
	StageChannel   Stage = "channel"
	StagePlaylists Stage = "playlists"
	StageMapping   Stage = "mapping"
	StageUploads   Stage = "uploads"
	StageExport    Stage = "export"
	StageCompleted Stage = "completed"
	StageError     Stage = "error"
)

// Level is the severity of a Log line.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
)

// Update conveys progress or stage changes for the run.
// Total is 0 when unknown.
type Update struct {
	Stage   Stage
	Count   int    // items processed so far in this stage
	Total   int    // expected items, 0 if unknown
	Message string // short human-friendly status line
}

// Log is a diagnostic line associated with the run.
type Log struct {
	Level Level
	Line  string
}

// Result is emitted once when the run completes or fails.
type Result struct {
	OutputPath string
	Videos     int
	Bytes      int64
	Err        error // nil on success
}

// Reporter is implemented by UI or any observer interested in progress events.
type Reporter interface {
	Update(u Update)
	Log(l Log)
	Result(r Result)
}
