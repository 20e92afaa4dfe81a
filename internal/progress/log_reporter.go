package progress

import (
	log "github.com/sirupsen/logrus"
)

// LogReporter renders progress events as log lines for non-interactive runs.
type LogReporter struct {
	Logger log.FieldLogger
}

// NewLogReporter returns a reporter writing to the given logger, or the
// standard logrus logger when l is nil.
func NewLogReporter(l log.FieldLogger) *LogReporter {
	if l == nil {
		l = log.StandardLogger()
	}
	return &LogReporter{Logger: l}
}

func (r *LogReporter) Update(u Update) {
	entry := r.Logger.WithField("stage", string(u.Stage))
	if u.Count > 0 {
		entry = entry.WithField("count", u.Count)
	}
	if u.Total > 0 {
		entry = entry.WithField("total", u.Total)
	}
	// Per-page uploads ticks are noisy; keep them for --verbose.
	if u.Stage == StageUploads && u.Count > 0 {
		entry.Debug(u.Message)
		return
	}
	entry.Info(u.Message)
}

func (r *LogReporter) Log(l Log) {
	if l.Level == LevelWarn {
		r.Logger.Warn(l.Line)
		return
	}
	r.Logger.Info(l.Line)
}

func (r *LogReporter) Result(res Result) {
	if res.Err != nil {
		r.Logger.WithError(res.Err).Error("export failed")
		return
	}
	if res.OutputPath == "" {
		r.Logger.Info("export finished, nothing written")
		return
	}
	r.Logger.WithFields(log.Fields{"file": res.OutputPath, "videos": res.Videos, "bytes": res.Bytes}).Info("export finished")
}
