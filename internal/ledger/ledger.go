// Package ledger maintains the plain-text log of exported channels.
//
// Each data line has the form
//
//	YYYY-MM-DD | channel name | channel id | output file
//
// Lines starting with '#' and blank lines are preserved verbatim. Recording a
// channel that is already present replaces its line in place (upsert), so the
// ledger holds one line per channel.
package ledger

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ytcatalog/internal/model"
	"ytcatalog/internal/util"
)

// FileName is the ledger file name under the data dir.
const FileName = "tracked_channels.txt"

const sep = " | "

// Ledger is a tracked-channels file.
type Ledger struct {
	path string
}

// New returns the ledger stored under dataDir.
func New(dataDir string) *Ledger {
	return &Ledger{path: filepath.Join(dataDir, FileName)}
}

// Path returns the ledger file path.
func (l *Ledger) Path() string {
	return l.path
}

// FormatEntry renders an entry as a ledger line without the trailing newline.
func FormatEntry(e model.TrackingEntry) string {
	return strings.Join([]string{e.Date.Format(model.DateLayout), e.ChannelName, e.ChannelID, e.OutputFile}, sep)
}

// ParseEntry parses a data line. Comments, blank lines and lines with the
// wrong shape report ok=false.
func ParseEntry(line string) (model.TrackingEntry, bool) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" || strings.HasPrefix(line, "#") {
		return model.TrackingEntry{}, false
	}
	// The channel name may itself contain the separator; the other three
	// fields never do, so split the date off the front and id/file off the back.
	first := strings.Index(line, sep)
	if first < 0 {
		return model.TrackingEntry{}, false
	}
	date, err := time.Parse(model.DateLayout, strings.TrimSpace(line[:first]))
	if err != nil {
		return model.TrackingEntry{}, false
	}
	rest := line[first+len(sep):]
	last := strings.LastIndex(rest, sep)
	if last < 0 {
		return model.TrackingEntry{}, false
	}
	file := rest[last+len(sep):]
	rest = rest[:last]
	mid := strings.LastIndex(rest, sep)
	if mid < 0 {
		return model.TrackingEntry{}, false
	}
	return model.TrackingEntry{
		Date:        date,
		ChannelName: rest[:mid],
		ChannelID:   strings.TrimSpace(rest[mid+len(sep):]),
		OutputFile:  strings.TrimSpace(file),
	}, true
}

// Record upserts e: every existing line for e.ChannelID is dropped, and the
// new line takes the position of the first one, or is appended.
func (l *Ledger) Record(e model.TrackingEntry) error {
	lines, err := l.readLines()
	if err != nil {
		return err
	}

	newLine := FormatEntry(e)
	out := make([]string, 0, len(lines)+1)
	found := false
	for _, line := range lines {
		if old, ok := ParseEntry(line); ok && old.ChannelID == e.ChannelID {
			if !found {
				out = append(out, newLine)
				found = true
			}
			continue
		}
		out = append(out, line)
	}
	if !found {
		out = append(out, newLine)
	}

	_, err = util.WriteFileAtomic(l.path, func(f *os.File) error {
		w := bufio.NewWriter(f)
		for _, line := range out {
			if _, err := w.WriteString(line + "\n"); err != nil {
				return err
			}
		}
		return w.Flush()
	})
	if err != nil {
		return fmt.Errorf("write ledger %s: %w", l.path, err)
	}
	return nil
}

// Entries returns the parsed data lines in file order.
func (l *Ledger) Entries() ([]model.TrackingEntry, error) {
	lines, err := l.readLines()
	if err != nil {
		return nil, err
	}
	var entries []model.TrackingEntry
	for _, line := range lines {
		if e, ok := ParseEntry(line); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (l *Ledger) readLines() ([]string, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger %s: %w", l.path, err)
	}
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read ledger %s: %w", l.path, err)
	}
	return lines, nil
}
