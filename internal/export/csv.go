// Package export writes merged video records as tracking CSV files.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ytcatalog/internal/model"
	"ytcatalog/internal/util"
)

// StatusNotStarted is the initial workflow status of every exported row.
const StatusNotStarted = "Not started"

// OutputSubdir is the directory under the data dir that receives CSV files.
const OutputSubdir = "csv_outputs"

// ErrWrite wraps every failure to produce the CSV file.
var ErrWrite = errors.New("write CSV")

// Header returns the column names; Playlists is present only after a merge.
func Header(includePlaylists bool) []string {
	h := []string{"Title", "Date", "URL", "Status"}
	if includePlaylists {
		h = append(h, "Playlists")
	}
	return h
}

// WriteCSV serializes videos with RFC 4180 quoting.
func WriteCSV(w io.Writer, videos []model.VideoRecord, includePlaylists bool) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(includePlaylists)); err != nil {
		return err
	}
	for _, v := range videos {
		row := []string{v.Title, v.Date(), v.URL, StatusNotStarted}
		if includePlaylists {
			row = append(row, strings.Join(v.Playlists, ","))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FileName derives "<SafeChannelName>_videos.csv" from a channel display name.
func FileName(channelName string) string {
	safe := util.SanitizeName(channelName)
	if safe == "" {
		safe = "channel"
	}
	return safe + "_videos.csv"
}

// Save writes the CSV under <dataDir>/csv_outputs and returns its path and size.
// The file is replaced atomically, so a failed export never leaves a partial CSV.
func Save(dataDir, channelName string, videos []model.VideoRecord, includePlaylists bool) (string, int64, error) {
	path := filepath.Join(dataDir, OutputSubdir, FileName(channelName))
	n, err := util.WriteFileAtomic(path, func(f *os.File) error {
		return WriteCSV(f, videos, includePlaylists)
	})
	if err != nil {
		return "", 0, fmt.Errorf("%w %s: %v", ErrWrite, path, err)
	}
	return path, n, nil
}
