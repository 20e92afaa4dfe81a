package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytcatalog/internal/export"
	"ytcatalog/internal/ledger"
	"ytcatalog/internal/model"
	"ytcatalog/internal/progress"
	"ytcatalog/internal/util"
	"ytcatalog/internal/youtube"
)

var fixedNow = time.Date(2025, 7, 4, 10, 0, 0, 0, time.UTC)

// scenarioAPI is a channel with 120 uploads over three pages and two custom
// playlists. The listing also includes the likes playlist.
func scenarioAPI() *fakeAPI {
	api := newFakeAPI()
	api.search["sciencechannel"] = "UCsci"
	api.channels["UCsci"] = model.Channel{ID: "UCsci", Title: "Science Channel!", Related: map[string]string{
		model.RoleUploads: "UUsci",
		model.RoleLikes:   "LLsci",
	}}
	api.playlists = [][]model.PlaylistRef{
		{{ID: "PLa", Title: "PlaylistA"}, {ID: "LLsci", Title: "Liked videos"}},
		{{ID: "PLb", Title: "PlaylistB"}},
	}
	api.items["UUsci"] = [][]model.VideoRecord{videos(1, 50), videos(51, 100), videos(101, 120)}
	api.items["PLa"] = [][]model.VideoRecord{{videos(1, 1)[0], videos(50, 50)[0]}}
	api.items["PLb"] = [][]model.VideoRecord{videos(50, 50)}
	return api
}

func newTestService(t *testing.T, api API, rp progress.Reporter, mutate ...func(*model.Options)) (*Service, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	o := model.DefaultOptions()
	o.DataDir = dir
	for _, m := range mutate {
		m(&o)
	}
	opts := []Option{WithAPI(api), WithOptions(o), WithClock(func() time.Time { return fixedNow })}
	if rp != nil {
		opts = append(opts, WithReporter(rp))
	}
	return NewService(opts...), dir
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExport_EndToEnd(t *testing.T) {
	api := scenarioAPI()
	rec := &recorder{}
	svc, dir := newTestService(t, api, rec)

	out, err := svc.Export(context.Background(), "https://www.youtube.com/@sciencechannel")
	require.NoError(t, err)

	assert.Equal(t, model.ChannelRef{Kind: model.RefHandle, Value: "sciencechannel"}, out.Ref)
	assert.Equal(t, []model.PlaylistRef{{ID: "PLa", Title: "PlaylistA"}, {ID: "PLb", Title: "PlaylistB"}}, out.CustomPlaylists)
	assert.True(t, out.Merged)
	assert.Empty(t, out.Skipped)
	assert.Equal(t, 3, api.count("items:UUsci"))
	assert.Equal(t, 0, api.count("items:LLsci"))
	assert.Equal(t, 2, api.count("playlists"))

	wantPath := filepath.Join(dir, export.OutputSubdir, "Science_Channel_videos.csv")
	assert.Equal(t, wantPath, out.OutputPath)
	rows := readCSV(t, wantPath)
	require.Len(t, rows, 121)
	assert.Equal(t, []string{"Title", "Date", "URL", "Status", "Playlists"}, rows[0])
	for i, row := range rows[1:] {
		n := i + 1
		assert.Equal(t, fmt.Sprintf("Video %d", n), row[0])
		assert.Equal(t, fmt.Sprintf("https://www.youtube.com/watch?v=v%d", n), row[2])
		assert.Equal(t, export.StatusNotStarted, row[3])
		switch n {
		case 1:
			assert.Equal(t, "PlaylistA", row[4])
		case 50:
			assert.Equal(t, "PlaylistA,PlaylistB", row[4])
		default:
			assert.Equal(t, "", row[4], "row %d", n)
		}
	}
	assert.Equal(t, "2024-03-02", rows[1][1])

	entries, err := ledger.New(dir).Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "UCsci", entries[0].ChannelID)
	assert.Equal(t, "Science Channel!", entries[0].ChannelName)
	assert.Equal(t, wantPath, entries[0].OutputFile)
	assert.Equal(t, "2025-07-04", entries[0].Date.Format(model.DateLayout))
	assert.NoError(t, out.LedgerErr)

	require.Len(t, rec.results, 1)
	assert.NoError(t, rec.results[0].Err)
	assert.Equal(t, 120, rec.results[0].Videos)
	assert.Equal(t, wantPath, rec.results[0].OutputPath)
	assert.Equal(t, out.Bytes, rec.results[0].Bytes)
	assert.Empty(t, rec.warnings())

	var uploadCounts []int
	for _, u := range rec.updates {
		if u.Stage == progress.StageUploads && u.Total == 0 && u.Count > 0 {
			uploadCounts = append(uploadCounts, u.Count)
		}
	}
	assert.Equal(t, []int{50, 100, 120}, uploadCounts)
	assert.Equal(t, progress.StageCompleted, rec.updates[len(rec.updates)-1].Stage)
}

func TestExport_NoPlaylists(t *testing.T) {
	api := scenarioAPI()
	svc, _ := newTestService(t, api, nil, func(o *model.Options) { o.IncludePlaylists = false })

	out, err := svc.Export(context.Background(), "UCsci")
	require.NoError(t, err)
	assert.False(t, out.Merged)
	assert.Equal(t, 0, api.count("search"))
	assert.Equal(t, 0, api.count("playlists"))

	rows := readCSV(t, out.OutputPath)
	assert.Equal(t, []string{"Title", "Date", "URL", "Status"}, rows[0])
	assert.Len(t, rows, 121)
}

func TestExport_QuotaOnSecondUploadsPage(t *testing.T) {
	api := scenarioAPI()
	api.itemErr["UUsci"] = map[int]error{1: fmt.Errorf("%w: quotaExceeded", youtube.ErrQuotaOrAccess)}
	rec := &recorder{}
	svc, dir := newTestService(t, api, rec)

	_, err := svc.Export(context.Background(), "UCsci")
	require.Error(t, err)
	assert.ErrorIs(t, err, youtube.ErrQuotaOrAccess)

	_, statErr := os.Stat(filepath.Join(dir, export.OutputSubdir))
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "no CSV output expected")
	_, statErr = os.Stat(ledger.New(dir).Path())
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "no ledger expected")

	require.Len(t, rec.results, 1)
	assert.ErrorIs(t, rec.results[0].Err, youtube.ErrQuotaOrAccess)
}

func TestExport_CustomPlaylistFailureIsSkipped(t *testing.T) {
	api := scenarioAPI()
	api.itemErr["PLb"] = map[int]error{0: fmt.Errorf("%w: playlistNotFound", youtube.ErrRemote)}
	rec := &recorder{}
	svc, _ := newTestService(t, api, rec)

	out, err := svc.Export(context.Background(), "UCsci")
	require.NoError(t, err)
	require.Len(t, out.Skipped, 1)
	assert.Equal(t, "PLb", out.Skipped[0].Playlist.ID)
	assert.ErrorIs(t, out.Skipped[0].Err, youtube.ErrRemote)

	rows := readCSV(t, out.OutputPath)
	assert.Equal(t, "PlaylistA", rows[50][4])
	assert.Len(t, rec.warnings(), 1)
}

func TestExport_PlaylistListingFailureContinues(t *testing.T) {
	api := scenarioAPI()
	api.listErr = fmt.Errorf("%w: forbidden", youtube.ErrQuotaOrAccess)
	rec := &recorder{}
	svc, _ := newTestService(t, api, rec)

	out, err := svc.Export(context.Background(), "UCsci")
	require.NoError(t, err)
	assert.Empty(t, out.CustomPlaylists)

	rows := readCSV(t, out.OutputPath)
	assert.Len(t, rows[0], 5)
	assert.Equal(t, "", rows[50][4])
	assert.Len(t, rec.warnings(), 1)
}

func TestExport_NoVideos(t *testing.T) {
	api := scenarioAPI()
	api.items["UUsci"] = nil
	rec := &recorder{}
	svc, dir := newTestService(t, api, rec)

	_, err := svc.Export(context.Background(), "UCsci")
	assert.ErrorIs(t, err, ErrNoVideos)
	assert.Equal(t, 1, api.count("items:UUsci"))

	_, statErr := os.Stat(filepath.Join(dir, export.OutputSubdir))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
	require.Len(t, rec.results, 1)
	assert.NoError(t, rec.results[0].Err)
	assert.Zero(t, rec.results[0].Videos)
}

func TestExport_ResolveErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "empty input", input: "   ", want: util.ErrEmptyInput},
		{name: "unknown handle", input: "@nobody", want: youtube.ErrResolution},
		{name: "unknown id", input: "UCmissing", want: youtube.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := scenarioAPI()
			svc, _ := newTestService(t, api, nil)
			_, err := svc.Export(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 0, api.count("items:UUsci"))
		})
	}
}

func TestExport_LedgerFailureIsWarning(t *testing.T) {
	api := scenarioAPI()
	rec := &recorder{}
	svc, dir := newTestService(t, api, rec)
	// A directory where the ledger file should be makes the rename fail.
	require.NoError(t, os.MkdirAll(ledger.New(dir).Path(), 0o755))

	out, err := svc.Export(context.Background(), "UCsci")
	require.NoError(t, err)
	assert.Error(t, out.LedgerErr)
	assert.FileExists(t, out.OutputPath)
	assert.Len(t, rec.warnings(), 1)
}

func TestResolve_CustomAndUser(t *testing.T) {
	api := scenarioAPI()
	api.search["SciShow"] = "UCsci"
	api.search["oldname"] = "UCsci"
	svc, _ := newTestService(t, api, nil)

	for _, in := range []string{"https://www.youtube.com/c/SciShow", "https://www.youtube.com/user/oldname"} {
		_, ch, err := svc.Resolve(context.Background(), in)
		require.NoError(t, err, in)
		assert.Equal(t, "UCsci", ch.ID)
	}
	assert.Equal(t, 2, api.count("search"))
}

func TestRun_RequiresAPI(t *testing.T) {
	_, err := NewService().Run(context.Background(), "UC1")
	assert.Error(t, err)
}
