package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"ytcatalog/internal/model"
	"ytcatalog/internal/progress"
	"ytcatalog/internal/youtube"
)

// fakeAPI serves canned pages keyed by playlist ID and counts every request.
type fakeAPI struct {
	mu        sync.Mutex
	search    map[string]string
	channels  map[string]model.Channel
	playlists [][]model.PlaylistRef
	listErr   error
	items     map[string][][]model.VideoRecord
	itemErr   map[string]map[int]error // playlist -> page index -> error
	calls     map[string]int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		search:   map[string]string{},
		channels: map[string]model.Channel{},
		items:    map[string][][]model.VideoRecord{},
		itemErr:  map[string]map[int]error{},
		calls:    map[string]int{},
	}
}

func (f *fakeAPI) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeAPI) hit(key string) {
	f.mu.Lock()
	f.calls[key]++
	f.mu.Unlock()
}

func (f *fakeAPI) SearchChannelID(_ context.Context, q string) (string, error) {
	f.hit("search")
	id, ok := f.search[q]
	if !ok {
		return "", fmt.Errorf("%w: %q", youtube.ErrResolution, q)
	}
	return id, nil
}

func (f *fakeAPI) Channel(_ context.Context, id string) (model.Channel, error) {
	f.hit("channel")
	ch, ok := f.channels[id]
	if !ok {
		return model.Channel{}, fmt.Errorf("%w: %s", youtube.ErrNotFound, id)
	}
	return ch, nil
}

func (f *fakeAPI) PlaylistPages(string) youtube.FetchPage[model.PlaylistRef] {
	return func(_ context.Context, token string) (youtube.Page[model.PlaylistRef], error) {
		f.hit("playlists")
		if f.listErr != nil {
			return youtube.Page[model.PlaylistRef]{}, f.listErr
		}
		return pageAt(f.playlists, token), nil
	}
}

func (f *fakeAPI) PlaylistItemPages(id string) youtube.FetchPage[model.VideoRecord] {
	return func(_ context.Context, token string) (youtube.Page[model.VideoRecord], error) {
		f.hit("items:" + id)
		idx := pageIndex(token)
		if err := f.itemErr[id][idx]; err != nil {
			return youtube.Page[model.VideoRecord]{}, err
		}
		return pageAt(f.items[id], token), nil
	}
}

func pageIndex(token string) int {
	if token == "" {
		return 0
	}
	i, _ := strconv.Atoi(strings.TrimPrefix(token, "p"))
	return i
}

func pageAt[T any](pages [][]T, token string) youtube.Page[T] {
	i := pageIndex(token)
	if i >= len(pages) {
		return youtube.Page[T]{}
	}
	p := youtube.Page[T]{Items: pages[i]}
	if i+1 < len(pages) {
		p.NextToken = fmt.Sprintf("p%d", i+1)
	}
	return p
}

func videos(from, to int) []model.VideoRecord {
	var out []model.VideoRecord
	for i := from; i <= to; i++ {
		out = append(out, model.NewVideoRecord(fmt.Sprintf("v%d", i), fmt.Sprintf("Video %d", i),
			time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, i)))
	}
	return out
}

// recorder captures every reporter event.
type recorder struct {
	mu      sync.Mutex
	updates []progress.Update
	logs    []progress.Log
	results []progress.Result
}

func (r *recorder) Update(u progress.Update) {
	r.mu.Lock()
	r.updates = append(r.updates, u)
	r.mu.Unlock()
}

func (r *recorder) Log(l progress.Log) {
	r.mu.Lock()
	r.logs = append(r.logs, l)
	r.mu.Unlock()
}

func (r *recorder) Result(res progress.Result) {
	r.mu.Lock()
	r.results = append(r.results, res)
	r.mu.Unlock()
}

func (r *recorder) warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, l := range r.logs {
		if l.Level == progress.LevelWarn {
			out = append(out, l.Line)
		}
	}
	return out
}
