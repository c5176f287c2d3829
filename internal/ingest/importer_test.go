package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortes/mashpress/internal/domain/content"
)

type fakeService struct {
	mu    sync.Mutex
	seen  map[string]int
	calls int
	fail  string
}

func (f *fakeService) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeService) Import(raw string) (content.Item, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != "" && raw == f.fail {
		return content.Item{}, false, errors.New("boom")
	}
	if f.seen == nil {
		f.seen = make(map[string]int)
	}
	f.calls++
	f.seen[raw]++
	created := f.seen[raw] == 1
	return content.Item{Slug: "/x"}, created, nil
}

func writeSource(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestDiscoverSource(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.md", "A")
	writeSource(t, dir, "nested/b.markdown", "B")
	writeSource(t, dir, "c.MD", "C")
	writeSource(t, dir, "ignore.txt", "nope")
	writeSource(t, dir, "image.png", "nope")

	files, err := DiscoverSource(dir)
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestRunImportsEveryFile(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "one.md", "First Post")
	writeSource(t, dir, "two.md", "Second Post")
	writeSource(t, dir, "deep/three.md", "Third Post")

	svc := &fakeService{}
	im := New(dir, svc, nil)

	res, err := im.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Files)
	assert.Equal(t, 3, res.Created)
	assert.Equal(t, 0, res.Updated)
	assert.Empty(t, res.Warns)
	assert.Equal(t, 3, svc.calls)
}

func TestRunCountsUpdates(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "one.md", "Same Post")

	svc := &fakeService{}
	im := New(dir, svc, nil)

	_, err := im.Run(context.Background())
	require.NoError(t, err)

	res, err := im.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.Updated)
}

func TestRunImportFailureIsWarning(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "good.md", "Good Post")
	writeSource(t, dir, "bad.md", "Bad Post")

	svc := &fakeService{fail: "Bad Post"}
	im := New(dir, svc, nil)

	res, err := im.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Files)
	assert.Equal(t, 1, res.Created)
	require.Len(t, res.Warns, 1)
	assert.Contains(t, res.Warns[0].Path, "bad.md")
}

func TestRunEmptyDir(t *testing.T) {
	im := New(t.TempDir(), &fakeService{}, nil)
	res, err := im.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Files)
}

func TestRunMissingDir(t *testing.T) {
	im := New(filepath.Join(t.TempDir(), "nope"), &fakeService{}, nil)
	_, err := im.Run(context.Background())
	assert.Error(t, err)
}

func waitForCalls(t *testing.T, svc *fakeService, want int) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if svc.count() >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d imports, got %d", want, svc.count())
}

func TestWatchSingleChangeReimportsOnce(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "one.md", "First Post")

	svc := &fakeService{}
	im := New(dir, svc, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- im.Watch(ctx) }()

	// Initial import.
	waitForCalls(t, svc, 1)

	writeSource(t, dir, "one.md", "First Post, edited")
	waitForCalls(t, svc, 2)

	// The debounce is one-shot: with no further events there must be no
	// further runs.
	time.Sleep(700 * time.Millisecond)
	assert.Equal(t, 2, svc.count())

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
