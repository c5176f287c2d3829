// Package ingest imports markdown source files into the content store,
// once or continuously via a filesystem watch.
package ingest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fortes/mashpress/internal/domain/content"
	"github.com/fortes/mashpress/internal/metrics"
)

type Warning struct {
	Path string
	Msg  string
}

type Result struct {
	Files   int
	Created int
	Updated int
	Warns   []Warning
}

// Service is the slice of the publication service the importer needs.
type Service interface {
	Import(raw string) (content.Item, bool, error)
}

type Importer struct {
	Dir string
	Svc Service
	Log *slog.Logger
}

func New(dir string, svc Service, log *slog.Logger) *Importer {
	if log == nil {
		log = slog.Default()
	}
	return &Importer{Dir: dir, Svc: svc, Log: log}
}

type readResult struct {
	path string
	raw  []byte
	err  error
}

// Run imports every source file under Dir. Files are read concurrently,
// but each one is imported serially so every file is its own unit of
// work against the store. A file that fails to read or import becomes a
// warning, not a run failure.
func (im *Importer) Run(ctx context.Context) (Result, error) {
	files, err := DiscoverSource(im.Dir)
	if err != nil {
		return Result{}, err
	}

	workers := runtime.GOMAXPROCS(0)
	jobs := make(chan SourceFile)
	reads := make(chan readResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sf := range jobs {
				raw, err := os.ReadFile(sf.Path)
				reads <- readResult{path: sf.Path, raw: raw, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, f := range files {
			select {
			case <-ctx.Done():
				return
			case jobs <- f:
			}
		}
	}()
	go func() {
		wg.Wait()
		close(reads)
	}()

	res := Result{Files: len(files)}
	for r := range reads {
		if r.err != nil {
			res.Warns = append(res.Warns, Warning{Path: r.path, Msg: r.err.Error()})
			continue
		}
		it, created, err := im.Svc.Import(string(r.raw))
		if err != nil {
			res.Warns = append(res.Warns, Warning{Path: r.path, Msg: err.Error()})
			continue
		}
		metrics.ImportedFiles.Inc()
		if created {
			res.Created++
		} else {
			res.Updated++
		}
		im.Log.Debug("imported", "path", r.path, "slug", it.Slug, "created", created)
	}

	for _, w := range res.Warns {
		im.Log.Warn("import warning", "path", w.Path, "msg", w.Msg)
	}
	return res, ctx.Err()
}

// Watch runs an initial import, then re-imports whenever a source file
// changes, debounced so editor save bursts collapse into one run. Blocks
// until ctx is cancelled.
func (im *Importer) Watch(ctx context.Context) error {
	if _, err := im.Run(ctx); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	err = filepath.Walk(im.Dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	im.Log.Info("watching for source changes", "dir", im.Dir)

	// One-shot timer: a burst of events collapses into a single run, and
	// the timer stays quiet after firing until the next event arms it.
	debounce := time.NewTimer(time.Hour)
	if !debounce.Stop() {
		<-debounce.C
	}

	trigger := func() {
		if !debounce.Stop() {
			select {
			case <-debounce.C:
			default:
			}
		}
		debounce.Reset(200 * time.Millisecond)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				trigger()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			im.Log.Warn("watcher error", "error", err)
		case <-debounce.C:
			res, err := im.Run(ctx)
			if err != nil {
				im.Log.Error("reimport failed", "error", err)
				continue
			}
			im.Log.Info("reimported",
				"files", res.Files, "created", res.Created, "updated", res.Updated)
		}
	}
}
