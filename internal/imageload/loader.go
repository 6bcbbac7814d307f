// Package imageload decodes paintings off the game loop.
//
// A Loader runs a fixed pool of workers fed from a job channel. Concurrent
// requests for the same path share one decode.
package imageload

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ErrLoaderClosed is returned by Load after Close.
var ErrLoaderClosed = errors.New("imageload: loader closed")

const defaultWorkers = 2

type loadJob struct {
	path   string
	result chan loadResult
}

type loadResult struct {
	painting *Painting
	err      error
}

// Loader decodes image files on background workers.
type Loader struct {
	jobs  chan loadJob
	done  chan struct{}
	group singleflight.Group
	wg    sync.WaitGroup
	once  sync.Once
	log   *zap.Logger
}

// NewLoader starts a loader with the given number of workers (at least
// one). A nil logger discards output.
func NewLoader(workers int, log *zap.Logger) *Loader {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if log == nil {
		log = zap.NewNop()
	}
	l := &Loader{
		jobs: make(chan loadJob),
		done: make(chan struct{}),
		log:  log,
	}
	l.wg.Add(workers)
	for range workers {
		go l.worker()
	}
	return l
}

// Load decodes the image at path. Concurrent calls for the same path share
// the result. Load returns early with ctx.Err() if ctx ends first, and with
// ErrLoaderClosed once the loader is closed.
func (l *Loader) Load(ctx context.Context, path string) (*Painting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case <-l.done:
		return nil, ErrLoaderClosed
	default:
	}

	ch := l.group.DoChan(path, func() (any, error) {
		return l.submit(path)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			l.log.Debug("shared decode", zap.String("path", path))
		}
		return res.Val.(*Painting), nil
	}
}

// Preload decodes every path, at most limit at a time, and returns the
// first error.
func (l *Loader) Preload(ctx context.Context, paths []string, limit int) error {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, p := range paths {
		g.Go(func() error {
			_, err := l.Load(gctx, p)
			return err
		})
	}
	return g.Wait()
}

// Close stops the workers and waits for them to exit. Loads in flight
// return ErrLoaderClosed. Close is safe to call more than once.
func (l *Loader) Close() {
	l.once.Do(func() {
		close(l.done)
		l.wg.Wait()
	})
}

// submit hands path to a worker and waits for its result.
func (l *Loader) submit(path string) (*Painting, error) {
	res := make(chan loadResult, 1)
	select {
	case l.jobs <- loadJob{path: path, result: res}:
	case <-l.done:
		return nil, ErrLoaderClosed
	}
	select {
	case r := <-res:
		return r.painting, r.err
	case <-l.done:
		return nil, ErrLoaderClosed
	}
}

// worker is a background goroutine that processes load jobs until Close.
func (l *Loader) worker() {
	defer l.wg.Done()
	for {
		select {
		case <-l.done:
			return
		case job := <-l.jobs:
			p, err := decodeFile(job.path)
			if err != nil {
				l.log.Warn("image load failed", zap.String("path", job.path), zap.Error(err))
			} else {
				l.log.Debug("image loaded",
					zap.String("path", job.path),
					zap.String("format", p.Format),
					zap.Int("width", p.Width),
					zap.Int("height", p.Height),
					zap.Int("orientation", p.Orientation))
			}
			job.result <- loadResult{painting: p, err: err}
		}
	}
}
