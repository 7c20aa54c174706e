package server

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/topi314/csat-counter/internal/middlewares"
)

const (
	ReloadRoute = "GET /dev/reload"

	// reloadInterval controls how frequently the watched directories are checked for changes.
	reloadInterval = 500 * time.Millisecond
)

// NewReloader creates a Reloader that watches roots once started. Outside of
// dev mode it never watches anything and its Handler answers 404.
func NewReloader(dev bool, roots ...string) *Reloader {
	return &Reloader{
		dev:     dev,
		roots:   roots,
		clients: make(map[int]chan struct{}),
	}
}

// Reloader fans out change notifications to any number of subscribers. Each
// subscriber gets a buffered channel that receives a single empty struct
// whenever one of the watched directories changes.
type Reloader struct {
	dev   bool
	roots []string

	mu      sync.Mutex
	closed  bool
	nextID  int
	clients map[int]chan struct{}
	cancel  context.CancelFunc
}

// Start begins polling the watched directories in dev mode.
func (r *Reloader) Start() {
	if !r.dev || len(r.roots) == 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()

	go r.watch(ctx)
}

func (r *Reloader) watch(ctx context.Context) {
	lastFingerprint, err := fingerprint(r.roots...)
	if err != nil {
		slog.Error("Reload watcher failed to read directories", slog.Any("roots", r.roots), slog.Any("err", err))
	}

	ticker := time.NewTicker(reloadInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fp, err := fingerprint(r.roots...)
			if err != nil {
				slog.Error("Reload watcher failed to scan directories", slog.Any("roots", r.roots), slog.Any("err", err))
				continue
			}

			if fp != lastFingerprint {
				lastFingerprint = fp
				slog.Debug("Reload watcher detected a change")
				r.Notify()
			}
		}
	}
}

// Subscribe registers a new listener. Once the Reloader is closed the
// returned channel is already closed and the id is -1.
func (r *Reloader) Subscribe() (int, <-chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		ch := make(chan struct{})
		close(ch)
		return -1, ch
	}

	id := r.nextID
	r.nextID++

	ch := make(chan struct{}, 1)
	r.clients[id] = ch

	return id, ch
}

func (r *Reloader) Unsubscribe(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ch, ok := r.clients[id]; ok {
		close(ch)
		delete(r.clients, id)
	}
}

// Notify signals every listener without blocking. A listener that still has
// a pending signal keeps just that one.
func (r *Reloader) Notify() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	for _, ch := range r.clients {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Close stops the watcher and closes every subscriber channel.
func (r *Reloader) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true

	if r.cancel != nil {
		r.cancel()
	}

	for id, ch := range r.clients {
		close(ch)
		delete(r.clients, id)
	}
}

// Handler streams server-sent events telling the browser to refresh after a
// change. The connection stays open until the client leaves or the Reloader
// is closed.
func (r *Reloader) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !r.dev {
			http.NotFound(w, req)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		id, ch := r.Subscribe()
		if id < 0 {
			w.WriteHeader(http.StatusGone)
			return
		}
		defer r.Unsubscribe(id)

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		if _, err := fmt.Fprint(w, ": connected\n\n"); err != nil {
			return
		}
		flusher.Flush()

		for {
			select {
			case <-req.Context().Done():
				return
			case _, ok = <-ch:
				if !ok {
					return
				}
				if _, err := fmt.Fprint(w, "data: reload\n\n"); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	})
}

// CacheMiddleware lets browsers cache static files, except in dev mode where
// every edit has to show up on the next reload.
func (r *Reloader) CacheMiddleware(next http.Handler) http.Handler {
	if r.dev {
		return middlewares.NoCache(next)
	}
	return middlewares.Cache(next)
}

// fingerprint hashes the relative path, modification time and size of every
// file below roots. It detects changes without reading file contents.
func fingerprint(roots ...string) (string, error) {
	hasher := sha1.New()

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return err
			}

			relative, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(hasher, "%s/%s:%d:%d;", filepath.Base(root), relative, info.ModTime().UnixNano(), info.Size())
			return err
		})
		if err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
