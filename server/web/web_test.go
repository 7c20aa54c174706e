package web

import (
	"net/http"
	"sync"
	"testing/fstest"
	"time"

	"github.com/topi314/csat-counter/internal/xtime"
	"github.com/topi314/csat-counter/server"
	"github.com/topi314/csat-counter/server/countdown"
)

var testNow = time.Date(2025, time.July, 1, 12, 0, 0, 0, countdown.KST)

type renderCall struct {
	request *http.Request
	name    string
	options server.RenderOptions
}

// recordingRenderer writes the template name as the body and remembers every call.
type recordingRenderer struct {
	mu    sync.Mutex
	calls []renderCall
	err   error
}

func (f *recordingRenderer) Render(w http.ResponseWriter, r *http.Request, name string, opts ...server.RenderOpt) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	options := server.ApplyRenderOpts(opts...)
	f.calls = append(f.calls, renderCall{request: r, name: name, options: options})
	if f.err != nil {
		return f.err
	}

	w.WriteHeader(options.Status)
	_, _ = w.Write([]byte(name))
	return nil
}

func (f *recordingRenderer) lastCall() renderCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

var testStatic = fstest.MapFS{
	"css/main.css":         {Data: []byte("body{margin:0}")},
	"manifest.webmanifest": {Data: []byte(`{"name":"수능 D-day"}`)},
	"js/dday.js":           {Data: []byte("const TICK = 47;")},
}

func newTestServer(renderer server.Renderer) *server.Server {
	cfg := server.Config{
		Server: server.ServerConfig{
			PublicURL: "http://localhost:8085",
		},
		Counter: countdown.DefaultConfig(),
		API: server.APIConfig{
			Every:          xtime.Duration(time.Millisecond),
			Burst:          100,
			AllowedOrigins: []string{"*"},
		},
	}

	return &server.Server{
		Cfg:      cfg,
		Schedule: countdown.NewSchedule(cfg.Counter, nil),
		Renderer: renderer,
		StaticFS: http.FS(testStatic),
		Reloader: server.NewReloader(false),
		Now: func() time.Time {
			return testNow
		},
	}
}
