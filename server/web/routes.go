package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/topi314/csat-counter/internal/middlewares"
	"github.com/topi314/csat-counter/server"
)

type handler struct {
	*server.Server
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func Routes(srv *server.Server) http.Handler {
	h := &handler{
		Server: srv,
	}

	fs := srv.Reloader.CacheMiddleware(h.staticFiles())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handle(h.MainPage))

	mux.Handle("/api/", h.api())

	mux.Handle("GET /share/qr.png", middlewares.Cache(h.handle(h.ShareQRCode)))

	mux.Handle("GET /static/", fs)

	if srv.Cfg.Dev {
		mux.Handle(server.ReloadRoute, srv.Reloader.Handler())
	}

	mux.HandleFunc("/", h.handleNotFound(h.NotFound))

	var handler http.Handler = mux
	handler = middleware.Compress(5, "text/html", "text/css", "text/javascript", "application/javascript", "application/json", "application/manifest+json", "image/svg+xml")(handler)
	handler = middleware.Recoverer(handler)
	handler = middlewares.Logger(handler)
	handler = middleware.RealIP(handler)
	handler = middleware.RequestID(handler)

	return handler
}

// handle adapts handlers that report failures instead of writing them. A
// failed handler has not written anything, so the 500 can still be sent.
func (h *handler) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.serverError(w, r, err)
		}
	}
}

// handleNotFound is the mux fallback, every request no other route matched ends up here.
func (h *handler) handleNotFound(fn server.NotFoundFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		routeErr := &server.RouteError{
			Method: r.Method,
			Path:   r.URL.Path,
		}
		if err := fn(w, r, routeErr); err != nil {
			h.serverError(w, r, err)
		}
	}
}

func (h *handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "Failed to handle request",
		slog.String("method", r.Method),
		slog.String("url", r.URL.String()),
		slog.Any("err", err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// staticFiles serves StaticFS below /static/. Missing files and directories
// render the regular 404 page instead of a plain text error or a listing.
func (h *handler) staticFiles() http.Handler {
	fileServer := http.StripPrefix("/static", http.FileServer(h.StaticFS))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/static")

		file, err := h.StaticFS.Open(name)
		if err != nil {
			h.staticNotFound(w, r, fmt.Errorf("failed to open static file %q: %w", name, err))
			return
		}
		info, err := file.Stat()
		_ = file.Close()
		if err != nil {
			h.staticNotFound(w, r, fmt.Errorf("failed to stat static file %q: %w", name, err))
			return
		}
		if info.IsDir() {
			h.staticNotFound(w, r, fmt.Errorf("static path %q is a directory", name))
			return
		}

		fileServer.ServeHTTP(w, r)
	})
}

func (h *handler) staticNotFound(w http.ResponseWriter, r *http.Request, cause error) {
	if err := h.NotFound(w, r, cause); err != nil {
		h.serverError(w, r, err)
	}
}
