package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/topi314/csat-counter/server/countdown"
	"github.com/topi314/csat-counter/server/database"
)

var (
	//go:embed static
	static embed.FS

	//go:embed templates
	templates embed.FS
)

// devRoot is where templates and static files are read from in dev mode,
// relative to the working directory.
const devRoot = "server"

func New(cfg Config) (*Server, error) {
	staticFS, templateFS, err := assets(cfg.Dev)
	if err != nil {
		return nil, err
	}

	renderer, err := NewTemplateRenderer(templateFS, cfg.Dev, cfg.Server.MinifyHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	var (
		db    *database.Database
		store countdown.OverrideStore
	)
	if cfg.Database.Enabled {
		db, err = database.New(context.Background(), cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		store = &examDateStore{db: db}
	}

	schedule := countdown.NewSchedule(cfg.Counter, store)

	var notifier *Notifier
	if cfg.Notifications.Enabled {
		notifier, err = NewNotifier(cfg.Notifications, schedule)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize notifier: %w", err)
		}
	}

	var reloader *Reloader
	if cfg.Dev {
		reloader = NewReloader(true, filepath.Join(devRoot, "templates"), filepath.Join(devRoot, "static"))
	} else {
		reloader = NewReloader(false)
	}

	return &Server{
		Cfg: cfg,
		Server: &http.Server{
			Addr:              cfg.Server.Addr,
			ReadHeaderTimeout: 5 * time.Second,
		},
		DB:       db,
		Schedule: schedule,
		Renderer: renderer,
		StaticFS: http.FS(staticFS),
		Reloader: reloader,
		Notifier: notifier,
		Now:      time.Now,
	}, nil
}

func assets(dev bool) (fs.FS, fs.FS, error) {
	if dev {
		root, err := os.OpenRoot(devRoot)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open dev root: %w", err)
		}
		staticFS, err := fs.Sub(root.FS(), "static")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open static directory: %w", err)
		}
		templateFS, err := fs.Sub(root.FS(), "templates")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open templates directory: %w", err)
		}
		return staticFS, templateFS, nil
	}

	staticFS, err := fs.Sub(static, "static")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open embedded static files: %w", err)
	}
	templateFS, err := fs.Sub(templates, "templates")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open embedded templates: %w", err)
	}
	return staticFS, templateFS, nil
}

type Server struct {
	Cfg      Config
	Server   *http.Server
	DB       *database.Database
	Schedule *countdown.Schedule
	Renderer Renderer
	StaticFS http.FileSystem
	Reloader *Reloader
	Notifier *Notifier
	Now      func() time.Time
}

func (s *Server) Start() {
	s.Reloader.Start()
	if s.Notifier != nil {
		s.Notifier.Start()
	}

	go func() {
		if err := s.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", slog.Any("err", err))
		}
	}()
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), s.Cfg.Server.ShutdownTimeout.Std())
	defer cancel()

	// SSE connections only end once the reloader is closed.
	s.Reloader.Close()

	if err := s.Server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", slog.Any("err", err))
	}

	if s.Notifier != nil {
		s.Notifier.Stop(ctx)
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			slog.Error("Failed to close database", slog.Any("err", err))
		}
	}
}
