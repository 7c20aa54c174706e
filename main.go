package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/topi314/csat-counter/internal/xslog"
	"github.com/topi314/csat-counter/server"
	"github.com/topi314/csat-counter/server/web"
)

func main() {
	cfgPath := flag.String("config", "csat-counter.toml", "path to config file")
	flag.Parse()

	cfg, err := server.LoadConfig(*cfgPath)
	if err != nil {
		slog.Error("Failed to load config", slog.Any("err", err))
		os.Exit(-1)
	}

	setupLogger(cfg.Dev, cfg.Log)
	slog.Info("Starting csat-counter...", slog.String("config", cfg.String()))

	srv, err := server.New(cfg)
	if err != nil {
		slog.Error("Failed to create server", slog.Any("err", err))
		os.Exit(-1)
	}
	srv.Server.Handler = web.Routes(srv)

	srv.Start()
	defer srv.Stop()

	slog.Info("Server started", slog.String("addr", cfg.Server.Addr), slog.String("public_url", cfg.Server.PublicURL))

	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGTERM, syscall.SIGINT)
	<-s
}

func setupLogger(dev bool, cfg server.LogConfig) {
	opts := &slog.HandlerOptions{
		AddSource: cfg.AddSource,
		Level:     cfg.Level,
	}

	var handler slog.Handler
	switch cfg.Format {
	case server.LogFormatJSON:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	// static and reload requests only drown out the interesting access logs
	if !dev {
		handler = xslog.NewFilterHandler(handler, xslog.DropPathPrefixes("path", "/static/", "/dev/"))
	}

	slog.SetDefault(slog.New(handler))
}
