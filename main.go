package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"chessleague/internal/config"
	"chessleague/internal/handlers"
	"chessleague/internal/loader"
	"chessleague/internal/logging"
	"chessleague/internal/storage"
	"chessleague/internal/templates"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	importDocs := flag.Bool("import", false, "copy the JSON documents in data.dir into the database and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		l := logging.New("info")
		l.Fatal().Err(err).Msg("loading config")
	}
	logging.Debug = *debug || cfg.Log.Debug
	logger := logging.New(cfg.Log.Level)

	templates.SetCommit(commit)

	if *importDocs {
		if err := runImport(cfg, logger); err != nil {
			logger.Fatal().Err(err).Msg("import failed")
		}
		return
	}

	src, err := source(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("opening league source")
	}
	l := loader.New(src, logger)

	h := handlers.NewHandler(l, handlers.Options{
		FeaturedInterval: cfg.Replay.FeaturedInterval,
		RecentInterval:   cfg.Replay.RecentInterval,
		Popup: templates.PopupSettings{
			Offset:    cfg.Overlay.Offset,
			HideDelay: cfg.Overlay.HideDelay,
		},
	})
	mux := h.Routes()
	mux.Handle("GET /data/", http.StripPrefix("/data/", http.FileServer(http.Dir(cfg.Data.Dir))))
	mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.Server.ImagesDir))))

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: handlers.RequestID(logger)(mux),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", srv.Addr).Str("commit", commit).Str("built", buildDate).Msg("chess league listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
}

// source picks the database, a remote base URL or the local data directory.
func source(cfg *config.Config, logger zerolog.Logger) (loader.Source, error) {
	switch {
	case cfg.Data.DSN != "":
		db, err := storage.New(cfg.Data.DSN)
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("serving league from database")
		return storage.NewStore(db), nil
	case cfg.Data.BaseURL != "":
		logger.Info().Str("base_url", cfg.Data.BaseURL).Msg("serving league from remote documents")
		return loader.JSONSource{Fetcher: loader.HTTPFetcher{
			BaseURL: cfg.Data.BaseURL,
			Client:  &http.Client{Timeout: 10 * time.Second},
		}}, nil
	}
	logger.Info().Str("dir", cfg.Data.Dir).Msg("serving league from local documents")
	return loader.JSONSource{Fetcher: loader.DirFetcher(cfg.Data.Dir)}, nil
}

func runImport(cfg *config.Config, logger zerolog.Logger) error {
	if cfg.Data.DSN == "" {
		return errors.New("import needs data.dsn")
	}
	db, err := storage.New(cfg.Data.DSN)
	if err != nil {
		return err
	}
	st, err := loader.New(loader.JSONSource{Fetcher: loader.DirFetcher(cfg.Data.Dir)}, logger).Load(context.Background())
	if err != nil {
		return err
	}
	if err := storage.NewStore(db).Import(context.Background(), st.Players, st.Matches, st.Schools); err != nil {
		return err
	}
	logger.Info().Int("players", len(st.Players)).Int("matches", len(st.Matches)).Msg("import complete")
	return nil
}
