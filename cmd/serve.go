package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/killallgit/voice-search-api/api"
	"github.com/killallgit/voice-search-api/api/types"
	"github.com/killallgit/voice-search-api/internal/services/clipcache"
	"github.com/killallgit/voice-search-api/internal/services/jobs"
	"github.com/killallgit/voice-search-api/internal/services/library"
	"github.com/killallgit/voice-search-api/internal/services/search"
	"github.com/killallgit/voice-search-api/internal/services/transcriber"
	"github.com/killallgit/voice-search-api/internal/services/workers"
	"github.com/killallgit/voice-search-api/internal/store"
	"github.com/killallgit/voice-search-api/pkg/config"
	"github.com/killallgit/voice-search-api/pkg/ffmpeg"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Voice Search API server with the configured settings.

The server accepts audio uploads, runs transcription jobs on a bounded
worker pool, and serves phonetic clip search.

Example:
  voice-search-api serve
  voice-search-api serve --port 9090
  voice-search-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	for _, dir := range []string{cfg.Storage.UploadDir, cfg.Storage.CacheDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	ff := ffmpeg.New(cfg.FFmpeg.FFmpegPath, cfg.FFmpeg.FFprobePath, cfg.FFmpeg.Timeout)
	if err := ff.ValidateBinaries(); err != nil {
		log.Warn().Err(err).Msg("ffmpeg binaries not found; probing and clip extraction will fail")
	}

	clipStore := store.New(cfg.Storage.DataPath)

	engine, err := transcriber.NewEngine(cfg.Whisper.ModelPath, cfg.Whisper.Language, ff)
	if err != nil {
		return fmt.Errorf("failed to initialize transcription engine: %w", err)
	}
	defer engine.Close()

	pool := workers.NewPool(cfg.Processing.Workers, cfg.Processing.MaxQueueSize)
	poolCtx, poolCancel := context.WithCancel(context.Background())
	defer poolCancel()
	if err := pool.Start(poolCtx); err != nil {
		return fmt.Errorf("failed to start worker pool: %w", err)
	}
	defer pool.Stop()

	cacheService := clipcache.NewService(cfg.Storage.CacheDir, ff)
	libraryService := library.NewService(clipStore, cacheService, ff, cfg.Storage.UploadDir)
	searchService := search.NewService(clipStore)
	jobService := jobs.NewService(clipStore, engine, ff, pool)

	deps := &types.Dependencies{
		Store:          clipStore,
		LibraryService: libraryService,
		SearchService:  searchService,
		JobService:     jobService,
		ClipCache:      cacheService,
	}

	server := api.NewServer(fmt.Sprintf("%s:%d", serverHost, serverPort))
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	log.Info().Str("host", serverHost).Int("port", serverPort).Msg("starting Voice Search API server")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-stop:
		log.Info().Msg("shutting down server")
	case err := <-serverErr:
		log.Error().Err(err).Msg("server failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server gracefully stopped")
	return nil
}
