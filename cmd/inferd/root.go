package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"inferd/internal/auth"
	"inferd/internal/config"
	"inferd/internal/engine"
	"inferd/internal/httpapi"
)

var (
	flagConfig    string
	flagAddr      string
	flagModelPath string
	flagEnvFile   string
)

var rootCmd = &cobra.Command{
	Use:           "inferd",
	Short:         "OpenAI-compatible HTTP server over a local llama.cpp engine",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "config file (.yaml, .json or .toml)")
	rootCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides config)")
	rootCmd.Flags().StringVar(&flagModelPath, "model", "", "model file path (overrides config)")
	rootCmd.Flags().StringVar(&flagEnvFile, "env-file", ".env", "env file loaded before reading the environment")
	rootCmd.AddCommand(keygenCmd)
}

// Execute runs the CLI. Errors are fatal; the process must not serve in a
// partially configured state.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "inferd: %v\n", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load(flagEnvFile)

	var cfg config.Config
	if flagConfig != "" {
		c, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	if err := config.FromEnv(&cfg); err != nil {
		return err
	}
	if flagAddr != "" {
		cfg.Addr = flagAddr
	}
	if flagModelPath != "" {
		cfg.ModelPath = flagModelPath
	}
	if err := cfg.ApplyDefaults(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	engine.SetLogger(logger)
	httpapi.SetLogger(logger)

	h := engine.New(engine.NewLlamaRuntime(), engine.ModelConfig{
		Path:          cfg.ModelPath,
		Name:          cfg.ModelName,
		CtxSize:       cfg.CtxSize,
		BatchSize:     cfg.BatchSize,
		GPULayers:     *cfg.GPULayers,
		Threads:       cfg.Threads,
		UseMMap:       *cfg.UseMMap,
		UseMLock:      *cfg.UseMLock,
		RopeFreqBase:  cfg.RopeFreqBase,
		RopeFreqScale: cfg.RopeFreqScale,
	}, engine.Options{
		MaxQueueDepth:  cfg.MaxQueueDepth,
		MaxWait:        cfg.MaxWait(),
		RequestTimeout: cfg.RequestTimeout(),
	})
	// A model that cannot load at startup is fatal; reload failures later
	// are recoverable.
	if err := h.Load(context.Background()); err != nil {
		return fmt.Errorf("startup load: %w", err)
	}
	defer h.Close()

	keys := auth.NewKeys(cfg.APIKeys, cfg.AdminAPIKeys)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSAllowedOrigins,
		[]string{http.MethodGet, http.MethodPost, http.MethodOptions},
		[]string{"Authorization", "Content-Type"})

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(h, keys)}
	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("model", cfg.ModelName).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM): stop accepting, cancel in-flight
	// generations, then drain.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info().Msg("shutting down")
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Str("service", "inferd").Logger()
}
