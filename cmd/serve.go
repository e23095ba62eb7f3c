package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lessonlab/internal/lesson"
	"github.com/abhisek/lessonlab/internal/llm"
	"github.com/abhisek/lessonlab/internal/store"
	"github.com/abhisek/lessonlab/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
}

// runServe opens the store, builds the provider and service, and runs
// the web server until interrupted.
func runServe(cmd *cobra.Command) error {
	ctx := cmd.Context()

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(ctx, st.RequestLog())
	if err != nil {
		return fmt.Errorf("LLM provider not configured: %w", err)
	}

	service := lesson.NewService(provider, lesson.DefaultConfig())
	server := web.New(web.Options{
		Service: service,
		Logger:  logger,
	})

	addr := ":8080"
	if a, _ := cmd.Flags().GetString("addr"); a != "" {
		addr = a
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Infow("shutting down")
		return server.Shutdown(shutdownCtx)
	}
}

// newLogger builds a zap sugared logger. Development encoding by
// default; set LESSONLAB_ENV=prod for JSON output.
func newLogger() (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch os.Getenv("LESSONLAB_ENV") {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
