package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/example/daily-todos/config"
	"github.com/example/daily-todos/logging"
	"github.com/example/daily-todos/modules/api"
	"github.com/example/daily-todos/modules/feedback"
	"github.com/example/daily-todos/modules/history"
	"github.com/example/daily-todos/modules/storage"
	"github.com/example/daily-todos/modules/theme"
	"github.com/example/daily-todos/modules/todo"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := newRootCmd(run).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(runFn func(configPath string) error) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "daily-todos",
		Short:         "Daily todo tracker with a 30-day history",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runFn(configPath); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")

	return cmd
}

func run(configPath string) error {
	log.Println("=== Daily Todos ===")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Service: "daily-todos",
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	loc, err := cfg.History.Location()
	if err != nil {
		return fmt.Errorf("invalid history config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), storage.DefaultTimeout)
	backend, err := storage.Open(ctx, cfg.Storage)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(logging.MonoLevel(cfg.Log.Level)),
		mono.WithLogFormat(logging.MonoFormat(cfg.Log.Format)),
	)
	if err != nil {
		_ = backend.Close()
		return fmt.Errorf("failed to create application: %w", err)
	}

	storageModule := storage.NewModule(backend, logger)
	kv := storageModule.Store()

	// Order: independent modules first, then modules with dependencies
	app.Register(storageModule)
	app.Register(history.NewModule(kv, logger, history.Config{
		Retention:  cfg.History.RetentionDays,
		Location:   loc,
		Quarantine: cfg.Storage.QuarantineCorrupt,
	}))
	app.Register(theme.NewModule(kv, logger))
	app.Register(feedback.NewModule(logger, feedback.DefaultCapacity))
	app.Register(todo.NewModule(kv, logger, todo.StoreConfig{
		Quarantine: cfg.Storage.QuarantineCorrupt,
	}))
	app.Register(api.NewModule(cfg.HTTP.Addr, logger))

	// Start application
	if err := app.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
	return nil
}

func printStartupInfo(cfg *config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("Storage backend: %s", cfg.Storage.Backend)
	log.Printf("History: %d days, dates in %s", cfg.History.RetentionDays, cfg.History.Timezone)
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost%s):", cfg.HTTP.Addr)
	log.Println("  GET    /api/v1/todos              - List todos (?filter=active|completed)")
	log.Println("  POST   /api/v1/todos              - Add a todo")
	log.Println("  POST   /api/v1/todos/:id/toggle   - Toggle completion")
	log.Println("  DELETE /api/v1/todos/:id          - Delete a todo")
	log.Println("  POST   /api/v1/todos/reload       - Re-read the persisted list")
	log.Println("  GET    /api/v1/history            - Daily history (?limit=N)")
	log.Println("  GET    /api/v1/theme              - Current theme")
	log.Println("  PUT    /api/v1/theme              - Set theme (light|dark|system)")
	log.Println("  PUT    /api/v1/appearance         - Push OS appearance (light|dark)")
	log.Println("  GET    /health                    - Health check")
	log.Println("  GET    /metrics                   - Prometheus metrics")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
