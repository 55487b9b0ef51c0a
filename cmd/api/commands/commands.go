package commands

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taskmaster/planner/internal/adapters/repository"
	"github.com/taskmaster/planner/internal/application/services"
	"github.com/taskmaster/planner/internal/infrastructure/config"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/infrastructure/metrics"
	"github.com/taskmaster/planner/internal/infrastructure/server"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Personal Planner API server",
		Long:  "Load the planner document and serve it over HTTP until interrupted",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewDataCommand creates the data command with subcommands
func NewDataCommand() *cobra.Command {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Planner document commands",
		Long:  "Inspect or rewrite the planner document on disk",
	}

	var dataFile string
	dataCmd.PersistentFlags().StringVar(&dataFile, "file", "", "Planner document path (defaults to the configured data file)")

	dataCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the normalized planner document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showData(cmd.Context(), cmd.OutOrStdout(), dataFile)
		},
	})

	dataCmd.AddCommand(&cobra.Command{
		Use:   "normalize",
		Short: "Rewrite the planner document in normalized form",
		RunE: func(cmd *cobra.Command, args []string) error {
			return normalizeData(cmd.Context(), cmd.OutOrStdout(), dataFile)
		},
	})

	return dataCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Personal Planner version",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", cfg.App.Name, cfg.App.Version)
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	appLogger.Infow("Starting Personal Planner API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"data_file", cfg.Storage.DataFile,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			appLogger.Fatalw("Server failed to start", "error", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLogger.Errorw("Graceful shutdown failed", "error", err)
		}
	}
}

// openStore loads the document at path, or at the configured data file
// when path is empty.
func openStore(ctx context.Context, path string) (*services.PlannerService, string, error) {
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, "", fmt.Errorf("failed to load configuration: %w", err)
		}
		path = cfg.Storage.DataFile
	}

	store, err := services.NewPlannerService(ctx, repository.NewDocumentRepository(path), metrics.Noop{}, logger.NewNop())
	if err != nil {
		return nil, "", err
	}
	return store, path, nil
}

func showData(ctx context.Context, out io.Writer, path string) error {
	store, _, err := openStore(ctx, path)
	if err != nil {
		return err
	}

	data, err := repository.EncodeDocument(store.GetData())
	if err != nil {
		return fmt.Errorf("failed to encode planner document: %w", err)
	}

	_, err = fmt.Fprintln(out, string(data))
	return err
}

func normalizeData(ctx context.Context, out io.Writer, path string) error {
	store, path, err := openStore(ctx, path)
	if err != nil {
		return err
	}

	if err := store.Persist(ctx); err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "Planner document at %s normalized\n", path)
	return err
}
