package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soychecker/backend/config"
	httpDelivery "github.com/soychecker/backend/internal/delivery/http"
	"github.com/soychecker/backend/internal/infrastructure/openfoodfacts"
	"github.com/soychecker/backend/internal/logging"
	"github.com/soychecker/backend/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "1.0.0"

var (
	verbose bool

	cfg    *config.Config
	logger *zap.Logger

	newLogger = logging.New
)

// errNotFound makes `check` exit non-zero without printing a usage banner
var errNotFound = errors.New("product not found")

var rootCmd = &cobra.Command{
	Use:           "soychecker",
	Short:         "Soy Checker - look up a product by barcode and flag soy",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		logger, err = newLogger(cfg.Server.Environment, level)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <barcode>",
	Short: "Look up one barcode and print whether it contains soy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service := usecase.NewSoyService(newClient(), logger)

		view, err := service.Check(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if view.HasProduct() {
			fmt.Fprintf(out, "%s\nBrand: %s\n", view.ProductName(), view.BrandName())
		}
		fmt.Fprintln(out, view.Message())

		if !view.HasProduct() {
			return errNotFound
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd, checkCmd)
}

func newClient() *openfoodfacts.Client {
	client := openfoodfacts.NewClient(cfg.OpenFoodFacts.BaseURL, logger)
	if cfg.Server.Environment == "development" || verbose {
		client.SetDebug(true)
	}
	return client
}

func runServe(ctx context.Context) error {
	logger.Info("starting Soy Checker",
		zap.String("version", version),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("openfoodfacts", cfg.OpenFoodFacts.BaseURL))

	service := usecase.NewSoyService(newClient(), logger)
	handler := httpDelivery.NewHandler(service)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// execute runs the command line and flushes the logger whether or not the
// command failed
func execute(ctx context.Context, args []string) error {
	defer syncLogger()

	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func syncLogger() {
	if logger != nil {
		_ = logger.Sync()
	}
}

func main() {
	if err := execute(context.Background(), os.Args[1:]); err != nil {
		if !errors.Is(err, errNotFound) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
