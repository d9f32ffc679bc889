// Package main provides the rfp-console binary: the web console for the RFP
// service plus command-line access to the same views.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rfp-console/internal/common/observability"
	"rfp-console/internal/common/session"
	"rfp-console/internal/shell"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "rfp-console"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Console for the AI-assisted RFP service",
		Long: `rfp-console fronts the RFP service.

It provides:
- a web console with tabs for creating RFPs, managing vendors,
  sending RFPs and comparing proposals
- the same actions as commands for scripting and quick checks`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api", "", "RFP service base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		serveCmd(opts),
		healthCmd(opts),
		vendorsCmd(opts),
		rfpsCmd(opts),
		proposalsCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

func serveCmd(opts *globalOptions) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web console",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app()
			if err != nil {
				return err
			}
			defer a.close()
			if address != "" {
				a.cfg.Server.Address = address
			}
			return runServe(cmd.Context(), a)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Listen address (overrides config)")
	return cmd
}

func runServe(ctx context.Context, a *app) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	obs, err := observability.New(appName, nil)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}
	defer obs.Shutdown()

	var (
		store      session.Store
		closeStore func() error
	)
	err = retryWithBackoff(func() error {
		var openErr error
		store, closeStore, openErr = session.Open(ctx, a.cfg)
		return openErr
	}, 5, 2*time.Second, a.zap, "Session store connection")
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			a.zap.Warn("Failed to close session store", zap.Error(err))
		}
	}()
	a.zap.Info("Session store ready", zap.String("store", a.cfg.Session.Store))

	srv, err := shell.New(shell.Dependencies{
		Config:        a.cfg,
		Client:        a.client,
		Store:         store,
		Logger:        a.log,
		Observability: obs,
	})
	if err != nil {
		return fmt.Errorf("build web console: %w", err)
	}

	return srv.Run(ctx)
}

func healthCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the RFP service is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			health, err := a.client.HealthCheck(ctx)
			if err != nil {
				return fmt.Errorf("RFP service at %s is unreachable: %w", a.client.BaseURL(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", health.Status, health.Message)
			return nil
		},
	}
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}
