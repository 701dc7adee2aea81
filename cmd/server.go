package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/slotrack/server/config"
	"github.com/slotrack/server/internal/database"
	"github.com/slotrack/server/internal/http"
	"github.com/slotrack/server/internal/http/handlers"
	"github.com/slotrack/server/internal/tracing"
	"github.com/slotrack/server/pkg/ledger"
	"github.com/slotrack/server/pkg/slo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func buildServerCmd(logger *slog.Logger) *cobra.Command {
	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Runs the HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			err := runServer(logger)
			if err != nil {
				logger.Error(err.Error())
				os.Exit(2)
			}

		},
	}
	return serverCmd
}

func runServer(logger *slog.Logger) error {
	file, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("fail to read configuration file: %w", err)
	}
	var config config.Configuration
	if err := yaml.Unmarshal(file, &config); err != nil {
		return fmt.Errorf("fail to parse yaml configuration file: %w", err)
	}
	stopTracing, err := tracing.Setup(context.Background(), config.Tracing)
	if err != nil {
		return err
	}
	store, err := database.New(logger, config.Database)
	if err != nil {
		return err
	}
	ledgerService := ledger.New(logger, store)
	sloService, err := slo.New(logger, ledgerService, prometheus.DefaultRegisterer.(*prometheus.Registry))
	if err != nil {
		return err
	}
	handlersBuilder := handlers.NewBuilder(sloService, ledgerService)
	server, err := http.NewServer(logger, config.HTTP, prometheus.DefaultRegisterer.(*prometheus.Registry), handlersBuilder)
	if err != nil {
		return err
	}
	signals := make(chan os.Signal, 1)
	errChan := make(chan error)

	signal.Notify(
		signals,
		syscall.SIGINT,
		syscall.SIGTERM)

	server.Start()
	go func() {
		for sig := range signals {
			switch sig {
			case syscall.SIGINT, syscall.SIGTERM:
				logger.Info(fmt.Sprintf("received signal %s, starting shutdown", sig))
				signal.Stop(signals)
				err := server.Stop()
				if err != nil {
					errChan <- err
				}
				errChan <- nil
			}

		}
	}()
	exitErr := <-errChan
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := stopTracing(ctx); err != nil {
		logger.Error(fmt.Sprintf("fail to stop the trace provider: %s", err.Error()))
	}
	return exitErr
}
