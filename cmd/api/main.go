package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"lebstories.aub.edu.lb/internal/app"
	"lebstories.aub.edu.lb/internal/appconf"
	"lebstories.aub.edu.lb/internal/dataset"
	"lebstories.aub.edu.lb/internal/logging"
	"lebstories.aub.edu.lb/internal/restapi"
	"lebstories.aub.edu.lb/internal/webui"
)

func main() {
	var port int
	var envFlag string
	var apiKeysFlag string
	var catalogPath string
	var dataPath string
	var rateLimit int
	var refreshInterval time.Duration
	var verbose bool

	flag.IntVar(&port, "port", 4000, "API server port")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|production)")
	flag.StringVar(&apiKeysFlag, "api-keys", "test", "Comma Separated API Keys (test, etc)")
	flag.StringVar(&catalogPath, "datasets", "datasets.yaml", "Path to the dataset catalog file")
	flag.StringVar(&dataPath, "data-path", "vizdata.db", "Path to the SQLite database file")
	flag.IntVar(&rateLimit, "rate-limit", 100, "Requests per second allowed per API key (negative disables)")
	flag.DurationVar(&refreshInterval, "refresh-interval", 24*time.Hour, "How often remote datasets are re-fetched (0 disables)")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	flag.Parse()

	var apiKeys []string
	if apiKeysFlag != "" {
		apiKeys = strings.Split(apiKeysFlag, ",")
		for i := range apiKeys {
			apiKeys[i] = strings.TrimSpace(apiKeys[i])
		}
	}

	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := logging.NewStructuredLogger(os.Stdout, logLevel)

	env := appconf.EnvFlagToEnvironment(envFlag)
	dataConfig := dataset.Config{
		CatalogPath:     catalogPath,
		DataPath:        dataPath,
		Env:             env,
		Verbose:         verbose,
		RefreshInterval: refreshInterval,
	}

	dataManager, err := dataset.InitManager(dataConfig, logger)
	if err != nil {
		logging.LogError(logger, "failed to initialize dataset manager", err)
		os.Exit(1)
	}

	application := &app.Application{
		Config: appconf.Config{
			Port:      port,
			Env:       env,
			ApiKeys:   apiKeys,
			RateLimit: rateLimit,
			Verbose:   verbose,
		},
		DataConfig:  dataConfig,
		Logger:      logger,
		DataManager: dataManager,
	}

	api := restapi.NewRestAPI(application)
	web := webui.NewWebUI(application)

	mux := http.NewServeMux()
	api.SetRoutes(mux)
	web.SetRoutes(mux)

	requestLogging := restapi.NewRequestLoggingMiddleware(logger)
	handler := api.WithSecurityHeaders(requestLogging(api.WithCompression(mux)))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownComplete := make(chan struct{})
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit

		logger.Info("shutting down server", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logging.LogError(logger, "server shutdown failed", err)
		}
		dataManager.Shutdown()
		api.Shutdown()
		close(shutdownComplete)
	}()

	logger.Info("starting server", "addr", srv.Addr, "env", env.String())
	err = srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		logging.LogError(logger, "server stopped unexpectedly", err)
		os.Exit(1)
	}
	<-shutdownComplete
}
