package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/korylprince/chat-transport/chatbot"
	"github.com/korylprince/chat-transport/generator"
	"github.com/korylprince/chat-transport/httpapi"
	"github.com/korylprince/chat-transport/telemetry"
)

func setupLogging(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

// recorders builds the telemetry sinks named in config. The memory recorder is always first.
// store is nil unless an SQL sink is configured. closeAll must be called even when err is set.
func recorders(config *Config, logger *slog.Logger) (memory *telemetry.MemoryRecorder, multi telemetry.Multi, store *telemetry.SQLRecorder, closeAll func(), err error) {
	var closers []func()
	closeAll = func() {
		for _, c := range closers {
			c()
		}
	}

	memory = telemetry.NewMemoryRecorder(config.TelemetryLimit)
	multi = telemetry.Multi{memory}

	if config.TelemetrySQLDriver != "" {
		db, err := sql.Open(config.TelemetrySQLDriver, config.TelemetrySQLDSN)
		if err != nil {
			return nil, nil, nil, closeAll, fmt.Errorf("could not open telemetry database: %w", err)
		}
		closers = append(closers, func() { db.Close() })

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store = telemetry.NewSQLRecorder(db)
		if err = store.Migrate(ctx); err != nil {
			return nil, nil, nil, closeAll, err
		}
		multi = append(multi, store)
		logger.Info("recording telemetry to database", "driver", config.TelemetrySQLDriver)
	}

	if config.NATSURL != "" {
		nc, err := telemetry.Connect(config.NATSURL, logger)
		if err != nil {
			return nil, nil, nil, closeAll, err
		}
		closers = append(closers, nc.Close)
		multi = append(multi, telemetry.NewPublisher(nc, config.NATSSubject))
		logger.Info("publishing telemetry", "url", config.NATSURL, "subject", config.NATSSubject)
	}

	return memory, multi, store, closeAll, nil
}

// run serves the API until the listener fails. Telemetry sinks are closed before it returns.
func run(config *Config, logger *slog.Logger) error {
	memory, rec, store, closeRecorders, err := recorders(config, logger)
	defer closeRecorders()
	if err != nil {
		return fmt.Errorf("could not set up telemetry: %w", err)
	}

	// a nil *Client must not end up in the Remote interface
	var remote chatbot.Remote
	if config.RemoteEndpoint != "" {
		remote = chatbot.NewClient(config.RemoteEndpoint)
	} else {
		logger.Warn("no remote endpoint configured, smart mode uses the local generator")
	}

	catalog := generator.DefaultCatalog()
	transport := chatbot.NewTransport(remote, generator.New(catalog), logger)
	transport.Timeouts = chatbot.Timeouts{Request: config.RequestTimeout, Stream: config.StreamTimeout}
	transport.Recorder = rec

	apiConfig := &httpapi.Config{
		Transport:      transport,
		Catalog:        catalog,
		Telemetry:      memory,
		TelemetryLimit: config.TelemetryLimit,
		Logger:         logger,
	}
	if store != nil {
		apiConfig.TelemetryStore = store
	}
	r := httpapi.NewRouter(os.Stdout, apiConfig)

	var handler http.Handler = r
	if config.Prefix != "" {
		handler = http.StripPrefix(config.Prefix, r)
	}

	logger.Info("listening", "addr", config.ListenAddr, "prefix", config.Prefix)
	return http.ListenAndServe(config.ListenAddr, handler)
}

func main() {
	config, err := readConfig()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := setupLogging(config.LogLevel)

	if err = run(config, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
