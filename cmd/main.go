package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"task-tracker/internal/config"
	"task-tracker/internal/eventloop"
	router "task-tracker/internal/http"
	"task-tracker/internal/http/handlers"
	"task-tracker/internal/logx"
	"task-tracker/internal/metrics"
	"task-tracker/internal/service"
	"task-tracker/internal/store/memory"
	"task-tracker/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tasktracker: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML config file")
	serveHTTP := flag.Bool("http", false, "serve the HTTP API alongside the terminal session")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *serveHTTP {
		cfg.HTTP.Enabled = true
	}
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}
	if *debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logx.SetDebug(cfg.Debug)
	logger := logx.NewLogger("main")

	recorder := metrics.NewPrometheusRecorder()
	store := memory.New()

	loop := eventloop.New(cfg.Loop.QueueSize)
	loop.Start()

	svc, err := service.New(store, loop,
		service.WithStrictPriority(cfg.Validation.StrictPriority),
		service.WithMetrics(recorder),
		service.WithLogger(logx.NewLogger("service")),
	)
	if err != nil {
		return logx.Wrap(err, "service initiation failed")
	}

	var server *http.Server
	if cfg.HTTP.Enabled {
		server = &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           router.New(handlers.New(svc), recorder.Handler()),
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		}

		go func() {
			logger.Info("listening on %s", cfg.HTTP.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server failed: %v", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session := ui.NewSession(svc, os.Stdin, os.Stdout,
		ui.WithPrompts(cfg.UI.Prompts || ui.IsTerminal(os.Stdin)),
	)

	sessionDone := make(chan error, 1)
	go func() { sessionDone <- session.Run(ctx) }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-sessionDone:
		if err != nil {
			logger.Warn("session ended: %v", err)
		}
		// a closed stdin still leaves the API up when it is served
		if server != nil && !ui.IsTerminal(os.Stdin) {
			<-stop
		}
	case <-stop:
		logger.Info("shut down signal received...")
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if server != nil {
		if err := server.Shutdown(shutdownCtx); err != nil {
			return logx.Wrap(err, "http shutdown failed")
		}
	}
	if err := loop.Shutdown(shutdownCtx); err != nil {
		return logx.Wrap(err, "event loop shutdown failed")
	}

	logger.Debug("shut down gracefully")
	return nil
}
