package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/jask/studentdb/internal/config"
	"github.com/jask/studentdb/internal/dispatch"
	"github.com/jask/studentdb/internal/display"
	"github.com/jask/studentdb/internal/journal"
	"github.com/jask/studentdb/internal/logging"
	"github.com/jask/studentdb/internal/prompt"
	"github.com/jask/studentdb/internal/student"
	"github.com/jask/studentdb/internal/theme"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("error: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	opts := dispatch.Options{
		HistoryLimit: cfg.Journal.Limit,
		Suggest:      cfg.Search.Suggest,
		Logger:       logger,
	}
	if cfg.Journal.Enabled {
		j, err := journal.Open(ctx)
		if err != nil {
			log.Fatalf("open journal: %v", err)
		}
		defer j.Close()
		opts.Journal = j
	}

	store := student.NewSeededStore()
	logger.Info("session started", zap.Int("students", store.Len()), zap.Bool("journal", cfg.Journal.Enabled))

	styles := theme.New(cfg.UI.Accent)
	d := dispatch.New(store, prompt.New(os.Stdin, os.Stdout, styles), display.New(os.Stdout, styles), opts)
	err = d.Run(ctx)
	if code := exitCode(err); code != 0 {
		logger.Error("session ended", zap.Error(err))
		_ = logger.Sync()
		log.Printf("%v", err)
		stop()
		os.Exit(code)
	}
	if err != nil {
		logger.Info("session interrupted", zap.Error(err))
	}
}

// exitCode maps the result of a session to the process status. An interrupt
// ends the session like Exit does.
func exitCode(err error) int {
	if err == nil || errors.Is(err, context.Canceled) {
		return 0
	}
	return 1
}
