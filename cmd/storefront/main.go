package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/metalldk/storefront/internal/storage"
	"github.com/metalldk/storefront/pkg/config"
	pkgerrors "github.com/metalldk/storefront/pkg/errors"
	"github.com/metalldk/storefront/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Debug(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       cfg.App.LogLevel,
		WarnStack:   cfg.App.LogWarnStack,
		Console:     cfg.App.ConsoleLogs(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := storage.Open(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to open storage", err)
		os.Exit(1)
	}

	a, err := newApp(ctx, cfg, logg, kv, os.Stdin, os.Stdout)
	if err != nil {
		logg.Error(ctx, "failed to start", err)
		_ = kv.Close()
		os.Exit(1)
	}

	if err := run(ctx, a, os.Args[1:]); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode prints err for the user unless a dialog already showed it.
func exitCode(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return 2
	}
	var reported errReported
	if !errors.As(err, &reported) {
		fmt.Fprintln(os.Stderr, "Error: "+pkgerrors.UserMessage(err))
	}
	return 1
}
