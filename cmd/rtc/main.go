package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/vcrobe/rtc/cli"
	"github.com/vcrobe/rtc/log"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cli.Run(ctx, os.Exit, os.Stdout, os.Stderr, os.Args[1:]...)
	switch {
	case err == nil:
		return 0
	case !errors.Is(err, cli.ErrFailed):
		log.Error("run failed", slog.Any("error", err))
	}
	return 1
}
