package main

import (
	"context"
	"fmt"
	"github.com/lefinal/mu/app"
	"github.com/lefinal/mu/errors"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	config, err := app.LoadConfig()
	if err != nil {
		_, _ = fmt.Fprint(os.Stderr, errors.Prettify(err))
		os.Exit(1)
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	err = app.NewApp(config).Boot(ctx)
	if err != nil {
		_, _ = fmt.Fprint(os.Stderr, errors.Prettify(err))
		cancel()
		os.Exit(1)
	}
}
