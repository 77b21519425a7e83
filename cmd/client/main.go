package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/MKhiriev/rent-pe-easy/internal/adapter"
	"github.com/MKhiriev/rent-pe-easy/internal/client"
	"github.com/MKhiriev/rent-pe-easy/internal/config"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewClientLogger("rent-pe-easy-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	app := client.NewApp(
		serverAdapter,
		client.NewFileSessionStore(cfg.SessionFile),
		models.NewAppBuildInfo(buildVersion, buildDate, buildCommit),
		os.Stdout,
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err = app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()

		code := 1
		if errors.Is(err, client.ErrUsage) || errors.Is(err, client.ErrUnknownCommand) {
			code = 2
		}
		os.Exit(code)
	}
}
