// Command docrag indexes project documentation and answers semantic
// search queries against it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/docrag/internal/adapters/driving/cli"
	"github.com/custodia-labs/docrag/internal/bootstrap"
	"github.com/custodia-labs/docrag/internal/config"
	"github.com/custodia-labs/docrag/internal/telemetry"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	flush, err := telemetry.Init(telemetry.Config{
		DSN:         cfg.Telemetry.SentryDSN,
		Environment: cfg.Telemetry.Environment,
		Release:     "docrag@" + version,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error reporting disabled: %v\n", err)
	}
	defer flush()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		telemetry.CaptureError(ctx, "bootstrap", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer app.Close()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Index:   app.Index,
		Search:  app.Search,
		Watcher: app.Loader,
		Config:  cfg,
	})

	if err := cli.Execute(ctx); err != nil {
		// cobra has already printed the error
		telemetry.CaptureError(ctx, commandName(), err)
		return 1
	}
	return 0
}

// commandName returns the invoked subcommand for error tagging.
func commandName() string {
	for _, arg := range os.Args[1:] {
		if len(arg) > 0 && arg[0] != '-' {
			return arg
		}
	}
	return "docrag"
}
