// Package telemetry reports command failures to Sentry.
// Every function is a no-op until Init is called with a DSN.
package telemetry

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/custodia-labs/docrag/internal/core/domain"
	"github.com/custodia-labs/docrag/internal/logger"
)

const (
	serviceName  = "docrag"
	flushTimeout = 2 * time.Second
)

var enabled atomic.Bool

// Config holds the configuration for Sentry initialisation.
type Config struct {
	DSN         string
	Environment string
	Release     string
	Debug       bool
}

// Init initialises Sentry and returns a function that flushes pending
// events. If DSN is empty, returns a no-op flush function.
func Init(cfg Config) (func(), error) {
	if cfg.DSN == "" {
		return func() {}, nil
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		Debug:       cfg.Debug,
		ServerName:  serviceName,
	})
	if err != nil {
		// Continue without reporting rather than failing the command
		logger.Warn("sentry: failed to initialise: %v", err)
		return func() {}, err
	}

	enabled.Store(true)
	logger.Debug("sentry: initialised (environment: %s)", cfg.Environment)

	return func() {
		sentry.Flush(flushTimeout)
	}, nil
}

// Enabled reports whether Init succeeded with a DSN.
func Enabled() bool {
	return enabled.Load()
}

// CaptureError records err with the command that produced it.
// Expected user-facing conditions are not reported.
func CaptureError(ctx context.Context, command string, err error) {
	if err == nil || !Enabled() || !Reportable(err) {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("command", command)
		hub.CaptureException(err)
	})
}

// AddBreadcrumb records a step leading up to a possible error.
func AddBreadcrumb(ctx context.Context, category, message string) {
	if !Enabled() {
		return
	}

	breadcrumb := &sentry.Breadcrumb{
		Type:      "default",
		Category:  category,
		Message:   message,
		Level:     sentry.LevelInfo,
		Timestamp: time.Now(),
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.AddBreadcrumb(breadcrumb, nil)
	} else {
		sentry.AddBreadcrumb(breadcrumb)
	}
}

// Reportable reports whether err signals a defect worth reporting rather
// than bad input, a missing index or a cancelled run.
func Reportable(err error) bool {
	switch {
	case errors.Is(err, context.Canceled),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidConfig),
		errors.Is(err, domain.ErrIndexNotFound):
		return false
	}
	return true
}
