// Package server wires the datastore, metrics and HTTP API together and
// runs the web server until shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/koreality/koreality-go/internal/ads"
	api "github.com/koreality/koreality-go/internal/api/v2"
	"github.com/koreality/koreality-go/internal/conf"
	"github.com/koreality/koreality-go/internal/datastore"
	"github.com/koreality/koreality-go/internal/logging"
	"github.com/koreality/koreality-go/internal/observability"
	"github.com/koreality/koreality-go/internal/security"
)

// shutdownTimeout bounds how long in-flight requests may run during shutdown.
const shutdownTimeout = 10 * time.Second

// Run starts the service and blocks until SIGINT or SIGTERM.
func Run(settings *conf.Settings) error {
	if !settings.WebServer.Enabled {
		return fmt.Errorf("web server is disabled in configuration")
	}

	logging.Init()
	log := logging.ForService("server")

	if err := datastore.InitializeLogger("logs/datastore.log"); err != nil {
		log.Warn("Failed to initialize datastore file logger", "error", err)
	}
	defer func() { _ = datastore.CloseLogger() }()

	ds := datastore.New(settings)
	if err := ds.Open(); err != nil {
		return fmt.Errorf("failed to open datastore: %w", err)
	}
	defer func() {
		if err := ds.Close(); err != nil {
			log.Error("Failed to close datastore", "error", err)
		}
	}()

	metrics, err := observability.NewMetrics()
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	if settings.Map.APIKey == "" {
		log.Warn("No map API key configured, the map widget loader tag will not authenticate")
	}

	var oauth *security.OAuth2Server
	if settings.Security.GoogleAuth.Enabled {
		oauth = security.NewOAuth2Server(settings)
		log.Info("Google OAuth enabled", "redirect_uri", settings.Security.GoogleAuth.RedirectURI)
	}

	activeAds, err := ds.GetActiveAdvertisements(context.Background())
	if err != nil {
		log.Error("Failed to load advertisements, carousel starts empty", "error", err)
	}
	rotator := ads.NewRotator(activeAds, ds,
		time.Duration(settings.Ads.RotationInterval)*time.Second)
	defer rotator.Stop()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	api.New(e, ds, settings, metrics, rotator, oauth)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + settings.WebServer.Port
		log.Info("HTTP server listening", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	case sig := <-quit:
		log.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Shutdown complete")
	return nil
}
