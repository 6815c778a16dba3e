package main

// notify-client mirrors what the browser shell does at startup: run
// the daily-gated deadline scan, mount the notification feed, then
// follow the change feed and surface alerts on the terminal.

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"caseflow/internal/alert"
	"caseflow/internal/changefeed"
	"caseflow/internal/client"
	"caseflow/internal/feed"
	"caseflow/internal/gate"

	"github.com/fatih/color"
)

func main() {
	apiURL := envOr("CASEFLOW_API_URL", "http://localhost:8080")
	wsURL := envOr("CASEFLOW_WS_URL", "ws://localhost:8080/api/ws")
	token := os.Getenv("CASEFLOW_TOKEN")
	if token == "" {
		log.Fatal("CASEFLOW_TOKEN is not set")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	api := client.NewAPIClient(apiURL)
	api.SetToken(token)

	alerter := alert.NewTermAlerter()
	alerter.RequestPermission()
	toaster := alert.TermToaster{}

	controller := feed.NewController(api, alerter, toaster, func(link string) {
		color.HiBlack("→ %s", link)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Once-per-day scanner invocation, gated locally.
	dailyGate := gate.New(gateMarkerPath())
	bootstrap := client.NewBootstrap(dailyGate, api, logger)
	if created, err := bootstrap.Run(ctx, time.Now()); err == nil && len(created) > 0 {
		logger.Info("scan created notifications", "count", len(created))
	}

	// Initial mount: first fetch never alerts.
	if err := controller.Refresh(ctx); err != nil {
		logger.Error("initial notification fetch failed", "error", err)
	}
	color.Cyan("%d unread notifications", controller.UnreadCount())

	// Follow the change feed; every event is a full resync trigger.
	for {
		err := client.SubscribeFeed(ctx, wsURL, token, func(event changefeed.Event) {
			controller.HandleEvent(ctx, event)
		})
		if ctx.Err() != nil {
			log.Println("Closing connection...")
			return
		}
		logger.Warn("feed connection lost, reconnecting", "error", err)
		time.Sleep(5 * time.Second)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func gateMarkerPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".caseflow-last-scan"
	}
	return filepath.Join(dir, "caseflow", "last-scan")
}
