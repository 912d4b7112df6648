package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/terraincognita07/solaris/internal/api"
	"github.com/terraincognita07/solaris/internal/cli"
	"github.com/terraincognita07/solaris/internal/config"
	"github.com/terraincognita07/solaris/internal/db"
	"github.com/terraincognita07/solaris/internal/metrics"
	"github.com/terraincognita07/solaris/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	time.Local = cfg.Location

	database, err := db.Open(cfg.DBDriver, cfg.DBPath, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	segment := services.SegmentOptions{
		GapThresholdDays: cfg.GapThresholdDays,
		OpenWindowDays:   cfg.OpenWindowDays,
	}

	if len(os.Args) > 1 && os.Args[1] == "rederive" {
		userArg := ""
		if len(os.Args) > 2 {
			userArg = os.Args[2]
		}
		settings := cli.RederiveSettings{Segment: segment, Location: cfg.Location, Derivations: collector}
		if err := cli.RunRederiveCommand(database, settings, userArg, os.Stdout); err != nil {
			log.Fatalf("rederive failed: %v", err)
		}
		return
	}

	settings := api.Settings{
		SecretKey: cfg.SecretKey,
		Location:  cfg.Location,
		Segment:   segment,
		Stats: services.CycleStatsOptions{
			MinLength: cfg.StatsMinLength,
			MaxLength: cfg.StatsMaxLength,
		},
		Derivations: collector,
		Analyses:    collector,
	}
	if analysisClient := services.NewAnalysisClient(cfg.AIServiceURL, cfg.AIServiceTimeout, cfg.AIRatePerMinute); analysisClient.Enabled() {
		settings.Analyzer = analysisClient
	} else {
		log.Printf("AI_SERVICE_URL not set, insights use baseline predictions")
	}

	handler, err := api.NewHandler(database, settings)
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	app := newApp(cfg, handler, registry)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Solaris listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBDriver, cfg.Location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
