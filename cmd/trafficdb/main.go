// package main provides a command line interface for starting the trafficdb
// REST API.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/gorilla/handlers"

	"github.com/findtrafficevents/trafficdb/config"
	"github.com/findtrafficevents/trafficdb/discovery"
	"github.com/findtrafficevents/trafficdb/geocode"
	"github.com/findtrafficevents/trafficdb/log"
	"github.com/findtrafficevents/trafficdb/places"
	"github.com/findtrafficevents/trafficdb/prom"
	"github.com/findtrafficevents/trafficdb/rest"
	"github.com/findtrafficevents/trafficdb/service"
	"github.com/findtrafficevents/trafficdb/store"
)

func main() {
	var (
		configPath   = flag.String("config", os.Getenv("TRAFFICDB_CONFIG"), "path to the YAML config file")
		listen       = flag.String("listen", "", "listen address, overrides the config file")
		dataDir      = flag.String("data-dir", "", "directory for per-city event stores, overrides the config file")
		discoveryKey = flag.String("discovery-key", os.Getenv("DISCOVERY_API_KEY"), "API key for the event discovery service")
		environment  = flag.String("environment", os.Getenv("ENV"), "development or production, controls log verbosity")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *environment != "" {
		cfg.Environment = *environment
	}

	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}

	// A missing credential is a configuration failure: fatal, no retry,
	// no partial results.
	if *discoveryKey == "" {
		logger.Fatal("missing discovery-key (set DISCOVERY_API_KEY)")
	}
	if cfg.Discovery.BaseURL == "" {
		logger.Fatal("missing discovery.base_url in config")
	}

	ctx := context.Background()

	discoveryHTTP := oauth2.NewClient(ctx, oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: *discoveryKey},
	))
	discoveryHTTP.Timeout = cfg.Discovery.Timeout.Std()
	discoveryClient := &discovery.Client{
		HTTP:    discoveryHTTP,
		BaseURL: cfg.Discovery.BaseURL,
	}

	geocodeClient := &geocode.Client{
		HTTP:      &http.Client{Timeout: cfg.Geocode.Timeout.Std()},
		BaseURL:   cfg.Geocode.BaseURL,
		UserAgent: cfg.Geocode.UserAgent,
		Limiter:   rate.NewLimiter(rate.Limit(cfg.Geocode.RatePerSecond), cfg.Geocode.Burst),
	}

	svc := &service.Service{
		Store:     &store.FileStore{Dir: cfg.DataDir},
		Discovery: discoveryClient,
		Geocoder:  geocodeClient,

		Categories:        cfg.Search.Categories,
		MaxDistanceKM:     cfg.Search.MaxDistanceKM,
		EnrichWorkers:     cfg.Search.EnrichWorkers,
		CategoryWorkers:   cfg.Search.CategoryWorkers,
		DiscoveryAttempts: cfg.Discovery.Attempts,
		RetryBackoff:      cfg.Search.RetryBackoff.Std(),
		CallTimeout:       cfg.Discovery.Timeout.Std(),
	}

	cities := &places.CityIndex{Dir: cfg.CityDataDir}

	var handler http.Handler
	handler = rest.New(svc, cities)
	handler = log.WrapHandler(handler, logger)
	if len(cfg.CORSOrigins) > 0 {
		handler = handlers.CORS(
			handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS", "HEAD"}),
			handlers.AllowedOrigins(cfg.CORSOrigins),
		)(handler)
	}
	http.Handle("/", handler)

	http.Handle("/metrics", prom.Handler())

	logger.Info("listening", zap.String("addr", cfg.Listen), zap.String("dataDir", cfg.DataDir))
	if err := http.ListenAndServe(cfg.Listen, nil); err != nil {
		logger.Fatal("http server failed", zap.Error(err))
	}
}
