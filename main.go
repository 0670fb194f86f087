package main

import (
	"context"
	"net/http"

	handler "github.com/felipemarinho97/webshare-stremio/api"
	"github.com/felipemarinho97/webshare-stremio/cache"
	"github.com/felipemarinho97/webshare-stremio/config"
	"github.com/felipemarinho97/webshare-stremio/logging"
	"github.com/felipemarinho97/webshare-stremio/monitoring"
	"github.com/felipemarinho97/webshare-stremio/requester"
	"github.com/felipemarinho97/webshare-stremio/resolver"
	"github.com/felipemarinho97/webshare-stremio/webshare"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	dotEnvErr := config.LoadDotEnv()
	logging.InitLogger()
	if dotEnvErr != nil {
		logging.Debug().Err(dotEnvErr).Msg("No .env file loaded")
	}
	cfg := config.Load()

	redis := cache.NewRedis(cfg.RedisHost)
	defer redis.Close()
	if err := redis.Ping(context.Background()); err != nil {
		logging.Warn().Err(err).Str("host", cfg.RedisHost).Msg("Redis unavailable, searches will not be cached")
	}
	metrics := monitoring.NewMetrics()
	metrics.Register()

	req := requester.NewRequester(redis, metrics)
	req.SetShortLivedCacheExpiration(cfg.SearchCacheTTL)

	client := webshare.NewClient(req, webshare.Config{
		BaseURL:          cfg.WebshareAPIURL,
		SearchLimit:      cfg.SearchLimit,
		FileLinkAttempts: cfg.FileLinkAttempts,
	})
	res := resolver.NewResolver(client, metrics, cfg.PublicURL, cfg.MaxResults)

	router := handler.NewRouter(handler.NewHandler(res, client, metrics))

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	go func() {
		logging.Info().Str("port", cfg.MetricsPort).Msg("Serving metrics")
		err := http.ListenAndServe(":"+cfg.MetricsPort, metricsMux)
		if err != nil {
			logging.Fatal().Err(err).Msg("Metrics server stopped")
		}
	}()

	logging.Info().Str("port", cfg.Port).Str("public_url", cfg.PublicURL).Msg("Serving API")
	err := http.ListenAndServe(":"+cfg.Port, router)
	if err != nil {
		logging.Fatal().Err(err).Msg("API server stopped")
	}
}
