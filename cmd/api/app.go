package main

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"blog-showcase/cmd/api/cache"
	"blog-showcase/cmd/api/clients/blogclient"
	"blog-showcase/cmd/api/enrich"
	"blog-showcase/cmd/api/httpclient"
	"blog-showcase/cmd/api/metrics"
	"blog-showcase/cmd/api/router"
	"blog-showcase/cmd/api/services"
	"blog-showcase/config"
)

// app 은 설정으로부터 조립된 서비스 그래프다.
type app struct {
	posts   *services.PostService
	filters *services.FilterService
	metrics *metrics.Metrics
	closers []func() error
}

func buildApp(cfg config.AppConfig, m *metrics.Metrics) (*app, error) {
	a := &app{metrics: m}

	upstreamHTTP := httpclient.New(httpclient.Config{Timeout: cfg.Upstream.Timeout, Name: "upstream"})
	var source blogclient.Source = blogclient.New(cfg.Upstream.BaseURL, upstreamHTTP).WithMetrics(m)

	store, err := a.buildCache(cfg.Cache)
	if err != nil {
		return nil, err
	}
	if store != nil {
		source = blogclient.NewCachedClient(source, store, m)
	}

	imageHTTP := httpclient.New(httpclient.Config{Timeout: cfg.Enrichment.ImageTimeout, Name: "image"})
	validator := enrich.NewHTTPImageValidator(imageHTTP, cfg.Enrichment.ImageTimeout, m)
	enricher := enrich.NewDefault(validator,
		enrich.WithFallbackImage(cfg.Enrichment.FallbackImage),
		enrich.WithConcurrency(cfg.Enrichment.MaxConcurrency),
		enrich.WithMetrics(m),
	)

	a.posts = services.NewPostService(source, enricher)
	a.filters = services.NewFilterService(a.posts)
	return a, nil
}

// buildCache 는 cache.backend 에 맞는 저장소를 만든다. "none" 이면 nil 을 반환한다.
func (a *app) buildCache(cfg config.CacheConfig) (cache.Store, error) {
	if cfg.TTL < 0 {
		return nil, nil
	}
	switch cfg.Backend {
	case "", "memory":
		return cache.NewMemory(cfg.Size, cfg.TTL), nil
	case "none":
		return nil, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.closers = append(a.closers, client.Close)
		return cache.NewRedis(client, cfg.Redis.Prefix, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

func (a *app) Deps(cfg config.AppConfig) router.Deps {
	return router.Deps{
		Posts:          a.posts,
		Filters:        a.filters,
		Metrics:        a.metrics,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
}

func (a *app) Close() {
	for _, c := range a.closers {
		_ = c()
	}
}
