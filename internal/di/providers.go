package di

import (
	"fmt"
	"net/http"

	"GearValue/internal/catalog"
	"GearValue/internal/domain/repository"
	"GearValue/internal/handler/api"
	internalrepo "GearValue/internal/repository"
	"GearValue/internal/scheduler"
	"GearValue/internal/service/wiki"
	"GearValue/internal/usecase"
	"GearValue/pkg/cache"
	"GearValue/pkg/config"
	xhttp "GearValue/pkg/http"
	pkgkafka "GearValue/pkg/kafka"
	applogger "GearValue/pkg/logger"
	"GearValue/pkg/metrics"
	"GearValue/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder on the default registry.
func ProvideMetrics(cfg *config.Config) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.Nop{}
	}
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvideHTTPClient creates the shared upstream HTTP client. Fan-out hits a
// single host, so the idle pool is sized to keep those connections warm.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if n := cfg.Prices.MaxConnsPerHost; n > 0 {
		tr.MaxIdleConnsPerHost = n
		tr.MaxConnsPerHost = n
	}
	return xhttp.NewClient(
		xhttp.WithTransport(tr),
		xhttp.WithTimeout(cfg.Prices.Timeout),
		xhttp.WithUserAgent(cfg.Prices.UserAgent),
		xhttp.WithHeader("Accept", "application/json"),
	)
}

// ProvideWikiClient creates the prices API client.
func ProvideWikiClient(cfg *config.Config, hc *xhttp.Client, m repository.Metrics) *wiki.Client {
	return wiki.New(cfg.Prices.LatestURL, cfg.Prices.TimeseriesURL, hc, m)
}

// ProvideCache creates the configured cache backend. It returns nil for "none".
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Backend {
	case "memory":
		return cache.NewMemoryCache(
			cache.WithMemoryMaxSize(cfg.Cache.MaxEntries),
			cache.WithMemoryCleanup(cfg.Cache.CleanupInterval),
		), nil
	case "redis":
		rc, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
			cache.WithRedisPool(cfg.Cache.Redis.PoolSize, cfg.Cache.Redis.MinIdleConns, cfg.Cache.Redis.PoolTimeout),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return cache.NewLayeredCache(rc,
			cache.WithLayeredMemorySize(cfg.Cache.MaxEntries),
			cache.WithLayeredMemoryTTL(cfg.Cache.LatestTTL),
		), nil
	default:
		return nil, nil
	}
}

// ProvidePriceSource puts the cache, when one is configured, in front of the wiki client.
func ProvidePriceSource(cfg *config.Config, client *wiki.Client, c cache.Service, l *applogger.Logger) repository.PriceSource {
	if c == nil {
		return client
	}
	return internalrepo.NewCachedSource(client, c, cfg.Cache.LatestTTL, cfg.Cache.TimeseriesTTL,
		l.With(applogger.String("component", "price_cache")))
}

// ProvideCatalog loads the item catalog file.
func ProvideCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	return catalog.Load(cfg.Catalog.File, cfg.Catalog.Name)
}

func ProvideValuationUseCase(src repository.PriceSource, cat *catalog.Catalog, m repository.Metrics) *usecase.ValuationUseCase {
	return usecase.NewValuationUseCase(src, cat, m)
}

func ProvideTimeseriesUseCase(src repository.PriceSource, cat *catalog.Catalog, m repository.Metrics) *usecase.TimeseriesUseCase {
	return usecase.NewTimeseriesUseCase(src, cat, m)
}

// ProvideHTTPHandler creates the echo route handler.
func ProvideHTTPHandler(l *applogger.Logger, v *usecase.ValuationUseCase, ts *usecase.TimeseriesUseCase, cat *catalog.Catalog) xhttp.Handler {
	return api.NewPricesEchoHandler(l, v, ts, cat.Items())
}

// ProvideHTTPServer creates the HTTP server.
func ProvideHTTPServer(cfg *config.Config, h xhttp.Handler, l *applogger.Logger) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithLogger(l),
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.CORS.Origins, cfg.CORS.AllowCredentials),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(cfg.Metrics.Path, cfg.Server.SlowRequest))
	}
	return xhttp.NewServer(h, opts...)
}

// ProvideSnapshotPublisher creates the configured snapshot publisher.
func ProvideSnapshotPublisher(cfg *config.Config, l *applogger.Logger) (repository.SnapshotPublisher, error) {
	if cfg.Snapshot.Publisher != "kafka" {
		return internalrepo.NewLogSnapshotPublisher(l), nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Snapshot.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Snapshot.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Snapshot.Kafka.RequiredAcks),
		pkgkafka.WithWriteTimeout(cfg.Snapshot.Kafka.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaSnapshotPublisher(producer, cfg.Snapshot.Kafka.Topic), nil
}

// ProvideScheduler creates the snapshot scheduler and registers its job.
func ProvideScheduler(cfg *config.Config, v *usecase.ValuationUseCase, pub repository.SnapshotPublisher, l *applogger.Logger) (*scheduler.Scheduler, error) {
	s := scheduler.New(v, pub, cfg.Prices.Timeout*2, l.With(applogger.String("component", "scheduler")))
	if err := s.Register(cfg.Snapshot.Schedule); err != nil {
		return nil, err
	}
	return s, nil
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	srv *xhttp.Server,
	sched *scheduler.Scheduler,
	pub repository.SnapshotPublisher,
	c cache.Service,
	l *applogger.Logger,
) *server.App {
	app := server.New(srv, sched, cfg.Server.ShutdownTimeout, l)
	if c != nil {
		app.AddCloser("cache", c)
	}
	app.AddCloser("snapshot publisher", pub)
	return app
}
