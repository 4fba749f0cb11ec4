package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/practice-dashboard/config"
	"github.com/jwalitptl/practice-dashboard/internal/handler/assignment"
	"github.com/jwalitptl/practice-dashboard/internal/handler/dashboard"
	"github.com/jwalitptl/practice-dashboard/internal/handler/evolution"
	"github.com/jwalitptl/practice-dashboard/internal/handler/health"
	"github.com/jwalitptl/practice-dashboard/internal/handler/instrument"
	"github.com/jwalitptl/practice-dashboard/internal/handler/instrumenttype"
	"github.com/jwalitptl/practice-dashboard/internal/handler/me"
	"github.com/jwalitptl/practice-dashboard/internal/handler/patient"
	"github.com/jwalitptl/practice-dashboard/internal/handler/program"
	promhandler "github.com/jwalitptl/practice-dashboard/internal/handler/prometheus"
	"github.com/jwalitptl/practice-dashboard/internal/middleware"
	"github.com/jwalitptl/practice-dashboard/internal/router"
	"github.com/jwalitptl/practice-dashboard/internal/store"
	"github.com/jwalitptl/practice-dashboard/pkg/backend"
	"github.com/jwalitptl/practice-dashboard/pkg/logger"
	"github.com/jwalitptl/practice-dashboard/pkg/messaging"
	"github.com/jwalitptl/practice-dashboard/pkg/messaging/redis"
	"github.com/jwalitptl/practice-dashboard/pkg/metrics"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	level := logger.ParseLevel(cfg.Log.Level)
	gin.SetMode(gin.ReleaseMode)
	log := logger.NewZerolog(&logger.Config{Level: level})
	sugar, err := logger.NewSugared(level)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build service logger")
	}
	defer func() { _ = sugar.Sync() }()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(cfg.Monitoring.Namespace, "", registry)

	client := backend.NewClient(cfg.ToBackendConfig(), backend.WithMetrics(m))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := store.Options{TopicTTL: cfg.Cache.TopicTTL, Metrics: m}
	var broker messaging.Broker
	var publisher *messaging.ChannelPublisher
	if cfg.Redis.URL != "" {
		broker, err = redis.NewRedisBroker(ctx, cfg.Redis.ToBrokerConfig(), log.With().Str("component", "redis").Logger())
		if err != nil {
			log.Warn().Err(err).Msg("change events disabled")
		} else {
			defer broker.Close()
			publisher = messaging.NewChannelPublisher(broker, cfg.Redis.Channel)
			opts.Events = store.NewBrokerEvents(publisher)
		}
	}

	s := store.New(client, sugar.Named("store"), opts)
	report := s.Load(ctx)
	log.Info().
		Str("patients", report.Patients).
		Str("programs", report.Programs).
		Str("instruments", report.Instruments).
		Str("instrument_types", report.InstrumentTypes).
		Str("stats", report.Stats).
		Str("backend", client.BaseURL()).
		Msg("store loaded")

	if publisher != nil {
		reloads := make(chan struct{}, 1)
		go reloadOnChanges(ctx, s, reloads, log)
		err := messaging.Consume(ctx, broker, cfg.Redis.Channel, publisher.Source(), log, func(msg messaging.Message) error {
			select {
			case reloads <- struct{}{}:
			default:
			}
			return nil
		})
		if err != nil {
			log.Warn().Err(err).Msg("not following changes from other instances")
		}
	}

	if err := middleware.RegisterBindingRules(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validation rules")
	}

	var httpMetrics, metricsEndpoint gin.HandlerFunc
	if cfg.Monitoring.PrometheusEnabled {
		ph := promhandler.New(registry, cfg.Monitoring.Namespace)
		httpMetrics, metricsEndpoint = ph.Middleware(), ph.Handler()
	}

	r := router.NewRouter(log, middleware.NewAuthMiddleware(cfg.JWT.Secret), httpMetrics, router.RouterConfig{
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:        cfg.RateLimit.Burst,
		CORSConfig:       middleware.DefaultCORSConfig(cfg.Security.AllowedOrigins...),
		RequestTimeout:   cfg.Server.RequestTimeout,
		MaxBodySize:      cfg.Server.MaxBodyBytes,
		HSTSMaxAge:       cfg.Security.HSTSMaxAge,
	})
	r.Public(health.NewHandler(map[string]health.Check{
		"store": func() error {
			if s.LoadedAt().IsZero() {
				return errors.New("store not loaded")
			}
			return nil
		},
		"backend": func() error {
			if state := client.BreakerState(); state == "open" {
				return fmt.Errorf("backend circuit %s", state)
			}
			return nil
		},
	}, metricsEndpoint))
	r.Protected(
		me.NewHandler(),
		dashboard.NewHandler(s),
		patient.NewHandler(s),
		evolution.NewHandler(s),
		instrument.NewHandler(s),
		instrumenttype.NewHandler(s),
		program.NewHandler(s),
		assignment.NewHandler(s),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

// reloadOnChanges re-runs the bootstrap whenever another instance reports a
// mutation. Bursts of events collapse into one reload.
func reloadOnChanges(ctx context.Context, s *store.Store, reloads <-chan struct{}, log zerolog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-reloads:
			loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			report := s.Load(loadCtx)
			cancel()
			log.Debug().Interface("report", report).Msg("store reloaded after remote change")
		}
	}
}
