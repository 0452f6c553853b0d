package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	promgrpc "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	healthcheck "github.com/vladislavdragonenkov/menuboard/internal/health"
	"github.com/vladislavdragonenkov/menuboard/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/menuboard/internal/messaging/retry"
	"github.com/vladislavdragonenkov/menuboard/internal/metrics"
	"github.com/vladislavdragonenkov/menuboard/internal/service/catalog"
	grpcsvc "github.com/vladislavdragonenkov/menuboard/internal/service/grpc"
	"github.com/vladislavdragonenkov/menuboard/internal/service/httpapi"
	"github.com/vladislavdragonenkov/menuboard/internal/tracing"
	"github.com/vladislavdragonenkov/menuboard/internal/version"
)

const (
	publishBreakerFailures = 5
	publishBreakerReset    = 30 * time.Second
)

// Run поднимает gRPC, HTTP API и сервер метрик и блокируется до отмены ctx.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")
	if err := cfg.Validate(); err != nil {
		return err
	}

	deps, err := initRuntimeDependencies(ctx, cfg, logger.WithField("layer", "storage"))
	if err != nil {
		return err
	}
	defer deps.close(logger)

	tp, shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		ServiceName:    version.ServiceName,
		ServiceVersion: version.GetVersion(),
		Endpoint:       cfg.OTLPEndpoint,
		SampleRatio:    cfg.TraceSampleRatio,
	}, logger.WithField("layer", "tracing"))
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.WithError(err).Warn("failed to flush traces")
		}
	}()

	// Kafka необязательна: без неё события не публикуются, меню работает.
	producer, _ := initKafkaProducer(cfg.KafkaBrokers, logger.WithField("layer", "kafka"))
	defer closeKafka(producer, logger)

	healthHandler := healthcheck.NewHandler(version.ServiceName, version.GetVersion())
	if deps.storageChecker != nil {
		healthHandler.RegisterChecker("storage", deps.storageChecker)
	}

	options := []catalog.Option{
		catalog.WithLogger(logger.WithField("layer", "catalog")),
		catalog.WithMetrics(metrics.NewMenuMetrics()),
	}
	if producer != nil {
		kafkaLogger := logger.WithField("layer", "kafka")
		breaker := retry.NewCircuitBreaker(publishBreakerFailures, publishBreakerReset, kafkaLogger)
		publisher := retry.NewPublisher(
			kafka.NewMenuEventPublisher(producer, cfg.KafkaTopic),
			retry.DefaultConfig(),
			retry.WithBreaker(breaker),
			retry.WithLogger(kafkaLogger),
		)
		options = append(options, catalog.WithPublisher(publisher))
		healthHandler.RegisterChecker("kafka", healthcheck.DegradedChecker{Checker: breakerChecker(breaker)})
	}
	menuCatalog := catalog.New(deps.repo, options...)
	if err := menuCatalog.RefreshMetrics(ctx); err != nil {
		logger.WithError(err).Warn("failed to initialize menu metrics")
	}

	grpcServer, healthServer := newGRPCServer(menuCatalog, logger)

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)
	router := httpapi.NewRouter(
		httpapi.NewHandler(menuCatalog, logger.WithField("layer", "http")),
		tp.Tracer(version.ServiceName),
	)
	apiSrv := startHTTPServer(ctx, cfg.HTTPAddr, router, logger)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		shutdownHTTP(apiSrv, logger, cfg.ShutdownTimeout)
		shutdownHTTP(metricsSrv, logger, cfg.ShutdownTimeout)
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("gRPC сервер слушает %s", lis.Addr())
		errCh <- grpcServer.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем серверы")
		healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		stopGRPC(grpcServer, cfg.ShutdownTimeout, logger)
		shutdownHTTP(apiSrv, logger, cfg.ShutdownTimeout)
		shutdownHTTP(metricsSrv, logger, cfg.ShutdownTimeout)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(apiSrv, logger, cfg.ShutdownTimeout)
		shutdownHTTP(metricsSrv, logger, cfg.ShutdownTimeout)
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	}
}

// breakerChecker считает Kafka недоступной, пока breaker публикаций разомкнут.
func breakerChecker(breaker *retry.CircuitBreaker) *healthcheck.SimpleChecker {
	return healthcheck.NewSimpleChecker("kafka", func(context.Context) error {
		if state := breaker.State(); state == retry.CircuitOpen {
			return fmt.Errorf("menu event publisher circuit is %s", state)
		}
		return nil
	})
}

func newGRPCServer(menuCatalog *catalog.Catalog, logger *log.Entry) (*grpc.Server, *health.Server) {
	grpcMetrics := promgrpc.NewServerMetrics()
	if err := prometheus.Register(grpcMetrics); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok2 := are.ExistingCollector.(*promgrpc.ServerMetrics); ok2 {
				grpcMetrics = existing
			}
		} else {
			logger.WithError(err).Warn("failed to register grpc metrics")
		}
	}

	server := grpc.NewServer(grpc.ChainUnaryInterceptor(grpcMetrics.UnaryServerInterceptor()))
	grpcsvc.RegisterMenuServiceServer(server, grpcsvc.NewMenuService(menuCatalog, logger.WithField("layer", "grpc")))
	grpcMetrics.InitializeMetrics(server)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(grpcsvc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	// reflection для grpcurl
	reflection.Register(server)

	return server, healthServer
}

func stopGRPC(server *grpc.Server, timeout time.Duration, logger *log.Entry) {
	stopped := make(chan struct{})
	go func() {
		server.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(timeout):
		logger.Warn("graceful stop превысил таймаут, принудительно останавливаем")
		server.Stop()
	}
}

// startMetricsServer запускает /metrics и health-пробы.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	healthHandler.Register(mux)

	logger.Infof("health checks: %s/healthz, %s/readyz, %s/livez", addr, addr, addr)
	return startHTTPServer(ctx, addr, mux, logger)
}

// startHTTPServer слушает addr в фоне и останавливается вместе с ctx.
func startHTTPServer(ctx context.Context, addr string, handler http.Handler, logger *log.Entry) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Infof("HTTP сервер слушает %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).WithField("addr", addr).Warn("http server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger, 5*time.Second)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry, timeout time.Duration) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
