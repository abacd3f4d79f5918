// Package grpc exposes the storefront over gRPC. Only the standard
// grpc.health.v1 service is served; load balancers and orchestrators use it
// to decide whether the instance can take traffic.
package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/service"
)

// StorefrontService is the service name reported next to the overall ("")
// health status.
const StorefrontService = "ferrari.store.Storefront"

// defaultHealthCheckInterval is how often the database is pinged.
const defaultHealthCheckInterval = 15 * time.Second

// Handler is the root gRPC transport handler.
//
// It owns a health server whose status follows AppInfoService.CheckHealth.
// A handler instance is created once at startup and shared by the gRPC server.
type Handler struct {
	services *service.Services
	health   *health.Server

	checkInterval time.Duration

	logger *logger.Logger
}

// NewHandler constructs a [Handler]. The health status starts as
// NOT_SERVING until the first check in WatchHealth succeeds.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		services:      services,
		health:        health.NewServer(),
		checkInterval: defaultHealthCheckInterval,
		logger:        logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)

	return h
}

// Register attaches the served gRPC services to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// WatchHealth checks the service health immediately and then on every tick
// until ctx is cancelled. On return every status is NOT_SERVING and later
// updates are ignored.
func (h *Handler) WatchHealth(ctx context.Context) {
	h.checkHealth(ctx)

	ticker := time.NewTicker(h.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.health.Shutdown()
			h.logger.Info().Msg("gRPC health watcher stopped")
			return
		case <-ticker.C:
			h.checkHealth(ctx)
		}
	}
}

func (h *Handler) checkHealth(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING

	report := h.services.AppInfoService.CheckHealth(ctx)
	if report.Status != "ok" {
		h.logger.Warn().Str("database", report.Database).Msg("storefront is not serving")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.setStatus(status)
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(StorefrontService, status)
}
