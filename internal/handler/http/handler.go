package http

import (
	"github.com/MKhiriev/go-ferrari-store/internal/config"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/service"
)

type Handler struct {
	services *service.Services

	server config.Server
	files  config.Files

	authLimiter *ipRateLimiter

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:    services,
		server:      cfg.Server,
		files:       cfg.Storage.Files,
		authLimiter: newIPRateLimiter(cfg.Server.AuthRateLimit, cfg.Server.AuthRateBurst),
		logger:      logger,
	}
}
