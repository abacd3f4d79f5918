package service

import (
	"context"

	"github.com/MKhiriev/go-ferrari-store/internal/config"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/models"
)

type appInfoService struct {
	appVersion string
	db         Pinger

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, db Pinger, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		db:         db,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

// CheckHealth pings the database. The service itself is "ok" whenever it can
// answer; Database reports "down" when the ping fails.
func (s *appInfoService) CheckHealth(ctx context.Context) models.HealthStatus {
	status := models.HealthStatus{Status: "ok", Database: "up"}
	if s.db == nil {
		status.Database = "unknown"
		return status
	}
	if err := s.db.Ping(ctx); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("database ping failed")
		status.Status = "degraded"
		status.Database = "down"
	}
	return status
}
