package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"nucdash/internal/config"
	"nucdash/pkg/contracts"
	"nucdash/pkg/contracts/domain"
)

// DatasetProvider exposes what the health checks need from the dashboard.
type DatasetProvider interface {
	Views() []domain.ViewInfo
	Dataset() (domain.DatasetInfo, error)
}

// HealthService provides health check functionality
type HealthService struct {
	dataset   DatasetProvider
	paths     *config.Paths
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   map[string]any           `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual component health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// VersionResponse is build information plus process uptime
type VersionResponse struct {
	contracts.VersionInfo
	StartTime     time.Time `json:"start_time"`
	UptimeSeconds float64   `json:"uptime_seconds"`
}

// NewHealthService creates a health service. paths may be nil, in which case the
// directory check is skipped.
func NewHealthService(dataset DatasetProvider, paths *config.Paths, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		dataset:   dataset,
		paths:     paths,
		startTime: time.Now(),
		logger:    logger.With(slog.String("service", "health")),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   contracts.Version,
	}
}

// ReadinessCheck reports whether the views are prepared and the output
// directories exist.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Services: map[string]ServiceHealth{
			"dataset":     hs.checkDataset(),
			"directories": hs.checkDirectories(),
		},
	}

	for name, sh := range status.Services {
		if sh.Status != "ready" {
			status.Status = "not_ready"
			hs.logger.WarnContext(ctx, "component not ready",
				slog.String("component", name),
				slog.String("message", sh.Message))
		}
	}
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Runtime: map[string]any{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() VersionResponse {
	return VersionResponse{
		VersionInfo:   contracts.GetVersionInfo(),
		StartTime:     hs.startTime,
		UptimeSeconds: time.Since(hs.startTime).Seconds(),
	}
}

func (hs *HealthService) checkDataset() ServiceHealth {
	if hs.dataset == nil {
		return ServiceHealth{Status: "not_ready", Message: "dataset not loaded"}
	}
	info, err := hs.dataset.Dataset()
	if err != nil {
		return ServiceHealth{Status: "not_ready", Message: err.Error()}
	}

	msg := fmt.Sprintf("%d source rows", info.SourceRows)
	for _, v := range hs.dataset.Views() {
		msg += fmt.Sprintf(", %s %d rows", v.Name, v.Rows)
	}
	return ServiceHealth{Status: "ready", Message: msg}
}

func (hs *HealthService) checkDirectories() ServiceHealth {
	if hs.paths == nil {
		return ServiceHealth{Status: "ready", Message: "no output directories configured"}
	}
	for _, dir := range []string{hs.paths.ChartsDir, hs.paths.ExportsDir} {
		if _, err := os.Stat(dir); err != nil {
			return ServiceHealth{Status: "not_ready", Message: fmt.Sprintf("directory unavailable: %s", dir)}
		}
	}
	return ServiceHealth{Status: "ready"}
}
