package cache

import (
	"context"
	"time"

	"github.com/dmreyes/repuestos-api/internal/application/dto"
	"github.com/dmreyes/repuestos-api/internal/application/usecase"
)

var _ usecase.DashboardCache = (*NoopDashboardCache)(nil)

// NoopDashboardCache se usa cuando no hay Redis configurado: todo es miss.
type NoopDashboardCache struct{}

// NewNoopDashboardCache construye el cache noop.
func NewNoopDashboardCache() *NoopDashboardCache { return &NoopDashboardCache{} }

func (*NoopDashboardCache) Get(context.Context, string) (*dto.DashboardResponse, bool, error) {
	return nil, false, nil
}

func (*NoopDashboardCache) Set(context.Context, string, *dto.DashboardResponse, time.Duration) error {
	return nil
}
