package usecase

import (
	"context"
	"time"

	"github.com/dmreyes/repuestos-api/internal/application/dto"
	"github.com/dmreyes/repuestos-api/internal/domain/entity"
	"github.com/dmreyes/repuestos-api/internal/domain/repository"
)

// Ventana por defecto para considerar un producto sin rotación.
const defaultNoRotationDays = 60

// DashboardCache cachea el resumen del dashboard (las consultas agregadas son
// las más pesadas del sistema). Una implementación noop sirve cuando no hay
// Redis disponible.
type DashboardCache interface {
	Get(ctx context.Context, key string) (*dto.DashboardResponse, bool, error)
	Set(ctx context.Context, key string, value *dto.DashboardResponse, ttl time.Duration) error
}

const dashboardCacheKey = "dashboard:summary"
const dashboardCacheTTL = time.Minute

// DashboardUseCase arma el resumen: productos con stock bajo y conteo de
// productos sin rotación.
type DashboardUseCase struct {
	productRepo   repository.ProductRepository
	analyticsRepo repository.AnalyticsRepository
	cache         DashboardCache
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(productRepo repository.ProductRepository, analyticsRepo repository.AnalyticsRepository, cache DashboardCache) *DashboardUseCase {
	return &DashboardUseCase{productRepo: productRepo, analyticsRepo: analyticsRepo, cache: cache}
}

// Summary devuelve el resumen, sirviendo del cache cuando hay hit. Un error
// del cache no tumba el dashboard: se recalcula de la BD.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	if cached, ok, err := uc.cache.Get(ctx, dashboardCacheKey); err == nil && ok {
		return cached, nil
	}

	lowStock, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().AddDate(0, 0, -defaultNoRotationDays)
	noRotation, err := uc.analyticsRepo.CountNoRotation(cutoff)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		LowStockProducts: make([]dto.ProductResponse, 0, len(lowStock)),
		NoRotationCount:  noRotation,
	}
	for _, p := range lowStock {
		resp.LowStockProducts = append(resp.LowStockProducts, ToProductResponse(p))
	}

	_ = uc.cache.Set(ctx, dashboardCacheKey, resp, dashboardCacheTTL)
	return resp, nil
}

// ToProductResponse mapea la entidad al DTO de respuesta.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Quantity:      p.Quantity,
		PriceBs:       p.PriceBs,
		PriceUSD:      p.PriceUSD,
		CategoryID:    p.CategoryID,
		PartNumber:    p.PartNumber,
		Manufacturer:  p.Manufacturer,
		Brand:         p.Brand,
		VehicleType:   p.VehicleType,
		Compatibility: p.Compatibility,
		Location:      p.Location,
		MinStock:      p.MinStock,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
