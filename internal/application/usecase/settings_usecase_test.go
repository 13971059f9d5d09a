package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmreyes/repuestos-api/internal/application/dto"
	"github.com/dmreyes/repuestos-api/internal/application/usecase"
	"github.com/dmreyes/repuestos-api/internal/domain"
	"github.com/dmreyes/repuestos-api/internal/domain/entity"
	"github.com/dmreyes/repuestos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memSettingRepo struct {
	values map[string]string
}

func newMemSettingRepo() *memSettingRepo { return &memSettingRepo{values: make(map[string]string)} }

func (r *memSettingRepo) Get(key string) (*entity.Setting, error) {
	v, ok := r.values[key]
	if !ok {
		return nil, nil
	}
	return &entity.Setting{Key: key, Value: v}, nil
}

func (r *memSettingRepo) Upsert(s *entity.Setting) error {
	r.values[s.Key] = s.Value
	return nil
}

// recalcProductRepo registra las tasas con las que se pidió recalcular.
type recalcProductRepo struct {
	recalcRates []decimal.Decimal
	lowStock    []*entity.Product
}

func (r *recalcProductRepo) Create(*entity.Product) error                 { return nil }
func (r *recalcProductRepo) GetByID(string) (*entity.Product, error)      { return nil, nil }
func (r *recalcProductRepo) GetForUpdate(string) (*entity.Product, error) { return nil, nil }
func (r *recalcProductRepo) Update(*entity.Product) error                 { return nil }
func (r *recalcProductRepo) UpdateQuantity(string, int) error             { return nil }

func (r *recalcProductRepo) RecalcPricesBs(rate decimal.Decimal) error {
	r.recalcRates = append(r.recalcRates, rate)
	return nil
}

func (r *recalcProductRepo) List(bool) ([]*entity.Product, error)     { return nil, nil }
func (r *recalcProductRepo) Search(string) ([]*entity.Product, error) { return nil, nil }
func (r *recalcProductRepo) ListLowStock() ([]*entity.Product, error) { return r.lowStock, nil }
func (r *recalcProductRepo) Deactivate(string) error                  { return nil }

type countAnalyticsRepo struct {
	noRotation int
	calls      int
}

func (r *countAnalyticsRepo) SalesTotalsByDay(_, _ time.Time) ([]repository.DailySalesTotal, error) {
	return nil, nil
}

func (r *countAnalyticsRepo) NoRotationProducts(time.Time) ([]repository.NoRotationProduct, error) {
	return nil, nil
}

func (r *countAnalyticsRepo) CountNoRotation(time.Time) (int, error) {
	r.calls++
	return r.noRotation, nil
}

// memDashboardCache cache en memoria para verificar hits y misses.
type memDashboardCache struct {
	stored *dto.DashboardResponse
	hits   int
}

func (c *memDashboardCache) Get(context.Context, string) (*dto.DashboardResponse, bool, error) {
	if c.stored == nil {
		return nil, false, nil
	}
	c.hits++
	return c.stored, true, nil
}

func (c *memDashboardCache) Set(_ context.Context, _ string, v *dto.DashboardResponse, _ time.Duration) error {
	c.stored = v
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// SettingsUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestGetExchangeRate_SinConfigurar_DevuelveUno(t *testing.T) {
	uc := usecase.NewSettingsUseCase(newMemSettingRepo(), &recalcProductRepo{})

	rate, err := uc.GetExchangeRate()
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(1)))
}

func TestUpdateExchangeRate_PersisteYRecalcula(t *testing.T) {
	settings := newMemSettingRepo()
	products := &recalcProductRepo{}
	uc := usecase.NewSettingsUseCase(settings, products)

	nueva := decimal.NewFromFloat(36.5)
	require.NoError(t, uc.UpdateExchangeRate(nueva))

	// Tasa persistida
	rate, err := uc.GetExchangeRate()
	require.NoError(t, err)
	assert.True(t, rate.Equal(nueva))

	// Recalculo del catálogo disparado con la misma tasa
	require.Len(t, products.recalcRates, 1)
	assert.True(t, products.recalcRates[0].Equal(nueva))
}

func TestUpdateExchangeRate_RechazaCeroYNegativa(t *testing.T) {
	uc := usecase.NewSettingsUseCase(newMemSettingRepo(), &recalcProductRepo{})

	assert.ErrorIs(t, uc.UpdateExchangeRate(decimal.Zero), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.UpdateExchangeRate(decimal.NewFromInt(-5)), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// DashboardUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboardSummary_CalculaYCachea(t *testing.T) {
	products := &recalcProductRepo{lowStock: []*entity.Product{
		{ID: "p1", Name: "Filtro de aceite", Quantity: 1, MinStock: 5, IsActive: true},
	}}
	analytics := &countAnalyticsRepo{noRotation: 3}
	cache := &memDashboardCache{}
	uc := usecase.NewDashboardUseCase(products, analytics, cache)

	out, err := uc.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, out.LowStockProducts, 1)
	assert.Equal(t, "Filtro de aceite", out.LowStockProducts[0].Name)
	assert.Equal(t, 3, out.NoRotationCount)
	assert.Equal(t, 1, analytics.calls)
	require.NotNil(t, cache.stored, "el resumen debe quedar cacheado")

	// Segunda consulta: sirve del cache, no vuelve a la BD
	out2, err := uc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, out.NoRotationCount, out2.NoRotationCount)
	assert.Equal(t, 1, analytics.calls, "con cache hit no se consulta la BD")
	assert.Equal(t, 1, cache.hits)
}
