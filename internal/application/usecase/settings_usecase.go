package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/dmreyes/repuestos-api/internal/domain"
	"github.com/dmreyes/repuestos-api/internal/domain/entity"
	"github.com/dmreyes/repuestos-api/internal/domain/repository"
)

// SettingsUseCase maneja la tasa de cambio Bs/USD. La tasa se persiste en
// settings y se pasa explícita a quien calcula precios; el ledger de stock no
// la conoce.
type SettingsUseCase struct {
	settingRepo repository.SettingRepository
	productRepo repository.ProductRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(settingRepo repository.SettingRepository, productRepo repository.ProductRepository) *SettingsUseCase {
	return &SettingsUseCase{settingRepo: settingRepo, productRepo: productRepo}
}

// GetExchangeRate devuelve la tasa vigente; 1.0 si nunca se configuró.
func (uc *SettingsUseCase) GetExchangeRate() (decimal.Decimal, error) {
	s, err := uc.settingRepo.Get(entity.SettingExchangeRate)
	if err != nil {
		return decimal.Zero, err
	}
	if s == nil || s.Value == "" {
		return decimal.NewFromInt(1), nil
	}
	return decimal.NewFromString(s.Value)
}

// UpdateExchangeRate persiste la nueva tasa y recalcula price_bs de todo el
// catálogo a partir de price_usd.
func (uc *SettingsUseCase) UpdateExchangeRate(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return domain.NewValidationError("la tasa de cambio debe ser mayor a 0")
	}
	if err := uc.settingRepo.Upsert(&entity.Setting{
		Key:   entity.SettingExchangeRate,
		Value: rate.String(),
	}); err != nil {
		return err
	}
	return uc.productRepo.RecalcPricesBs(rate)
}
