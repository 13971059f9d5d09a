package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmreyes/repuestos-api/internal/domain"
	"github.com/dmreyes/repuestos-api/internal/domain/entity"
	"github.com/dmreyes/repuestos-api/internal/domain/repository"
)

// SalesSummary resumen de ventas para el listado: hoy y mes en curso.
type SalesSummary struct {
	TodayTotalUSD decimal.Decimal
	MonthTotalUSD decimal.Decimal
	MonthCount    int
}

// SalesQueryUseCase consultas de ventas (listado, detalle, resumen).
type SalesQueryUseCase struct {
	saleRepo repository.SaleRepository
}

// NewSalesQueryUseCase construye el caso de uso.
func NewSalesQueryUseCase(saleRepo repository.SaleRepository) *SalesQueryUseCase {
	return &SalesQueryUseCase{saleRepo: saleRepo}
}

// List devuelve ventas paginadas, más recientes primero.
func (uc *SalesQueryUseCase) List(limit, offset int) ([]*entity.Sale, error) {
	return uc.saleRepo.List(limit, offset)
}

// GetByID devuelve la venta con sus items.
func (uc *SalesQueryUseCase) GetByID(id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// Summary calcula totales del día y del mes en curso en USD.
func (uc *SalesQueryUseCase) Summary(now time.Time) (*SalesSummary, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	salesOfMonth, err := uc.saleRepo.ListSince(monthStart)
	if err != nil {
		return nil, err
	}
	summary := &SalesSummary{
		TodayTotalUSD: decimal.Zero,
		MonthTotalUSD: decimal.Zero,
	}
	y, m, d := now.Date()
	for _, s := range salesOfMonth {
		summary.MonthTotalUSD = summary.MonthTotalUSD.Add(s.TotalUSD)
		summary.MonthCount++
		sy, sm, sd := s.Date.Date()
		if sy == y && sm == m && sd == d {
			summary.TodayTotalUSD = summary.TodayTotalUSD.Add(s.TotalUSD)
		}
	}
	return summary, nil
}
