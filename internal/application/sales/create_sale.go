package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmreyes/repuestos-api/internal/application/dto"
	"github.com/dmreyes/repuestos-api/internal/application/inventory"
	"github.com/dmreyes/repuestos-api/internal/domain"
	"github.com/dmreyes/repuestos-api/internal/domain/entity"
	"github.com/dmreyes/repuestos-api/internal/domain/repository"
)

// CreateSaleUseCase registra una venta: descuenta stock por cada línea vía el
// ledger y persiste cabecera e items, todo en una sola transacción. Si
// cualquier línea falla (ej. stock insuficiente) la venta completa se
// revierte.
type CreateSaleUseCase struct {
	txRunner    SaleTxRunner
	ledger      *inventory.StockLedgerUseCase
	settingRepo repository.SettingRepository
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(txRunner SaleTxRunner, ledger *inventory.StockLedgerUseCase, settingRepo repository.SettingRepository) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner, ledger: ledger, settingRepo: settingRepo}
}

// CreateSale ejecuta el checkout. La tasa Bs/USD se lee una vez y se pasa
// explícita al cálculo de precios: los snapshots de las líneas quedan
// congelados a esa tasa.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*entity.Sale, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("no hay items en la venta")
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.NewValidationError("cada línea requiere producto y cantidad mayor a 0")
		}
	}

	rate, err := currentRate(uc.settingRepo)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:       uuid.New().String(),
		Date:     now,
		TotalBs:  decimal.Zero,
		TotalUSD: decimal.Zero,
		UserID:   userID,
	}

	err = uc.txRunner.RunSale(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		if err := saleRepo.CreateHeader(sale); err != nil {
			return err
		}
		for _, item := range in.Items {
			product, err := productRepo.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil || !product.IsActive {
				return domain.ErrNotFound
			}
			// Descuento de stock vía el ledger, misma transacción.
			if _, err := uc.ledger.RemoveStockInTx(
				movRepo, productRepo,
				product.ID, item.Quantity,
				fmt.Sprintf("Venta #%s", sale.ID), userID,
			); err != nil {
				return err
			}

			priceUSD := product.PriceUSD
			priceBs := priceUSD.Mul(rate)
			saleItem := &entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				PriceBs:     priceBs,
				PriceUSD:    priceUSD,
			}
			if err := saleRepo.CreateItem(saleItem); err != nil {
				return err
			}
			sale.Items = append(sale.Items, saleItem)

			qty := decimal.NewFromInt(int64(item.Quantity))
			sale.TotalBs = sale.TotalBs.Add(priceBs.Mul(qty))
			sale.TotalUSD = sale.TotalUSD.Add(priceUSD.Mul(qty))
		}
		return saleRepo.UpdateTotals(sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// currentRate lee la tasa de cambio persistida; 1.0 si nunca se configuró.
func currentRate(settingRepo repository.SettingRepository) (decimal.Decimal, error) {
	s, err := settingRepo.Get(entity.SettingExchangeRate)
	if err != nil {
		return decimal.Zero, err
	}
	if s == nil || s.Value == "" {
		return decimal.NewFromInt(1), nil
	}
	rate, err := decimal.NewFromString(s.Value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("tasa de cambio corrupta en settings: %w", err)
	}
	return rate, nil
}
