package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmreyes/repuestos-api/internal/application/dto"
	"github.com/dmreyes/repuestos-api/internal/application/inventory"
	"github.com/dmreyes/repuestos-api/internal/domain"
	"github.com/dmreyes/repuestos-api/internal/domain/entity"
	"github.com/dmreyes/repuestos-api/internal/domain/repository"
)

// ProductUseCase CRUD de catálogo. Nunca escribe Quantity directo: el stock
// inicial y cualquier corrección pasan por el ledger.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	settingRepo repository.SettingRepository
	ledger      *inventory.StockLedgerUseCase
	txRunner    inventory.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, settingRepo repository.SettingRepository, ledger *inventory.StockLedgerUseCase, txRunner inventory.TxRunner) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, settingRepo: settingRepo, ledger: ledger, txRunner: txRunner}
}

// Create da de alta un producto y, si hay stock inicial, registra la 'entrada'
// a nombre del usuario que crea. Fila y movimiento van en la misma
// transacción: si el movimiento falla no queda producto huérfano.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	rate, err := uc.currentRate()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Quantity:      0,
		PriceUSD:      in.PriceUSD,
		PriceBs:       in.PriceUSD.Mul(rate),
		CategoryID:    in.CategoryID,
		PartNumber:    in.PartNumber,
		Manufacturer:  in.Manufacturer,
		Brand:         in.Brand,
		VehicleType:   in.VehicleType,
		Compatibility: in.Compatibility,
		Location:      in.Location,
		MinStock:      in.MinStock,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if in.InitialStock > 0 {
			if _, err := uc.ledger.AddStockInTx(movRepo, productRepo, product.ID, in.InitialStock, "Stock inicial del producto", userID); err != nil {
				return err
			}
			product.Quantity = in.InitialStock
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Update modifica datos de catálogo. Quantity no se toca; PriceBs se
// recalcula con la tasa vigente.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	rate, err := uc.currentRate()
	if err != nil {
		return nil, err
	}
	product.Name = in.Name
	product.PriceUSD = in.PriceUSD
	product.PriceBs = in.PriceUSD.Mul(rate)
	product.CategoryID = in.CategoryID
	product.PartNumber = in.PartNumber
	product.Manufacturer = in.Manufacturer
	product.Brand = in.Brand
	product.VehicleType = in.VehicleType
	product.Compatibility = in.Compatibility
	product.Location = in.Location
	product.MinStock = in.MinStock
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// List lista productos activos; con query hace búsqueda por nombre, número
// de parte, fabricante o compatibilidad.
func (uc *ProductUseCase) List(query string) ([]*entity.Product, error) {
	if query != "" {
		return uc.productRepo.Search(query)
	}
	return uc.productRepo.List(true)
}

// Deactivate baja lógica. Los productos con movimientos nunca se borran
// físico para no romper el ledger.
func (uc *ProductUseCase) Deactivate(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Deactivate(id)
}

func (uc *ProductUseCase) currentRate() (decimal.Decimal, error) {
	s, err := uc.settingRepo.Get(entity.SettingExchangeRate)
	if err != nil {
		return decimal.Zero, err
	}
	if s == nil || s.Value == "" {
		return decimal.NewFromInt(1), nil
	}
	return decimal.NewFromString(s.Value)
}
