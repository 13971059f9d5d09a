package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmreyes/repuestos-api/internal/application/dto"
	"github.com/dmreyes/repuestos-api/internal/application/inventory"
	"github.com/dmreyes/repuestos-api/internal/application/usecase"
	"github.com/dmreyes/repuestos-api/internal/domain/entity"
	"github.com/dmreyes/repuestos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes con estado para el alta de productos
// ──────────────────────────────────────────────────────────────────────────────

type catalogStore struct {
	products       map[string]*entity.Product
	movements      []*entity.InventoryMovement
	failMovCreate  bool
	failProdCreate bool
}

func newCatalogStore() *catalogStore {
	return &catalogStore{products: make(map[string]*entity.Product)}
}

type catalogProductRepo struct{ s *catalogStore }

func (r *catalogProductRepo) Create(p *entity.Product) error {
	if r.s.failProdCreate {
		return errors.New("insert producto falló")
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *catalogProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *catalogProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *catalogProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *catalogProductRepo) UpdateQuantity(id string, qty int) error {
	p, ok := r.s.products[id]
	if !ok {
		return errors.New("producto inexistente")
	}
	p.Quantity = qty
	return nil
}

func (r *catalogProductRepo) RecalcPricesBs(decimal.Decimal) error { return nil }

func (r *catalogProductRepo) List(bool) ([]*entity.Product, error) { return nil, nil }

func (r *catalogProductRepo) Search(string) ([]*entity.Product, error) { return nil, nil }

func (r *catalogProductRepo) ListLowStock() ([]*entity.Product, error) { return nil, nil }

func (r *catalogProductRepo) Deactivate(string) error { return nil }

type catalogMovementRepo struct{ s *catalogStore }

func (r *catalogMovementRepo) Create(m *entity.InventoryMovement) error {
	if r.s.failMovCreate {
		return errors.New("insert movimiento falló")
	}
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *catalogMovementRepo) GetByID(string) (*entity.InventoryMovement, error) {
	return nil, nil
}

func (r *catalogMovementRepo) List(int, int) ([]*entity.InventoryMovement, error) {
	return r.s.movements, nil
}

func (r *catalogMovementRepo) ListByProduct(string, *time.Time, *time.Time, int, int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}

// catalogTxRunner emula el rollback: si fn falla, productos y movimientos
// vuelven al estado previo a la transacción.
type catalogTxRunner struct{ s *catalogStore }

func (tr *catalogTxRunner) Run(_ context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	snapshot := make(map[string]*entity.Product, len(tr.s.products))
	for id, p := range tr.s.products {
		cp := *p
		snapshot[id] = &cp
	}
	movCount := len(tr.s.movements)

	if err := fn(&catalogMovementRepo{s: tr.s}, &catalogProductRepo{s: tr.s}); err != nil {
		tr.s.products = snapshot
		tr.s.movements = tr.s.movements[:movCount]
		return err
	}
	return nil
}

func newCatalogUC(s *catalogStore) *usecase.ProductUseCase {
	tx := &catalogTxRunner{s: s}
	ledger := inventory.NewStockLedgerUseCase(tx)
	return usecase.NewProductUseCase(&catalogProductRepo{s: s}, newMemSettingRepo(), ledger, tx)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta de productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_ConStockInicial(t *testing.T) {
	s := newCatalogStore()
	uc := newCatalogUC(s)

	product, err := uc.Create(context.Background(), "user-1", dto.CreateProductRequest{
		Name:         "Bujía NGK",
		InitialStock: 12,
		PriceUSD:     decimal.NewFromInt(4),
	})
	require.NoError(t, err)
	assert.Equal(t, 12, product.Quantity)

	stored := s.products[product.ID]
	require.NotNil(t, stored)
	assert.Equal(t, 12, stored.Quantity)

	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.MovementTypeEntrada, s.movements[0].Type)
	assert.Equal(t, 12, s.movements[0].Quantity)
	assert.Equal(t, "user-1", s.movements[0].UserID)
}

func TestProductCreate_SinStockInicial_NoGeneraMovimiento(t *testing.T) {
	s := newCatalogStore()
	uc := newCatalogUC(s)

	product, err := uc.Create(context.Background(), "user-1", dto.CreateProductRequest{
		Name:     "Correa de tiempo",
		PriceUSD: decimal.NewFromInt(25),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, product.Quantity)
	assert.Empty(t, s.movements)
}

func TestProductCreate_FallaElMovimiento_NoQuedaProductoHuerfano(t *testing.T) {
	s := newCatalogStore()
	s.failMovCreate = true
	uc := newCatalogUC(s)

	_, err := uc.Create(context.Background(), "user-1", dto.CreateProductRequest{
		Name:         "Amortiguador",
		InitialStock: 4,
		PriceUSD:     decimal.NewFromInt(30),
	})
	require.Error(t, err)

	// El insert del producto se revierte junto con el movimiento fallido:
	// un reintento no duplica nada.
	assert.Empty(t, s.products, "la fila del producto debe revertirse")
	assert.Empty(t, s.movements)
}
