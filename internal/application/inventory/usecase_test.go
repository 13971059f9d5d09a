package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmreyes/repuestos-api/internal/application/inventory"
	"github.com/dmreyes/repuestos-api/internal/domain"
	"github.com/dmreyes/repuestos-api/internal/domain/entity"
	"github.com/dmreyes/repuestos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// memStore estado compartido de los fakes. El mutex del txRunner serializa
// las transacciones igual que lo haría el bloqueo de fila en Postgres.
type memStore struct {
	products  map[string]*entity.Product
	movements []*entity.InventoryMovement

	failMovementCreate bool // fuerza fallo al insertar movimiento
}

func newMemStore(products ...*entity.Product) *memStore {
	s := &memStore{products: make(map[string]*entity.Product)}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *memProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r *memProductRepo) UpdateQuantity(productID string, quantity int) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *memProductRepo) RecalcPricesBs(_ decimal.Decimal) error { return nil }

func (r *memProductRepo) List(onlyActive bool) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if onlyActive && !p.IsActive {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) Search(string) ([]*entity.Product, error)  { return nil, nil }
func (r *memProductRepo) ListLowStock() ([]*entity.Product, error)  { return nil, nil }
func (r *memProductRepo) Deactivate(string) error                   { return nil }

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.InventoryMovement) error {
	if r.s.failMovementCreate {
		return errors.New("insert movimiento falló")
	}
	r.s.movements = append(r.s.movements, m)
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) List(limit, offset int) ([]*entity.InventoryMovement, error) {
	return r.s.movements, nil
}

func (r *memMovementRepo) ListByProduct(productID string, _, _ *time.Time, _, _ int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

// memTxRunner serializa transacciones con un mutex y revierte el estado si la
// función devuelve error, emulando el rollback de Postgres.
type memTxRunner struct {
	mu sync.Mutex
	s  *memStore
}

func (tr *memTxRunner) Run(_ context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	// snapshot para rollback
	snapshot := make(map[string]entity.Product, len(tr.s.products))
	for id, p := range tr.s.products {
		snapshot[id] = *p
	}
	movCount := len(tr.s.movements)

	err := fn(&memMovementRepo{s: tr.s}, &memProductRepo{s: tr.s})
	if err != nil {
		for id := range tr.s.products {
			cp := snapshot[id]
			tr.s.products[id] = &cp
		}
		tr.s.movements = tr.s.movements[:movCount]
	}
	return err
}

func newLedger(s *memStore) *inventory.StockLedgerUseCase {
	return inventory.NewStockLedgerUseCase(&memTxRunner{s: s})
}

func testProduct(qty int) *entity.Product {
	return &entity.Product{
		ID:       "11111111-1111-1111-1111-111111111111",
		Name:     "Filtro de aceite",
		Quantity: qty,
		IsActive: true,
	}
}

const testUser = "99999999-9999-9999-9999-999999999999"

// ──────────────────────────────────────────────────────────────────────────────
// Entradas y salidas
// ──────────────────────────────────────────────────────────────────────────────

func TestAddStock_SumaYRegistraMovimiento(t *testing.T) {
	s := newMemStore(testProduct(10))
	ledger := newLedger(s)

	mov, err := ledger.AddStock(context.Background(), testProduct(0).ID, 5, "Compra al proveedor", testUser)
	require.NoError(t, err)
	require.NotNil(t, mov)

	assert.Equal(t, 15, s.products[mov.ProductID].Quantity)
	assert.Equal(t, entity.MovementTypeEntrada, mov.Type)
	assert.Equal(t, 5, mov.Quantity)
	assert.True(t, mov.Increases)
	assert.Equal(t, testUser, mov.UserID)
	assert.Len(t, s.movements, 1)
}

func TestRemoveStock_RestaYRegistraMovimiento(t *testing.T) {
	s := newMemStore(testProduct(10))
	ledger := newLedger(s)

	mov, err := ledger.RemoveStock(context.Background(), testProduct(0).ID, 4, "Retiro por garantía", testUser)
	require.NoError(t, err)

	assert.Equal(t, 6, s.products[mov.ProductID].Quantity)
	assert.Equal(t, entity.MovementTypeSalida, mov.Type)
	assert.False(t, mov.Increases)
	assert.Equal(t, -4, mov.SignedEffect())
}

func TestRemoveStock_HastaCero_OK(t *testing.T) {
	s := newMemStore(testProduct(7))
	ledger := newLedger(s)

	_, err := ledger.RemoveStock(context.Background(), testProduct(0).ID, 7, "Venta de todo el lote", testUser)
	require.NoError(t, err)
	assert.Equal(t, 0, s.products[testProduct(0).ID].Quantity)
}

func TestRemoveStock_StockInsuficiente_NadaCambia(t *testing.T) {
	s := newMemStore(testProduct(7))
	ledger := newLedger(s)

	_, err := ledger.RemoveStock(context.Background(), testProduct(0).ID, 8, "Intento de sobreventa", testUser)
	require.Error(t, err)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 7, insufficient.Available)
	assert.Equal(t, 8, insufficient.Requested)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Ni el stock ni el ledger cambiaron
	assert.Equal(t, 7, s.products[testProduct(0).ID].Quantity)
	assert.Empty(t, s.movements)
}

func TestRemoveStock_ProductoInexistente(t *testing.T) {
	s := newMemStore()
	ledger := newLedger(s)

	_, err := ledger.RemoveStock(context.Background(), "00000000-0000-0000-0000-000000000000", 1, "Salida de prueba", testUser)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones: fallan antes de tocar la BD
// ──────────────────────────────────────────────────────────────────────────────

func TestValidaciones_RechazanSinTocarStock(t *testing.T) {
	cases := []struct {
		name string
		run  func(l *inventory.StockLedgerUseCase) error
	}{
		{"cantidad cero", func(l *inventory.StockLedgerUseCase) error {
			_, err := l.AddStock(context.Background(), testProduct(0).ID, 0, "Descripción válida", testUser)
			return err
		}},
		{"cantidad negativa", func(l *inventory.StockLedgerUseCase) error {
			_, err := l.RemoveStock(context.Background(), testProduct(0).ID, -3, "Descripción válida", testUser)
			return err
		}},
		{"descripción corta", func(l *inventory.StockLedgerUseCase) error {
			_, err := l.AddStock(context.Background(), testProduct(0).ID, 1, "abc", testUser)
			return err
		}},
		{"descripción de espacios", func(l *inventory.StockLedgerUseCase) error {
			_, err := l.AddStock(context.Background(), testProduct(0).ID, 1, "        ", testUser)
			return err
		}},
		{"sin usuario", func(l *inventory.StockLedgerUseCase) error {
			_, err := l.AddStock(context.Background(), testProduct(0).ID, 1, "Descripción válida", "")
			return err
		}},
		{"ajuste negativo", func(l *inventory.StockLedgerUseCase) error {
			_, err := l.SetStock(context.Background(), testProduct(0).ID, -1, "Descripción válida", testUser)
			return err
		}},
		{"tipo desconocido", func(l *inventory.StockLedgerUseCase) error {
			_, err := l.RegisterMovement(context.Background(), testProduct(0).ID, "traspaso", 1, "Descripción válida", testUser)
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newMemStore(testProduct(10))
			err := tc.run(newLedger(s))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, 10, s.products[testProduct(0).ID].Quantity, "una validación fallida no debe tocar el stock")
			assert.Empty(t, s.movements, "una validación fallida no debe registrar movimientos")
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes (stock absoluto)
// ──────────────────────────────────────────────────────────────────────────────

func TestSetStock_SubeAlObjetivo(t *testing.T) {
	s := newMemStore(testProduct(10))
	ledger := newLedger(s)

	mov, err := ledger.SetStock(context.Background(), testProduct(0).ID, 25, "Conteo físico de fin de mes", testUser)
	require.NoError(t, err)
	require.NotNil(t, mov)

	assert.Equal(t, 25, s.products[mov.ProductID].Quantity)
	assert.Equal(t, entity.MovementTypeAjuste, mov.Type)
	assert.Equal(t, 15, mov.Quantity, "la magnitud es |objetivo - actual|")
	assert.True(t, mov.Increases)
}

func TestSetStock_BajaAlObjetivo(t *testing.T) {
	s := newMemStore(testProduct(10))
	ledger := newLedger(s)

	mov, err := ledger.SetStock(context.Background(), testProduct(0).ID, 4, "Merma detectada en conteo", testUser)
	require.NoError(t, err)

	assert.Equal(t, 4, s.products[mov.ProductID].Quantity)
	assert.Equal(t, 6, mov.Quantity)
	assert.False(t, mov.Increases)
	assert.Equal(t, -6, mov.SignedEffect())
}

func TestSetStock_ACero_OK(t *testing.T) {
	s := newMemStore(testProduct(10))
	ledger := newLedger(s)

	_, err := ledger.SetStock(context.Background(), testProduct(0).ID, 0, "Baja total por siniestro", testUser)
	require.NoError(t, err)
	assert.Equal(t, 0, s.products[testProduct(0).ID].Quantity)
}

func TestSetStock_SinCambio_EsIdempotente(t *testing.T) {
	s := newMemStore(testProduct(10))
	ledger := newLedger(s)

	mov, err := ledger.SetStock(context.Background(), testProduct(0).ID, 10, "Conteo coincide con sistema", testUser)
	require.NoError(t, err)

	assert.Nil(t, mov, "un ajuste al valor vigente no genera movimiento")
	assert.Empty(t, s.movements)
	assert.Equal(t, 10, s.products[testProduct(0).ID].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad: stock y movimiento hacen commit juntos o ninguno
// ──────────────────────────────────────────────────────────────────────────────

func TestAddStock_FalloAlInsertarMovimiento_RevierteStock(t *testing.T) {
	s := newMemStore(testProduct(10))
	s.failMovementCreate = true
	ledger := newLedger(s)

	_, err := ledger.AddStock(context.Background(), testProduct(0).ID, 5, "Compra al proveedor", testUser)
	require.Error(t, err)

	assert.Equal(t, 10, s.products[testProduct(0).ID].Quantity, "el rollback debe restaurar el stock")
	assert.Empty(t, s.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: dos salidas compitiendo por el mismo stock
// ──────────────────────────────────────────────────────────────────────────────

func TestRemoveStock_Concurrente_NuncaNegativo(t *testing.T) {
	// Stock 10, dos salidas de 7 en paralelo: exactamente una debe ganar.
	s := newMemStore(testProduct(10))
	ledger := newLedger(s)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.RemoveStock(context.Background(), testProduct(0).ID, 7, "Venta simultánea", testUser)
		}(i)
	}
	wg.Wait()

	var okCount, failCount int
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			failCount++
		}
	}
	assert.Equal(t, 1, okCount, "solo una salida debe completarse")
	assert.Equal(t, 1, failCount, "la otra debe fallar por stock insuficiente")
	assert.Equal(t, 3, s.products[testProduct(0).ID].Quantity)
	assert.Len(t, s.movements, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante del ledger: reproducir los movimientos desde cero da el stock
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_ReproducirMovimientosIgualaStock(t *testing.T) {
	s := newMemStore(testProduct(0))
	ledger := newLedger(s)
	ctx := context.Background()
	id := testProduct(0).ID

	_, err := ledger.AddStock(ctx, id, 20, "Compra inicial de lote", testUser)
	require.NoError(t, err)
	_, err = ledger.RemoveStock(ctx, id, 8, "Venta de mostrador", testUser)
	require.NoError(t, err)
	_, err = ledger.SetStock(ctx, id, 15, "Conteo físico semanal", testUser)
	require.NoError(t, err)
	_, err = ledger.RemoveStock(ctx, id, 5, "Venta de mostrador", testUser)
	require.NoError(t, err)
	_, err = ledger.SetStock(ctx, id, 3, "Merma por daño en estantería", testUser)
	require.NoError(t, err)

	replayed := 0
	for _, m := range s.movements {
		replayed += m.SignedEffect()
	}
	assert.Equal(t, s.products[id].Quantity, replayed,
		"la suma de efectos del ledger debe igualar el stock vigente")
	assert.Equal(t, 3, s.products[id].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterMovement: despacho por tipo
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_DespachaPorTipo(t *testing.T) {
	s := newMemStore(testProduct(10))
	ledger := newLedger(s)
	ctx := context.Background()
	id := testProduct(0).ID

	mov, err := ledger.RegisterMovement(ctx, id, "entrada", 5, "Reposición de proveedor", testUser)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeEntrada, mov.Type)
	assert.Equal(t, 15, s.products[id].Quantity)

	mov, err = ledger.RegisterMovement(ctx, id, "salida", 3, "Venta de mostrador", testUser)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeSalida, mov.Type)
	assert.Equal(t, 12, s.products[id].Quantity)

	// Para ajuste, quantity es el stock objetivo, no un delta
	mov, err = ledger.RegisterMovement(ctx, id, "ajuste", 20, "Conteo físico", testUser)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeAjuste, mov.Type)
	assert.Equal(t, 20, s.products[id].Quantity)
	assert.Equal(t, 8, mov.Quantity)
}
