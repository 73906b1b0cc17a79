// Package memory implementa los puertos de persistencia en memoria. Lo usan los tests y
// `stockctl ingest --dry-run`; respeta la misma semántica transaccional que PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stock-almacenes/internal/application/inventory"
	"github.com/jhoicas/stock-almacenes/internal/domain/entity"
	"github.com/jhoicas/stock-almacenes/internal/domain/repository"
)

type invKey struct {
	productID, warehouseID int64
}

type state struct {
	products        map[int64]*entity.Product
	bySKU           map[string]int64
	warehouses      map[int64]*entity.Warehouse
	byCodigo        map[string]int64
	inventory       map[invKey]*entity.Inventory
	nextProductID   int64
	nextWarehouseID int64
}

func newState() *state {
	return &state{
		products:   make(map[int64]*entity.Product),
		bySKU:      make(map[string]int64),
		warehouses: make(map[int64]*entity.Warehouse),
		byCodigo:   make(map[string]int64),
		inventory:  make(map[invKey]*entity.Inventory),
	}
}

func (s *state) clone() *state {
	c := newState()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for k, v := range s.bySKU {
		c.bySKU[k] = v
	}
	for id, w := range s.warehouses {
		cw := *w
		c.warehouses[id] = &cw
	}
	for k, v := range s.byCodigo {
		c.byCodigo[k] = v
	}
	for k, inv := range s.inventory {
		ci := *inv
		c.inventory[k] = &ci
	}
	c.nextProductID = s.nextProductID
	c.nextWarehouseID = s.nextWarehouseID
	return c
}

// view abstrae el acceso al estado: directo (Store) o sobre la copia de una transacción.
type view interface {
	read(fn func(*state))
	write(fn func(*state) error) error
}

// Store base de datos en memoria. Las escrituras se serializan con un único mutex de escritor,
// que una transacción retiene hasta terminar.
type Store struct {
	writer sync.Mutex
	mu     sync.RWMutex
	data   *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

func (s *Store) read(fn func(*state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

func (s *Store) write(fn func(*state) error) error {
	s.writer.Lock()
	defer s.writer.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func (s *Store) Products() *ProductRepo      { return &ProductRepo{v: s} }
func (s *Store) Warehouses() *WarehouseRepo  { return &WarehouseRepo{v: s} }
func (s *Store) Inventory() *InventoryRepo   { return &InventoryRepo{v: s} }
func (s *Store) StockQuery() *StockQueryRepo { return &StockQueryRepo{v: s} }
func (s *Store) TxRunner() *TxRunner         { return &TxRunner{s: s} }

type txView struct {
	st *state
}

func (t txView) read(fn func(*state))              { fn(t.st) }
func (t txView) write(fn func(*state) error) error { return fn(t.st) }

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner trabaja sobre una copia del estado y la publica sólo si fn no devuelve error.
type TxRunner struct {
	s *Store
}

func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
) error) error {
	r.s.writer.Lock()
	defer r.s.writer.Unlock()

	r.s.mu.RLock()
	work := r.s.data.clone()
	r.s.mu.RUnlock()

	tv := txView{st: work}
	if err := fn(&ProductRepo{v: tv}, &InventoryRepo{v: tv}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	r.s.data = work
	r.s.mu.Unlock()
	return nil
}
