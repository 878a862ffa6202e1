package inventory_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/detailing-stock-api/internal/application/inventory"
	"github.com/jhoicas/detailing-stock-api/internal/domain/entity"
	"github.com/jhoicas/detailing-stock-api/internal/domain/repository"
)

// Dobles de prueba en memoria para el motor de movimientos. Devuelven copias
// en las lecturas para que una mutación a medias no contamine el "almacén".

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[string]*entity.Product{}}
}

func (r *memProductRepo) Create(p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) GetWithSupplier(id string) (*repository.ProductListItem, error) {
	p, err := r.GetByID(id)
	if err != nil || p == nil {
		return nil, err
	}
	return &repository.ProductListItem{Product: *p}, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStock(productID string, quantity decimal.Decimal) error {
	if p, ok := r.products[productID]; ok {
		p.Quantity = quantity
	}
	return nil
}

func (r *memProductRepo) UpdateStockAndCost(productID string, quantity, costPrice decimal.Decimal) error {
	if p, ok := r.products[productID]; ok {
		p.Quantity = quantity
		p.CostPrice = costPrice
	}
	return nil
}

func (r *memProductRepo) SetActive(id string, active bool) error {
	if p, ok := r.products[id]; ok {
		p.IsActive = active
	}
	return nil
}

func (r *memProductRepo) List(filter repository.ProductFilter) ([]*repository.ProductListItem, error) {
	var out []*repository.ProductListItem
	for _, p := range r.products {
		cp := *p
		out = append(out, &repository.ProductListItem{Product: cp})
	}
	return out, nil
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type memMovementRepo struct {
	movements map[string]*entity.Movement
	order     []string
}

func newMemMovementRepo() *memMovementRepo {
	return &memMovementRepo{movements: map[string]*entity.Movement{}}
}

func (r *memMovementRepo) Create(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	cp := *m
	r.movements[m.ID] = &cp
	r.order = append(r.order, m.ID)
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.Movement, error) {
	m, ok := r.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMovementRepo) GetWithProduct(id string) (*repository.MovementListItem, error) {
	m, err := r.GetByID(id)
	if err != nil || m == nil {
		return nil, err
	}
	return &repository.MovementListItem{Movement: *m}, nil
}

func (r *memMovementRepo) Update(m *entity.Movement) error {
	cp := *m
	r.movements[m.ID] = &cp
	return nil
}

func (r *memMovementRepo) Delete(id string) error {
	delete(r.movements, id)
	for i, mid := range r.order {
		if mid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memMovementRepo) List(filter repository.MovementFilter) ([]*repository.MovementListItem, error) {
	var out []*repository.MovementListItem
	for _, id := range r.order {
		m := r.movements[id]
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		cp := *m
		out = append(out, &repository.MovementListItem{Movement: cp})
	}
	return out, nil
}

func (r *memMovementRepo) ListEntriesByVendor(vendorID string) ([]*repository.MovementListItem, error) {
	var out []*repository.MovementListItem
	for _, id := range r.order {
		m := r.movements[id]
		if m.Type != entity.MovementTypeEntry || m.VendorID == nil || *m.VendorID != vendorID {
			continue
		}
		cp := *m
		out = append(out, &repository.MovementListItem{Movement: cp})
	}
	return out, nil
}

type memVendorRepo struct {
	vendors map[string]*entity.Vendor
}

func newMemVendorRepo() *memVendorRepo {
	return &memVendorRepo{vendors: map[string]*entity.Vendor{}}
}

func (r *memVendorRepo) Create(v *entity.Vendor) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	cp := *v
	r.vendors[v.ID] = &cp
	return nil
}

func (r *memVendorRepo) GetByID(id string) (*entity.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *memVendorRepo) Update(v *entity.Vendor) error {
	cp := *v
	r.vendors[v.ID] = &cp
	return nil
}

func (r *memVendorRepo) List(search string) ([]*entity.Vendor, error) {
	var out []*entity.Vendor
	for _, v := range r.vendors {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memVendorRepo) Delete(id string) error {
	delete(r.vendors, id)
	return nil
}

// memTxRunner ejecuta el callback directamente sobre los repos en memoria.
// No simula rollback: el motor valida antes de escribir, y eso es justamente
// lo que estos tests verifican.
type memTxRunner struct {
	products  *memProductRepo
	movements *memMovementRepo
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
) error) error {
	return fn(r.products, r.movements)
}

// engineFixture motor de movimientos cableado sobre los dobles en memoria.
type engineFixture struct {
	uc        *inventory.MovementUseCase
	products  *memProductRepo
	movements *memMovementRepo
	vendors   *memVendorRepo
}

func newEngineFixture() *engineFixture {
	products := newMemProductRepo()
	movements := newMemMovementRepo()
	vendors := newMemVendorRepo()
	runner := &memTxRunner{products: products, movements: movements}
	return &engineFixture{
		uc:        inventory.NewMovementUseCase(runner, movements, vendors),
		products:  products,
		movements: movements,
		vendors:   vendors,
	}
}

// seedProduct crea un producto con stock y costo iniciales.
func (f *engineFixture) seedProduct(name, unitType, quantity, costPrice string) *entity.Product {
	p := &entity.Product{
		Name:      name,
		SKU:       "EST-TEST-" + name,
		UnitType:  unitType,
		Quantity:  decimal.RequireFromString(quantity),
		CostPrice: decimal.RequireFromString(costPrice),
		IsActive:  true,
	}
	_ = f.products.Create(p)
	return p
}
