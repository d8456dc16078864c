// Package memory implementa los puertos de persistencia sobre mapas en
// memoria protegidos por mutex. Se usa en modo desarrollo (STORE_DRIVER=memory)
// y en las pruebas unitarias; la semántica observable es la misma que la del
// driver PostgreSQL, incluido el timestamp asignado por el store al crear.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/tienda-pos-api/internal/domain"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/infrastructure/seed"
)

// Store guarda todas las colecciones de la tienda. Las operaciones
// lógicas (compra + ajuste de stock, venta + descuentos) se serializan
// entre sí bajo txMu y, si fallan, un journal revierte sus propias
// escrituras. Los lectores toman mu por operación: pueden observar una
// transacción a medio aplicar, igual que una lectura fuera de la
// transacción en el driver PostgreSQL.
type Store struct {
	mu        sync.RWMutex
	txMu      sync.Mutex
	products  map[string]*entity.Product
	purchases map[string]*entity.PurchaseEntry
	sales     map[string]*entity.SaleRecord
	users     map[string]*entity.User
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		products:  make(map[string]*entity.Product),
		purchases: make(map[string]*entity.PurchaseEntry),
		sales:     make(map[string]*entity.SaleRecord),
		users:     make(map[string]*entity.User),
	}
}

// NewSeeded construye un store con el catálogo inicial y el admin por defecto.
func NewSeeded() *Store {
	s := NewStore()
	for _, p := range seed.Products() {
		s.products[p.ID] = p
	}
	admin, err := seed.DefaultAdmin()
	if err != nil {
		log.Fatal().Err(err).Msg("hash de contraseña del admin inicial")
	}
	s.users[admin.ID] = admin
	return s
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	return &cp
}

func clonePurchase(e *entity.PurchaseEntry) *entity.PurchaseEntry {
	cp := *e
	return &cp
}

func cloneSale(s *entity.SaleRecord) *entity.SaleRecord {
	cp := *s
	cp.Items = make([]entity.SaleItem, len(s.Items))
	copy(cp.Items, s.Items)
	return &cp
}

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	return &cp
}

// --- productos ---

// ProductRepo adapta el Store al puerto ProductRepository. Con j no nulo
// las escrituras registran su inversa en el journal de la transacción.
type ProductRepo struct {
	s *Store
	j *journal
}

// Products devuelve el adaptador de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	if r.j != nil {
		id := product.ID
		r.j.record(func() { delete(r.s.products, id) })
	}
	r.s.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.j != nil {
		prev := cloneProduct(old)
		r.j.record(func() { r.s.products[prev.ID] = prev })
	}
	r.s.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, cloneProduct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if r.j != nil {
		prev := cloneProduct(old)
		r.j.record(func() { r.s.products[prev.ID] = prev })
	}
	delete(r.s.products, id)
	return nil
}

// IncrementStock aplica el delta sobre el valor actual. El stock puede
// quedar negativo; se registra una advertencia y la corrección queda en
// manos del administrador, igual que en el driver PostgreSQL.
func (r *ProductRepo) IncrementStock(ctx context.Context, productID string, delta int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.j != nil {
		prev := cloneProduct(p)
		r.j.record(func() { r.s.products[prev.ID] = prev })
	}
	p.Stock += delta
	p.UpdatedAt = time.Now().UTC()
	if p.Stock < 0 {
		log.Warn().Str("product_id", productID).Int64("stock", p.Stock).
			Msg("stock negativo tras ajuste")
	}
	return nil
}

// --- compras ---

// PurchaseRepo adapta el Store al puerto PurchaseRepository.
type PurchaseRepo struct {
	s *Store
	j *journal
}

// Purchases devuelve el adaptador del libro de compras.
func (s *Store) Purchases() *PurchaseRepo { return &PurchaseRepo{s: s} }

func (r *PurchaseRepo) Create(ctx context.Context, entry *entity.PurchaseEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.purchases[entry.ID]; ok {
		return domain.ErrDuplicate
	}
	if r.j != nil {
		id := entry.ID
		r.j.record(func() { delete(r.s.purchases, id) })
	}
	entry.Timestamp = time.Now().UTC()
	r.s.purchases[entry.ID] = clonePurchase(entry)
	return nil
}

func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.purchases[id]
	if !ok {
		return nil, nil
	}
	return clonePurchase(e), nil
}

func (r *PurchaseRepo) Update(ctx context.Context, entry *entity.PurchaseEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.purchases[entry.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.j != nil {
		prev := clonePurchase(old)
		r.j.record(func() { r.s.purchases[prev.ID] = prev })
	}
	entry.Timestamp = old.Timestamp
	r.s.purchases[entry.ID] = clonePurchase(entry)
	return nil
}

func (r *PurchaseRepo) ListRecent(ctx context.Context, limit int) ([]*entity.PurchaseEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.PurchaseEntry, 0, len(r.s.purchases))
	for _, e := range r.s.purchases {
		out = append(out, clonePurchase(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *PurchaseRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.PurchaseEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.PurchaseEntry
	for _, e := range r.s.purchases {
		if !e.Timestamp.Before(since) {
			out = append(out, clonePurchase(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

// --- ventas ---

// SaleRepo adapta el Store al puerto SaleRepository.
type SaleRepo struct {
	s *Store
	j *journal
}

// Sales devuelve el adaptador del libro de ventas.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{s: s} }

func (r *SaleRepo) Create(ctx context.Context, sale *entity.SaleRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	if r.j != nil {
		id := sale.ID
		r.j.record(func() { delete(r.s.sales, id) })
	}
	sale.Timestamp = time.Now().UTC()
	r.s.sales[sale.ID] = cloneSale(sale)
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.SaleRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return cloneSale(sale), nil
}

func (r *SaleRepo) Update(ctx context.Context, sale *entity.SaleRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.sales[sale.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.j != nil {
		prev := cloneSale(old)
		r.j.record(func() { r.s.sales[prev.ID] = prev })
	}
	sale.Timestamp = old.Timestamp
	r.s.sales[sale.ID] = cloneSale(sale)
	return nil
}

func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	if r.j != nil {
		prev := cloneSale(old)
		r.j.record(func() { r.s.sales[prev.ID] = prev })
	}
	delete(r.s.sales, id)
	return nil
}

func (r *SaleRepo) ListRecent(ctx context.Context, limit int) ([]*entity.SaleRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.SaleRecord, 0, len(r.s.sales))
	for _, sale := range r.s.sales {
		out = append(out, cloneSale(sale))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *SaleRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.SaleRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.SaleRecord
	for _, sale := range r.s.sales {
		if !sale.Timestamp.Before(since) {
			out = append(out, cloneSale(sale))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

// --- usuarios ---

// UserRepo adapta el Store al puerto UserRepository.
type UserRepo struct{ s *Store }

// Users devuelve el adaptador de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}
