// Package testutil provee repositorios en memoria que cumplen los puertos de
// internal/domain/repository, más un runner transaccional que restaura el estado
// si el callback falla. Solo para tests.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

type favKey struct{ userID, productID int64 }

type state struct {
	users         map[int64]entity.User
	products      map[int64]entity.Product
	carts         map[int64]entity.Cart
	cartItems     map[int64]entity.CartItem
	purchases     map[int64]entity.Purchase
	purchaseItems map[int64]entity.PurchaseItem
	tickets       map[int64]entity.Ticket
	favorites     map[favKey]entity.Favorite
	seq           int64
}

func newState() *state {
	return &state{
		users:         map[int64]entity.User{},
		products:      map[int64]entity.Product{},
		carts:         map[int64]entity.Cart{},
		cartItems:     map[int64]entity.CartItem{},
		purchases:     map[int64]entity.Purchase{},
		purchaseItems: map[int64]entity.PurchaseItem{},
		tickets:       map[int64]entity.Ticket{},
		favorites:     map[favKey]entity.Favorite{},
	}
}

func (s *state) clone() *state {
	c := &state{seq: s.seq}
	c.users = cloneMap(s.users)
	c.products = cloneMap(s.products)
	c.carts = cloneMap(s.carts)
	c.cartItems = cloneMap(s.cartItems)
	c.purchases = cloneMap(s.purchases)
	c.purchaseItems = cloneMap(s.purchaseItems)
	c.tickets = cloneMap(s.tickets)
	c.favorites = cloneMap(s.favorites)
	return c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store base de datos en memoria. Cada tabla usa ids secuenciales propios.
type Store struct {
	mu  sync.Mutex
	st  *state
	ids map[string]int64

	// FailTicketCreate hace fallar TicketRepository.Create (para probar rollback).
	FailTicketCreate bool
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{st: newState(), ids: map[string]int64{}}
}

func (s *Store) nextID(table string) int64 {
	s.ids[table]++
	return s.ids[table]
}

// SetNextID fija el próximo id de una tabla (ej. "compras" para obtener la compra 42).
func (s *Store) SetNextID(table string, next int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[table] = next - 1
}

// Users repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

// Products repositorio de productos.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s} }

// Carts repositorio de carritos.
func (s *Store) Carts() repository.CartRepository { return &cartRepo{s} }

// Purchases repositorio de compras.
func (s *Store) Purchases() repository.PurchaseRepository { return &purchaseRepo{s} }

// Tickets repositorio de tickets.
func (s *Store) Tickets() repository.TicketRepository { return &ticketRepo{s} }

// Favorites repositorio de favoritos.
func (s *Store) Favorites() repository.FavoriteRepository { return &favoriteRepo{s} }

// RunCheckout ejecuta fn con los repositorios del Store; si fn falla, restaura el estado previo.
func (s *Store) RunCheckout(ctx context.Context, fn func(
	carts repository.CartRepository,
	purchases repository.PurchaseRepository,
	tickets repository.TicketRepository,
) error) error {
	s.mu.Lock()
	snapshot := s.st.clone()
	ids := cloneMap(s.ids)
	s.mu.Unlock()

	if err := fn(s.Carts(), s.Purchases(), s.Tickets()); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.ids = ids
		s.mu.Unlock()
		return err
	}
	return nil
}

// ── Helpers de consulta para aserciones ────────────────────────────────────────

// CountUsersWithEmail número de usuarios con ese email.
func (s *Store) CountUsersWithEmail(email string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, u := range s.st.users {
		if u.Email == email {
			n++
		}
	}
	return n
}

// CountPurchases número total de compras.
func (s *Store) CountPurchases() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.purchases)
}

// CountPurchaseItems número total de líneas de compra.
func (s *Store) CountPurchaseItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.purchaseItems)
}

// CountTickets número total de tickets.
func (s *Store) CountTickets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.tickets)
}

// CountOpenCarts carritos abiertos del usuario.
func (s *Store) CountOpenCarts(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.st.carts {
		if c.UserID == userID && c.Status == entity.CartStatusOpen {
			n++
		}
	}
	return n
}

// SeedProduct inserta un producto y devuelve su id.
func (s *Store) SeedProduct(p entity.Product) int64 {
	_ = s.Products().Create(context.Background(), &p)
	return p.ID
}

// ── users ──────────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.st.users {
		if ex.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	u.ID = r.s.nextID("users")
	u.CreatedAt = time.Now()
	r.s.st.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.st.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email })
}

func (r *userRepo) GetByToken(_ context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, nil
	}
	return r.find(func(u entity.User) bool { return u.Token == token })
}

func (r *userRepo) find(match func(entity.User) bool) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.st.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) UpdateToken(_ context.Context, id int64, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.st.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Token = token
	r.s.st.users[id] = u
	return nil
}

func (r *userRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.User, 0, len(r.s.st.users))
	for _, u := range r.s.st.users {
		u := u
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// ── products ───────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.nextID("products")
	p.CreatedAt = time.Now()
	r.s.st.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.st.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *productRepo) List(_ context.Context) ([]*entity.Product, error) {
	return r.list(func(entity.Product) bool { return true }, false)
}

func (r *productRepo) ListOffers(_ context.Context) ([]*entity.Product, error) {
	return r.list(func(p entity.Product) bool { return p.IsOnOffer() }, true)
}

func (r *productRepo) list(keep func(entity.Product) bool, desc bool) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Product
	for _, p := range r.s.st.products {
		if keep(p) {
			p := p
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if desc {
			return list[i].ID > list[j].ID
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.st.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CreatedAt = old.CreatedAt
	r.s.st.products[p.ID] = *p
	return nil
}

func (r *productRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.products[id]; !ok {
		return domain.ErrNotFound
	}
	for _, it := range r.s.st.purchaseItems {
		if it.ProductID == id {
			return fmt.Errorf("%w: el producto tiene compras asociadas", domain.ErrConflict)
		}
	}
	delete(r.s.st.products, id)
	for k, it := range r.s.st.cartItems {
		if it.ProductID == id {
			delete(r.s.st.cartItems, k)
		}
	}
	for k := range r.s.st.favorites {
		if k.productID == id {
			delete(r.s.st.favorites, k)
		}
	}
	return nil
}

// ── carts ──────────────────────────────────────────────────────────────────────

type cartRepo struct{ s *Store }

func (r *cartRepo) EnsureOpenCart(_ context.Context, userID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.st.carts {
		if c.UserID == userID && c.Status == entity.CartStatusOpen {
			return c.ID, nil
		}
	}
	id := r.s.nextID("carrito")
	r.s.st.carts[id] = entity.Cart{ID: id, UserID: userID, Status: entity.CartStatusOpen, CreatedAt: time.Now()}
	return id, nil
}

func (r *cartRepo) ListItems(_ context.Context, cartID int64) ([]*entity.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.CartItem
	for _, it := range r.s.st.cartItems {
		if it.CartID != cartID {
			continue
		}
		it := it
		if p, ok := r.s.st.products[it.ProductID]; ok {
			it.ProductName, it.Description, it.Image = p.Name, p.Description, p.Image
		}
		list = append(list, &it)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *cartRepo) AddOrMerge(_ context.Context, cartID, productID int64, quantity int, unitPrice decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.products[productID]; !ok {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, productID)
	}
	for k, it := range r.s.st.cartItems {
		if it.CartID == cartID && it.ProductID == productID {
			it.Quantity += quantity
			it.UnitPrice = unitPrice
			r.s.st.cartItems[k] = it
			return nil
		}
	}
	id := r.s.nextID("detalles_carrito")
	r.s.st.cartItems[id] = entity.CartItem{ID: id, CartID: cartID, ProductID: productID, Quantity: quantity, UnitPrice: unitPrice}
	return nil
}

func (r *cartRepo) UpdateItemQuantity(_ context.Context, cartID, itemID int64, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.st.cartItems[itemID]
	if !ok || it.CartID != cartID {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	r.s.st.cartItems[itemID] = it
	return nil
}

func (r *cartRepo) DeleteItem(_ context.Context, cartID, itemID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.st.cartItems[itemID]
	if !ok || it.CartID != cartID {
		return domain.ErrNotFound
	}
	delete(r.s.st.cartItems, itemID)
	return nil
}

func (r *cartRepo) Clear(_ context.Context, cartID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k, it := range r.s.st.cartItems {
		if it.CartID == cartID {
			delete(r.s.st.cartItems, k)
		}
	}
	return nil
}

// ── purchases ──────────────────────────────────────────────────────────────────

type purchaseRepo struct{ s *Store }

func (r *purchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.nextID("compras")
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	r.s.st.purchases[p.ID] = *p
	return nil
}

func (r *purchaseRepo) CreateItem(_ context.Context, it *entity.PurchaseItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.purchases[it.PurchaseID]; !ok {
		return fmt.Errorf("insert purchase item: compra %d inexistente", it.PurchaseID)
	}
	it.ID = r.s.nextID("detalles_compra")
	r.s.st.purchaseItems[it.ID] = *it
	return nil
}

func (r *purchaseRepo) GetByID(_ context.Context, id int64) (*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.st.purchases[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *purchaseRepo) ListByUser(_ context.Context, userID int64) ([]*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Purchase
	for _, p := range r.s.st.purchases {
		if p.UserID == userID {
			p := p
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *purchaseRepo) ListItems(_ context.Context, purchaseID int64) ([]*entity.PurchaseItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.PurchaseItem
	for _, it := range r.s.st.purchaseItems {
		if it.PurchaseID == purchaseID {
			it := it
			list = append(list, &it)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// ── tickets ────────────────────────────────────────────────────────────────────

type ticketRepo struct{ s *Store }

func (r *ticketRepo) Create(_ context.Context, t *entity.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailTicketCreate {
		return fmt.Errorf("insert ticket: fallo simulado")
	}
	for _, ex := range r.s.st.tickets {
		if ex.PurchaseID == t.PurchaseID || ex.Number == t.Number {
			return fmt.Errorf("%w: la compra ya tiene ticket", domain.ErrConflict)
		}
	}
	t.ID = r.s.nextID("tickets")
	t.CreatedAt = time.Now()
	r.s.st.tickets[t.ID] = *t
	return nil
}

func (r *ticketRepo) GetByPurchaseID(_ context.Context, purchaseID int64) (*entity.Ticket, error) {
	return r.find(func(t entity.Ticket) bool { return t.PurchaseID == purchaseID })
}

func (r *ticketRepo) GetByNumber(_ context.Context, number string) (*entity.Ticket, error) {
	return r.find(func(t entity.Ticket) bool { return t.Number == number })
}

func (r *ticketRepo) find(match func(entity.Ticket) bool) (*entity.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.st.tickets {
		if match(t) {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

// ── favorites ──────────────────────────────────────────────────────────────────

type favoriteRepo struct{ s *Store }

func (r *favoriteRepo) Upsert(_ context.Context, userID, productID int64, finalPrice decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.products[productID]; !ok {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, productID)
	}
	k := favKey{userID, productID}
	f, ok := r.s.st.favorites[k]
	if !ok {
		r.s.st.seq++
		f = entity.Favorite{UserID: userID, CreatedAt: time.Unix(r.s.st.seq, 0)}
		f.Product.ID = productID
	}
	f.FinalPrice = finalPrice
	r.s.st.favorites[k] = f
	return nil
}

func (r *favoriteRepo) Remove(_ context.Context, userID, productID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := favKey{userID, productID}
	if _, ok := r.s.st.favorites[k]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.st.favorites, k)
	return nil
}

func (r *favoriteRepo) ListByUser(_ context.Context, userID int64) ([]*entity.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Favorite
	for k, f := range r.s.st.favorites {
		if k.userID != userID {
			continue
		}
		f := f
		if p, ok := r.s.st.products[k.productID]; ok {
			f.Product = p
		}
		list = append(list, &f)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *favoriteRepo) Exists(_ context.Context, userID, productID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.st.favorites[favKey{userID, productID}]
	return ok, nil
}

func (r *favoriteRepo) Clear(_ context.Context, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k := range r.s.st.favorites {
		if k.userID == userID {
			delete(r.s.st.favorites, k)
		}
	}
	return nil
}
