package checkout_test

import (
	"context"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/checkout"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

type fakeGenerator struct {
	docs []checkout.TicketDocument
	err  error
}

func (g *fakeGenerator) GenerateTicketPDF(_ context.Context, doc checkout.TicketDocument) ([]byte, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.docs = append(g.docs, doc)
	return []byte("%PDF-" + doc.Number), nil
}

type memFiles struct {
	files map[string][]byte
}

func newMemFiles() *memFiles { return &memFiles{files: map[string][]byte{}} }

func (m *memFiles) Save(number string, content []byte) (string, error) {
	path := "tickets/ticket_" + number + ".pdf"
	m.files[path] = content
	return path, nil
}

func (m *memFiles) Read(path string) ([]byte, error) {
	b, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("abrir %s: %w", path, fs.ErrNotExist)
	}
	return b, nil
}

func (m *memFiles) Remove(path string) error {
	delete(m.files, path)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────

var (
	cliente = &entity.User{ID: 5, Name: "Ana", Role: entity.RoleCliente}
	fecha   = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
)

type fixture struct {
	store    *testutil.Store
	cart     *usecase.CartUseCase
	gen      *fakeGenerator
	files    *memFiles
	checkout *checkout.CheckoutUseCase
	tickets  *checkout.TicketUseCase
}

func newFixture() *fixture {
	store := testutil.NewStore()
	gen := &fakeGenerator{}
	files := newMemFiles()
	urls := checkout.URLBuilder{}
	return &fixture{
		store:    store,
		cart:     usecase.NewCartUseCase(store.Carts(), store.Products()),
		gen:      gen,
		files:    files,
		checkout: checkout.NewCheckoutUseCase(store, gen, files, urls).WithClock(func() time.Time { return fecha }),
		tickets:  checkout.NewTicketUseCase(store.Tickets(), files, urls),
	}
}

// fillCart arma el carrito del ejemplo: producto 7 x2 a 10.00 y producto 9 x1 a 5.00.
func (f *fixture) fillCart(t *testing.T) {
	t.Helper()
	f.store.SetNextID("products", 7)
	p7 := f.store.SeedProduct(entity.Product{Name: "Camisa", Price: decimal.RequireFromString("10.00"), Discount: decimal.Zero})
	f.store.SetNextID("products", 9)
	p9 := f.store.SeedProduct(entity.Product{Name: "Gorra", Price: decimal.RequireFromString("5.00"), Discount: decimal.Zero})
	require.Equal(t, int64(7), p7)
	require.Equal(t, int64(9), p9)

	two := 2
	_, err := f.cart.Add(context.Background(), cliente.ID, dto.AddToCartRequest{IDProducto: p7, Cantidad: &two})
	require.NoError(t, err)
	_, err = f.cart.Add(context.Background(), cliente.ID, dto.AddToCartRequest{IDProducto: p9})
	require.NoError(t, err)
}

func TestCheckout_CreaCompraTicketYVaciaCarrito(t *testing.T) {
	f := newFixture()
	f.fillCart(t)
	f.store.SetNextID("compras", 42)

	res, err := f.checkout.Checkout(context.Background(), cliente)
	require.NoError(t, err)

	assert.Equal(t, int64(42), res.IDCompra)
	assert.Equal(t, "TCK-2024-000042", res.NumeroTicket)
	assert.Equal(t, "25.00", res.Total.StringFixed(2))
	assert.Equal(t, "/ticket/TCK-2024-000042", res.PDFURL)
	assert.Equal(t, "Compra finalizada correctamente", res.Mensaje)

	assert.Equal(t, 1, f.store.CountPurchases())
	assert.Equal(t, 2, f.store.CountPurchaseItems(), "una línea de compra por línea del carrito")
	assert.Equal(t, 1, f.store.CountTickets())

	cart, err := f.cart.Get(context.Background(), cliente.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items, "el carrito queda vacío")

	require.Len(t, f.gen.docs, 1)
	doc := f.gen.docs[0]
	assert.Equal(t, "Ana", doc.CustomerName)
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "Camisa", doc.Items[0].ProductName)
	assert.Equal(t, "20.00", doc.Items[0].Subtotal.StringFixed(2))
	assert.Contains(t, f.files.files, "tickets/ticket_TCK-2024-000042.pdf")
}

func TestCheckout_CarritoVacio(t *testing.T) {
	f := newFixture()

	_, err := f.checkout.Checkout(context.Background(), cliente)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Equal(t, 0, f.store.CountPurchases())
	assert.Empty(t, f.gen.docs)
}

func TestCheckout_FalloAlRegistrarTicketRevierteTodo(t *testing.T) {
	f := newFixture()
	f.fillCart(t)
	f.store.FailTicketCreate = true

	_, err := f.checkout.Checkout(context.Background(), cliente)
	require.Error(t, err)

	assert.Equal(t, 0, f.store.CountPurchases())
	assert.Equal(t, 0, f.store.CountPurchaseItems())
	assert.Equal(t, 0, f.store.CountTickets())
	assert.Empty(t, f.files.files, "el PDF escrito se elimina")

	cart, err := f.cart.Get(context.Background(), cliente.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2, "el carrito se conserva")
}

func TestCheckout_FalloDelGeneradorNoCreaCompra(t *testing.T) {
	f := newFixture()
	f.fillCart(t)
	f.gen.err = fmt.Errorf("maroto: sin memoria")

	_, err := f.checkout.Checkout(context.Background(), cliente)
	require.Error(t, err)
	assert.Equal(t, 0, f.store.CountPurchases())
}

func TestTicket_ConsultaYDescarga(t *testing.T) {
	f := newFixture()
	f.fillCart(t)
	res, err := f.checkout.Checkout(context.Background(), cliente)
	require.NoError(t, err)

	tk, err := f.tickets.GetByPurchase(context.Background(), res.IDCompra)
	require.NoError(t, err)
	assert.Equal(t, res.NumeroTicket, tk.NumeroTicket)
	assert.Equal(t, res.PDFURL, tk.PDFURL)

	pdf, name, err := f.tickets.Download(context.Background(), res.NumeroTicket)
	require.NoError(t, err)
	assert.Equal(t, "ticket_"+res.NumeroTicket+".pdf", name)
	assert.Equal(t, "%PDF-"+res.NumeroTicket, string(pdf))
}

func TestTicket_NoEncontrado(t *testing.T) {
	f := newFixture()

	_, err := f.tickets.GetByPurchase(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = f.tickets.Download(context.Background(), "TCK-2024-000001")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = f.tickets.Download(context.Background(), "../../etc/passwd")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTicket_ArchivoFaltante(t *testing.T) {
	f := newFixture()
	f.fillCart(t)
	res, err := f.checkout.Checkout(context.Background(), cliente)
	require.NoError(t, err)
	f.files.files = map[string][]byte{}

	_, _, err = f.tickets.Download(context.Background(), res.NumeroTicket)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
