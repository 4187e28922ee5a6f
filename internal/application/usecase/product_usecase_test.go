package usecase_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

type memImages struct {
	saved   map[string]string
	removed []string
	n       int
}

func newMemImages() *memImages { return &memImages{saved: map[string]string{}} }

func (m *memImages) Save(name string, content io.Reader) (string, error) {
	b, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	m.n++
	stored := strings.Repeat("x", m.n) + "_" + name
	m.saved[stored] = string(b)
	return stored, nil
}

func (m *memImages) Remove(name string) error {
	m.removed = append(m.removed, name)
	delete(m.saved, name)
	return nil
}

type mapCache struct {
	data        map[string][]*entity.Product
	invalidated int
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]*entity.Product{}} }

func (c *mapCache) Products(key string) ([]*entity.Product, bool) {
	v, ok := c.data[key]
	return v, ok
}
func (c *mapCache) SetProducts(key string, p []*entity.Product) { c.data[key] = p }
func (c *mapCache) Invalidate() {
	c.invalidated++
	c.data = map[string][]*entity.Product{}
}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_CreateValida(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewProductUseCase(store.Products(), newMemImages(), nil)

	_, err := uc.Create(context.Background(), dto.ProductInput{Precio: decPtr("1")}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre obligatorio")

	_, err = uc.Create(context.Background(), dto.ProductInput{Nombre: strPtr("Camisa")}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio obligatorio")

	_, err = uc.Create(context.Background(), dto.ProductInput{Nombre: strPtr("Camisa"), Precio: decPtr("10"), Descuento: decPtr("150")}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "descuento fuera de rango")

	_, err = uc.Create(context.Background(), dto.ProductInput{Nombre: strPtr("Camisa"), Precio: decPtr("10"), Stock: intPtr(-1)}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "stock negativo")
}

func TestProduct_CreateConImagen(t *testing.T) {
	store := testutil.NewStore()
	images := newMemImages()
	uc := usecase.NewProductUseCase(store.Products(), images, nil)

	p, err := uc.Create(context.Background(), dto.ProductInput{
		Nombre: strPtr("Camisa"), Precio: decPtr("80.00"), Descuento: decPtr("20"), Stock: intPtr(4),
	}, &dto.ImageUpload{Filename: "camisa.png", Content: strings.NewReader("PNG")})
	require.NoError(t, err)

	assert.Equal(t, "x_camisa.png", p.Imagen)
	assert.Equal(t, "PNG", images.saved["x_camisa.png"])
	assert.Equal(t, "64.00", p.PrecioFinal.StringFixed(2))
}

func TestProduct_UpdateConservaCamposOmitidos(t *testing.T) {
	store := testutil.NewStore()
	images := newMemImages()
	uc := usecase.NewProductUseCase(store.Products(), images, nil)
	created, err := uc.Create(context.Background(), dto.ProductInput{
		Nombre: strPtr("Camisa"), Descripcion: strPtr("Algodón"), Precio: decPtr("10"), Stock: intPtr(3),
	}, &dto.ImageUpload{Filename: "a.png", Content: strings.NewReader("A")})
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), created.ID, dto.ProductInput{Precio: decPtr("12.50")},
		&dto.ImageUpload{Filename: "b.png", Content: strings.NewReader("B")})
	require.NoError(t, err)

	assert.Equal(t, "Camisa", updated.Nombre)
	assert.Equal(t, "Algodón", updated.Descripcion)
	assert.Equal(t, 3, updated.Stock)
	assert.Equal(t, "12.50", updated.Precio.StringFixed(2))
	assert.Equal(t, "xx_b.png", updated.Imagen)
	assert.Equal(t, []string{"x_a.png"}, images.removed, "la imagen anterior se elimina")
}

func TestProduct_UpdateYDeleteInexistente(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewProductUseCase(store.Products(), newMemImages(), nil)

	_, err := uc.Update(context.Background(), 99, dto.ProductInput{Nombre: strPtr("x")}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(context.Background(), 99), domain.ErrNotFound)
	_, err = uc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_OfertasSoloConDescuentoYStock(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewProductUseCase(store.Products(), newMemImages(), nil)
	store.SeedProduct(entity.Product{Name: "Sin descuento", Price: decimal.NewFromInt(10), Discount: decimal.Zero, Stock: 5})
	store.SeedProduct(entity.Product{Name: "Agotado", Price: decimal.NewFromInt(10), Discount: decimal.NewFromInt(10), Stock: 0})
	viejo := store.SeedProduct(entity.Product{Name: "Oferta vieja", Price: decimal.NewFromInt(10), Discount: decimal.NewFromInt(10), Stock: 1})
	nuevo := store.SeedProduct(entity.Product{Name: "Oferta nueva", Price: decimal.NewFromInt(10), Discount: decimal.NewFromInt(30), Stock: 1})

	offers, err := uc.ListOffers(context.Background())
	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, nuevo, offers[0].ID, "más recientes primero")
	assert.Equal(t, viejo, offers[1].ID)
}

func TestProduct_CacheSeInvalidaAlEscribir(t *testing.T) {
	store := testutil.NewStore()
	cache := newMapCache()
	uc := usecase.NewProductUseCase(store.Products(), newMemImages(), cache)
	seedProduct(store, "Camisa", "10")

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)

	// Inserción directa al repositorio: la caché sigue sirviendo el listado anterior.
	seedProduct(store, "Gorra", "5")
	list, err = uc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.Create(context.Background(), dto.ProductInput{Nombre: strPtr("Media"), Precio: decPtr("2")}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)

	list, err = uc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestProduct_DeleteConComprasEsConflicto(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewProductUseCase(store.Products(), newMemImages(), nil)
	pid := seedProduct(store, "Camisa", "10")

	purchase := &entity.Purchase{UserID: userID, Total: decimal.NewFromInt(10)}
	require.NoError(t, store.Purchases().Create(context.Background(), purchase))
	require.NoError(t, store.Purchases().CreateItem(context.Background(), &entity.PurchaseItem{
		PurchaseID: purchase.ID, ProductID: pid, Quantity: 1, UnitPrice: decimal.NewFromInt(10), Subtotal: decimal.NewFromInt(10),
	}))

	assert.ErrorIs(t, uc.Delete(context.Background(), pid), domain.ErrConflict)
}
