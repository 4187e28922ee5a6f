package usecase_test

import (
	"context"
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

const userID int64 = 1

func intPtr(n int) *int { return &n }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func seedProduct(store *testutil.Store, name, price string) int64 {
	return store.SeedProduct(entity.Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Discount: decimal.Zero,
		Stock:    10,
	})
}

func TestCart_GetCreaCarritoUnaSolaVez(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewCartUseCase(store.Carts(), store.Products())

	for i := 0; i < 3; i++ {
		cart, err := uc.Get(context.Background(), userID)
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
	}
	assert.Equal(t, 1, store.CountOpenCarts(userID))
}

func TestCart_AgregarDosVecesFusionaLinea(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewCartUseCase(store.Carts(), store.Products())
	pid := seedProduct(store, "Camisa", "10.00")

	_, err := uc.Add(context.Background(), userID, dto.AddToCartRequest{IDProducto: pid, Cantidad: intPtr(2), PrecioUnitario: decPtr("10.00")})
	require.NoError(t, err)
	cart, err := uc.Add(context.Background(), userID, dto.AddToCartRequest{IDProducto: pid, Cantidad: intPtr(3), PrecioUnitario: decPtr("9.50")})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1, "el mismo producto debe quedar en una sola línea")
	assert.Equal(t, 5, cart.Items[0].Cantidad)
	assert.Equal(t, "9.50", cart.Items[0].PrecioUnitario.StringFixed(2), "el precio se reemplaza por el último enviado")
	assert.Equal(t, "47.50", cart.Total.StringFixed(2))
	assert.Equal(t, "Camisa", cart.Items[0].Nombre)
}

func TestCart_AgregarSinPrecioUsaPrecioConDescuento(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewCartUseCase(store.Carts(), store.Products())
	pid := store.SeedProduct(entity.Product{Name: "Gorra", Price: decimal.RequireFromString("20.00"), Discount: decimal.NewFromInt(25), Stock: 1})

	cart, err := uc.Add(context.Background(), userID, dto.AddToCartRequest{IDProducto: pid})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Cantidad, "cantidad por defecto 1")
	assert.Equal(t, "15.00", cart.Items[0].PrecioUnitario.StringFixed(2))
}

func TestCart_AgregarValidaciones(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewCartUseCase(store.Carts(), store.Products())
	pid := seedProduct(store, "Camisa", "10.00")

	_, err := uc.Add(context.Background(), userID, dto.AddToCartRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Add(context.Background(), userID, dto.AddToCartRequest{IDProducto: pid, Cantidad: intPtr(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Add(context.Background(), userID, dto.AddToCartRequest{IDProducto: pid, PrecioUnitario: decPtr("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Add(context.Background(), userID, dto.AddToCartRequest{IDProducto: 999})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCart_ActualizarCantidad(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewCartUseCase(store.Carts(), store.Products())
	pid := seedProduct(store, "Camisa", "10.00")

	cart, err := uc.Add(context.Background(), userID, dto.AddToCartRequest{IDProducto: pid, Cantidad: intPtr(2)})
	require.NoError(t, err)
	lineID := cart.Items[0].IDDetalleCarrito

	cart, err = uc.UpdateQuantity(context.Background(), userID, lineID, 7)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 7, cart.Items[0].Cantidad)

	cart, err = uc.UpdateQuantity(context.Background(), userID, lineID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items, "cantidad 0 elimina la línea")
}

func TestCart_LineaDeOtroUsuarioNoEncontrada(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewCartUseCase(store.Carts(), store.Products())
	pid := seedProduct(store, "Camisa", "10.00")

	cart, err := uc.Add(context.Background(), userID, dto.AddToCartRequest{IDProducto: pid})
	require.NoError(t, err)
	lineID := cart.Items[0].IDDetalleCarrito

	_, err = uc.UpdateQuantity(context.Background(), 2, lineID, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Remove(context.Background(), 2, lineID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cart, err = uc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Cantidad)
}

func TestCart_EliminarYVaciar(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewCartUseCase(store.Carts(), store.Products())
	a := seedProduct(store, "Camisa", "10.00")
	b := seedProduct(store, "Gorra", "5.00")

	_, err := uc.Add(context.Background(), userID, dto.AddToCartRequest{IDProducto: a})
	require.NoError(t, err)
	cart, err := uc.Add(context.Background(), userID, dto.AddToCartRequest{IDProducto: b})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	cart, err = uc.Remove(context.Background(), userID, cart.Items[0].IDDetalleCarrito)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, b, cart.Items[0].IDProducto)

	cart, err = uc.Clear(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Total.IsZero())
}

func TestCart_CantidadNoSuperaElMaximo(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewCartUseCase(store.Carts(), store.Products())
	pid := seedProduct(store, "Camisa", "10.00")
	ctx := context.Background()

	cart, err := uc.Add(ctx, userID, dto.AddToCartRequest{IDProducto: pid})
	require.NoError(t, err)
	itemID := cart.Items[0].IDDetalleCarrito

	_, err = uc.Add(ctx, userID, dto.AddToCartRequest{IDProducto: pid, Cantidad: intPtr(entity.MaxQuantity)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la suma desbordaría la columna")

	_, err = uc.UpdateQuantity(ctx, userID, itemID, entity.MaxQuantity+1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cart, err = uc.UpdateQuantity(ctx, userID, itemID, entity.MaxQuantity)
	require.NoError(t, err)
	assert.Equal(t, entity.MaxQuantity, cart.Items[0].Cantidad)

	cart, err = uc.Get(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
}
