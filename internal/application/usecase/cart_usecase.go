package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var errQuantityTooLarge = fmt.Errorf("%w: cantidad máxima por línea %d", domain.ErrInvalidInput, entity.MaxQuantity)

// CartUseCase operaciones sobre el carrito abierto del usuario.
type CartUseCase struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartUseCase construye el caso de uso del carrito.
func NewCartUseCase(carts repository.CartRepository, products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{carts: carts, products: products}
}

// Get devuelve el carrito abierto, creándolo si el usuario aún no tiene uno.
func (uc *CartUseCase) Get(ctx context.Context, userID int64) (*dto.CartResponse, error) {
	cartID, err := uc.carts.EnsureOpenCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.load(ctx, cartID)
}

// Add agrega un producto o acumula la cantidad si ya estaba en el carrito.
func (uc *CartUseCase) Add(ctx context.Context, userID int64, in dto.AddToCartRequest) (*dto.CartResponse, error) {
	if in.IDProducto <= 0 {
		return nil, fmt.Errorf("%w: id_producto es obligatorio", domain.ErrInvalidInput)
	}
	qty := 1
	if in.Cantidad != nil {
		qty = *in.Cantidad
	}
	if qty < 1 {
		return nil, fmt.Errorf("%w: cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if qty > entity.MaxQuantity {
		return nil, errQuantityTooLarge
	}
	product, err := uc.products.GetByID(ctx, in.IDProducto)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, in.IDProducto)
	}
	price := product.FinalPrice()
	if in.PrecioUnitario != nil {
		if in.PrecioUnitario.IsNegative() {
			return nil, fmt.Errorf("%w: precio_unitario no puede ser negativo", domain.ErrInvalidInput)
		}
		price = *in.PrecioUnitario
	}

	cartID, err := uc.carts.EnsureOpenCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := uc.carts.ListItems(ctx, cartID)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ProductID == product.ID && int64(it.Quantity)+int64(qty) > entity.MaxQuantity {
			return nil, errQuantityTooLarge
		}
	}
	if err := uc.carts.AddOrMerge(ctx, cartID, product.ID, qty, price); err != nil {
		return nil, err
	}
	return uc.load(ctx, cartID)
}

// UpdateQuantity fija la cantidad de una línea; cantidad <= 0 la elimina.
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, userID, itemID int64, qty int) (*dto.CartResponse, error) {
	if qty > entity.MaxQuantity {
		return nil, errQuantityTooLarge
	}
	cartID, err := uc.carts.EnsureOpenCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if qty <= 0 {
		err = uc.carts.DeleteItem(ctx, cartID, itemID)
	} else {
		err = uc.carts.UpdateItemQuantity(ctx, cartID, itemID, qty)
	}
	if err != nil {
		return nil, err
	}
	return uc.load(ctx, cartID)
}

// Remove elimina una línea del carrito del usuario.
func (uc *CartUseCase) Remove(ctx context.Context, userID, itemID int64) (*dto.CartResponse, error) {
	cartID, err := uc.carts.EnsureOpenCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := uc.carts.DeleteItem(ctx, cartID, itemID); err != nil {
		return nil, err
	}
	return uc.load(ctx, cartID)
}

// Clear vacía el carrito del usuario.
func (uc *CartUseCase) Clear(ctx context.Context, userID int64) (*dto.CartResponse, error) {
	cartID, err := uc.carts.EnsureOpenCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := uc.carts.Clear(ctx, cartID); err != nil {
		return nil, err
	}
	return uc.load(ctx, cartID)
}

func (uc *CartUseCase) load(ctx context.Context, cartID int64) (*dto.CartResponse, error) {
	items, err := uc.carts.ListItems(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return ToCartResponse(items), nil
}

// ToCartResponse mapea las líneas y calcula el total.
func ToCartResponse(items []*entity.CartItem) *dto.CartResponse {
	out := &dto.CartResponse{Items: make([]dto.CartItemResponse, 0, len(items)), Total: entity.CartTotal(items)}
	for _, it := range items {
		out.Items = append(out.Items, dto.CartItemResponse{
			IDDetalleCarrito: it.ID,
			IDProducto:       it.ProductID,
			Cantidad:         it.Quantity,
			PrecioUnitario:   it.UnitPrice,
			Subtotal:         it.Subtotal(),
			Nombre:           it.ProductName,
			Descripcion:      it.Description,
			Imagen:           it.Image,
		})
	}
	return out
}
