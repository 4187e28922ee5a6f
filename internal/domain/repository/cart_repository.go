package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// CartRepository persistencia del carrito abierto y sus líneas.
type CartRepository interface {
	// EnsureOpenCart devuelve el id del carrito abierto del usuario, creándolo si no existe.
	// Es idempotente ante llamadas concurrentes.
	EnsureOpenCart(ctx context.Context, userID int64) (int64, error)
	ListItems(ctx context.Context, cartID int64) ([]*entity.CartItem, error)
	// AddOrMerge inserta la línea o, si el producto ya está, suma la cantidad y reemplaza el precio.
	AddOrMerge(ctx context.Context, cartID, productID int64, quantity int, unitPrice decimal.Decimal) error
	// UpdateItemQuantity y DeleteItem devuelven domain.ErrNotFound si la línea no pertenece al carrito.
	UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) error
	DeleteItem(ctx context.Context, cartID, itemID int64) error
	Clear(ctx context.Context, cartID int64) error
}
