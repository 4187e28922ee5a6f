package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// FavoriteRepository persistencia de favoritos, clave (usuario, producto).
type FavoriteRepository interface {
	// Upsert inserta o reemplaza el precio final guardado.
	Upsert(ctx context.Context, userID, productID int64, finalPrice decimal.Decimal) error
	Remove(ctx context.Context, userID, productID int64) error
	ListByUser(ctx context.Context, userID int64) ([]*entity.Favorite, error)
	Exists(ctx context.Context, userID, productID int64) (bool, error)
	Clear(ctx context.Context, userID int64) error
}
