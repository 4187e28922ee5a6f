package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// PurchaseRepository persistencia de compras y sus líneas.
type PurchaseRepository interface {
	// Create asigna ID y CreatedAt.
	Create(ctx context.Context, purchase *entity.Purchase) error
	CreateItem(ctx context.Context, item *entity.PurchaseItem) error
	GetByID(ctx context.Context, id int64) (*entity.Purchase, error)
	ListByUser(ctx context.Context, userID int64) ([]*entity.Purchase, error)
	ListItems(ctx context.Context, purchaseID int64) ([]*entity.PurchaseItem, error)
}
