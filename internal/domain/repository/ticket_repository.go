package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// TicketRepository persistencia de tickets (uno por compra).
type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	GetByPurchaseID(ctx context.Context, purchaseID int64) (*entity.Ticket, error)
	GetByNumber(ctx context.Context, number string) (*entity.Ticket, error)
}
