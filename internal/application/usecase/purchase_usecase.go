package usecase

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// PurchaseUseCase consultas del historial de compras.
type PurchaseUseCase struct {
	purchases repository.PurchaseRepository
	tickets   repository.TicketRepository
}

// NewPurchaseUseCase construye el caso de uso de compras.
func NewPurchaseUseCase(purchases repository.PurchaseRepository, tickets repository.TicketRepository) *PurchaseUseCase {
	return &PurchaseUseCase{purchases: purchases, tickets: tickets}
}

// ListByUser compras del usuario, más recientes primero.
func (uc *PurchaseUseCase) ListByUser(ctx context.Context, userID int64) ([]dto.PurchaseResponse, error) {
	list, err := uc.purchases.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.PurchaseResponse{IDCompra: p.ID, Total: p.Total, Fecha: p.CreatedAt})
	}
	return out, nil
}

// Get detalle de una compra del usuario. Las compras de otros usuarios responden ErrNotFound.
func (uc *PurchaseUseCase) Get(ctx context.Context, userID, purchaseID int64) (*dto.PurchaseDetailResponse, error) {
	p, err := uc.purchases.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.UserID != userID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.purchases.ListItems(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.PurchaseDetailResponse{
		PurchaseResponse: dto.PurchaseResponse{IDCompra: p.ID, Total: p.Total, Fecha: p.CreatedAt},
		Productos:        make([]dto.PurchaseItemResponse, 0, len(items)),
	}
	for _, it := range items {
		out.Productos = append(out.Productos, dto.PurchaseItemResponse{
			IDProducto:     it.ProductID,
			Nombre:         it.ProductName,
			Cantidad:       it.Quantity,
			PrecioUnitario: it.UnitPrice,
			Subtotal:       it.Subtotal,
		})
	}
	t, err := uc.tickets.GetByPurchaseID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if t != nil {
		out.NumeroTicket = t.Number
	}
	return out, nil
}
