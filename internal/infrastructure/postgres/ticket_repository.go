package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.TicketRepository = (*TicketRepo)(nil)

// TicketRepo implementación del puerto TicketRepository sobre PostgreSQL.
type TicketRepo struct {
	q Querier
}

// NewTicketRepository construye el adaptador de tickets. Pasar pool o tx (Querier).
func NewTicketRepository(q Querier) *TicketRepo {
	return &TicketRepo{q: q}
}

// Create registra el ticket de una compra.
func (r *TicketRepo) Create(ctx context.Context, t *entity.Ticket) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO tickets (id_compra, numero_ticket, pdf_path) VALUES ($1, $2, $3) RETURNING id_ticket, fecha`,
		t.PurchaseID, t.Number, t.PDFPath,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: la compra ya tiene ticket", domain.ErrConflict)
		}
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// GetByPurchaseID ticket asociado a una compra.
func (r *TicketRepo) GetByPurchaseID(ctx context.Context, purchaseID int64) (*entity.Ticket, error) {
	return r.findOne(ctx, `WHERE id_compra = $1`, purchaseID)
}

// GetByNumber ticket por su número legible.
func (r *TicketRepo) GetByNumber(ctx context.Context, number string) (*entity.Ticket, error) {
	return r.findOne(ctx, `WHERE numero_ticket = $1`, number)
}

func (r *TicketRepo) findOne(ctx context.Context, where string, arg any) (*entity.Ticket, error) {
	var t entity.Ticket
	err := r.q.QueryRow(ctx,
		`SELECT id_ticket, id_compra, numero_ticket, pdf_path, fecha FROM tickets `+where, arg,
	).Scan(&t.ID, &t.PurchaseID, &t.Number, &t.PDFPath, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return &t, nil
}
