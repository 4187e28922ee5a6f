package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación del puerto PurchaseRepository sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de compras. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create inserta la cabecera de compra.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO compras (id_usuario, total) VALUES ($1, $2) RETURNING id_compra, fecha`,
		p.UserID, p.Total,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de compra.
func (r *PurchaseRepo) CreateItem(ctx context.Context, it *entity.PurchaseItem) error {
	query := `
		INSERT INTO detalles_compra (id_compra, id_producto, nombre_producto, cantidad, precio_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_detalle_compra`
	err := r.q.QueryRow(ctx, query,
		it.PurchaseID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.Subtotal,
	).Scan(&it.ID)
	if err != nil {
		return fmt.Errorf("insert purchase item: %w", err)
	}
	return nil
}

// GetByID obtiene una compra por ID.
func (r *PurchaseRepo) GetByID(ctx context.Context, id int64) (*entity.Purchase, error) {
	var p entity.Purchase
	err := r.q.QueryRow(ctx,
		`SELECT id_compra, id_usuario, total, fecha FROM compras WHERE id_compra = $1`, id,
	).Scan(&p.ID, &p.UserID, &p.Total, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

// ListByUser compras del usuario, más recientes primero.
func (r *PurchaseRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.Purchase, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id_compra, id_usuario, total, fecha FROM compras WHERE id_usuario = $1 ORDER BY id_compra DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.UserID, &p.Total, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListItems líneas de una compra.
func (r *PurchaseRepo) ListItems(ctx context.Context, purchaseID int64) ([]*entity.PurchaseItem, error) {
	query := `
		SELECT id_detalle_compra, id_compra, id_producto, nombre_producto, cantidad, precio_unitario, subtotal
		FROM detalles_compra WHERE id_compra = $1 ORDER BY id_detalle_compra`
	rows, err := r.q.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseItem
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.ProductName, &it.Quantity,
			&it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
