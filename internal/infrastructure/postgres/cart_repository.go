package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación del puerto CartRepository sobre PostgreSQL.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador del carrito. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// EnsureOpenCart obtiene o crea el carrito abierto apoyándose en el índice único parcial
// carrito_abierto_usuario_key. Si otra transacción lo creó en paralelo, el INSERT no hace nada
// y la segunda vuelta lo encuentra con el SELECT.
func (r *CartRepo) EnsureOpenCart(ctx context.Context, userID int64) (int64, error) {
	query := `
		WITH ins AS (
			INSERT INTO carrito (id_usuario, estado) VALUES ($1, 'abierto')
			ON CONFLICT (id_usuario) WHERE estado = 'abierto' DO NOTHING
			RETURNING id_carrito
		)
		SELECT id_carrito FROM ins
		UNION ALL
		SELECT id_carrito FROM carrito WHERE id_usuario = $1 AND estado = 'abierto'
		LIMIT 1`
	var id int64
	for attempt := 0; attempt < 2; attempt++ {
		err := r.q.QueryRow(ctx, query, userID).Scan(&id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("ensure open cart: %w", err)
		}
	}
	return 0, fmt.Errorf("ensure open cart: carrito abierto no visible para el usuario %d", userID)
}

// ListItems líneas del carrito con los datos del producto, en orden de inserción.
func (r *CartRepo) ListItems(ctx context.Context, cartID int64) ([]*entity.CartItem, error) {
	query := `
		SELECT d.id_detalle_carrito, d.id_carrito, d.id_producto, d.cantidad, d.precio_unitario,
		       p.nombre, p.descripcion, COALESCE(p.imagen, '')
		FROM detalles_carrito d
		JOIN products p ON p.id = d.id_producto
		WHERE d.id_carrito = $1
		ORDER BY d.id_detalle_carrito`
	rows, err := r.q.Query(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CartItem
	for rows.Next() {
		var it entity.CartItem
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.UnitPrice,
			&it.ProductName, &it.Description, &it.Image); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// AddOrMerge inserta la línea o acumula la cantidad sobre la existente del mismo producto.
func (r *CartRepo) AddOrMerge(ctx context.Context, cartID, productID int64, quantity int, unitPrice decimal.Decimal) error {
	query := `
		INSERT INTO detalles_carrito (id_carrito, id_producto, cantidad, precio_unitario)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id_carrito, id_producto) DO UPDATE
		SET cantidad = detalles_carrito.cantidad + EXCLUDED.cantidad,
		    precio_unitario = EXCLUDED.precio_unitario`
	if _, err := r.q.Exec(ctx, query, cartID, productID, quantity, unitPrice); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto %d", domain.ErrNotFound, productID)
		}
		if isOutOfRange(err) {
			return fmt.Errorf("%w: cantidad fuera de rango", domain.ErrInvalidInput)
		}
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

// UpdateItemQuantity fija la cantidad de una línea del carrito indicado.
func (r *CartRepo) UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE detalles_carrito SET cantidad = $3 WHERE id_carrito = $1 AND id_detalle_carrito = $2`,
		cartID, itemID, quantity)
	if err != nil {
		if isOutOfRange(err) {
			return fmt.Errorf("%w: cantidad fuera de rango", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItem elimina una línea del carrito indicado.
func (r *CartRepo) DeleteItem(ctx context.Context, cartID, itemID int64) error {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM detalles_carrito WHERE id_carrito = $1 AND id_detalle_carrito = $2`, cartID, itemID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Clear vacía el carrito.
func (r *CartRepo) Clear(ctx context.Context, cartID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM detalles_carrito WHERE id_carrito = $1`, cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
