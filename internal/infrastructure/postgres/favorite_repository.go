package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.FavoriteRepository = (*FavoriteRepo)(nil)

// FavoriteRepo implementación del puerto FavoriteRepository sobre PostgreSQL.
type FavoriteRepo struct {
	q Querier
}

// NewFavoriteRepository construye el adaptador de favoritos. Pasar pool o tx (Querier).
func NewFavoriteRepository(q Querier) *FavoriteRepo {
	return &FavoriteRepo{q: q}
}

// Upsert agrega el favorito o reemplaza su precio final.
func (r *FavoriteRepo) Upsert(ctx context.Context, userID, productID int64, finalPrice decimal.Decimal) error {
	query := `
		INSERT INTO favoritos (id_usuario, id_producto, precio_final) VALUES ($1, $2, $3)
		ON CONFLICT (id_usuario, id_producto) DO UPDATE SET precio_final = EXCLUDED.precio_final`
	if _, err := r.q.Exec(ctx, query, userID, productID, finalPrice); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto %d", domain.ErrNotFound, productID)
		}
		return fmt.Errorf("upsert favorite: %w", err)
	}
	return nil
}

// Remove quita un producto de los favoritos del usuario.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, productID int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM favoritos WHERE id_usuario = $1 AND id_producto = $2`, userID, productID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUser favoritos con los datos actuales del producto, últimos agregados primero.
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.Favorite, error) {
	query := `
		SELECT f.id_usuario, f.precio_final, f.created_at,
		       p.id, p.nombre, p.descripcion, p.precio, COALESCE(p.imagen, ''), p.stock, p.descuento, p.created_at
		FROM favoritos f
		JOIN products p ON p.id = f.id_producto
		WHERE f.id_usuario = $1
		ORDER BY f.created_at DESC, p.id DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()
	var list []*entity.Favorite
	for rows.Next() {
		var f entity.Favorite
		p := &f.Product
		if err := rows.Scan(&f.UserID, &f.FinalPrice, &f.CreatedAt,
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.Stock, &p.Discount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// Exists indica si el producto está en los favoritos del usuario.
func (r *FavoriteRepo) Exists(ctx context.Context, userID, productID int64) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favoritos WHERE id_usuario = $1 AND id_producto = $2)`, userID, productID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists favorite: %w", err)
	}
	return ok, nil
}

// Clear elimina todos los favoritos del usuario.
func (r *FavoriteRepo) Clear(ctx context.Context, userID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM favoritos WHERE id_usuario = $1`, userID); err != nil {
		return fmt.Errorf("clear favorites: %w", err)
	}
	return nil
}
