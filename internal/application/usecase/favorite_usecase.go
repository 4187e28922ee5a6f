package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// FavoriteUseCase lista de favoritos del usuario.
type FavoriteUseCase struct {
	favorites repository.FavoriteRepository
	products  repository.ProductRepository
}

// NewFavoriteUseCase construye el caso de uso de favoritos.
func NewFavoriteUseCase(favorites repository.FavoriteRepository, products repository.ProductRepository) *FavoriteUseCase {
	return &FavoriteUseCase{favorites: favorites, products: products}
}

// Add guarda el producto como favorito con su precio con descuento actual.
func (uc *FavoriteUseCase) Add(ctx context.Context, userID, productID int64) (decimal.Decimal, error) {
	if productID <= 0 {
		return decimal.Zero, fmt.Errorf("%w: id_producto es obligatorio", domain.ErrInvalidInput)
	}
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if p == nil {
		return decimal.Zero, fmt.Errorf("%w: producto %d", domain.ErrNotFound, productID)
	}
	final := p.FinalPrice()
	if err := uc.favorites.Upsert(ctx, userID, productID, final); err != nil {
		return decimal.Zero, err
	}
	return final, nil
}

// List favoritos del usuario con el precio guardado al agregarlos.
func (uc *FavoriteUseCase) List(ctx context.Context, userID int64) ([]dto.FavoriteResponse, error) {
	favs, err := uc.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FavoriteResponse, 0, len(favs))
	for _, f := range favs {
		out = append(out, dto.FavoriteResponse{
			ProductResponse: *toProductResponse(&f.Product),
			PrecioFinal:     f.FinalPrice,
		})
	}
	return out, nil
}

// Remove quita un producto de favoritos.
func (uc *FavoriteUseCase) Remove(ctx context.Context, userID, productID int64) error {
	return uc.favorites.Remove(ctx, userID, productID)
}

// IsFavorite indica si el producto está en favoritos.
func (uc *FavoriteUseCase) IsFavorite(ctx context.Context, userID, productID int64) (bool, error) {
	return uc.favorites.Exists(ctx, userID, productID)
}

// Clear vacía los favoritos del usuario.
func (uc *FavoriteUseCase) Clear(ctx context.Context, userID int64) error {
	return uc.favorites.Clear(ctx, userID)
}
