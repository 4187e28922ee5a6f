package dto

import "github.com/shopspring/decimal"

// AddFavoriteRequest entrada de POST /favoritos/agregar.
type AddFavoriteRequest struct {
	IDProducto int64 `json:"id_producto"`
}

// AddFavoriteResponse precio final guardado con el favorito.
type AddFavoriteResponse struct {
	Message     string          `json:"message"`
	PrecioFinal decimal.Decimal `json:"precio_final"`
}

// FavoriteResponse producto favorito. PrecioFinal es el capturado al agregarlo
// y oculta el precio_final calculado del producto.
type FavoriteResponse struct {
	ProductResponse
	PrecioFinal decimal.Decimal `json:"precio_final"`
}

// FavoriteCheckResponse resultado de GET /favoritos/verificar/:idProducto.
type FavoriteCheckResponse struct {
	Favorito bool `json:"favorito"`
}
