package dto

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// ProductInput campos editables de un producto. En creación nombre y precio son obligatorios;
// en actualización los campos nil conservan el valor anterior.
type ProductInput struct {
	Nombre      *string          `json:"nombre"`
	Descripcion *string          `json:"descripcion"`
	Precio      *decimal.Decimal `json:"precio"`
	Stock       *int             `json:"stock"`
	Descuento   *decimal.Decimal `json:"descuento"`
}

// ImageUpload archivo de imagen recibido junto al producto.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	PrecioFinal decimal.Decimal `json:"precio_final"`
	Imagen      string          `json:"imagen"`
	Stock       int             `json:"stock"`
	Descuento   decimal.Decimal `json:"descuento"`
	CreatedAt   time.Time       `json:"created_at"`
}
