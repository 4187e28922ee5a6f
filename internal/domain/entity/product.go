package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Product representa un producto del catálogo.
// Discount es un porcentaje entre 0 y 100.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string // nombre de archivo dentro del directorio de uploads
	Stock       int
	Discount    decimal.Decimal
	CreatedAt   time.Time
}

// FinalPrice precio con el descuento aplicado, redondeado a centavos.
func (p *Product) FinalPrice() decimal.Decimal {
	off := p.Price.Mul(p.Discount).Div(hundred)
	return p.Price.Sub(off).Round(2)
}

// IsOnOffer indica si el producto debe aparecer en ofertas.
func (p *Product) IsOnOffer() bool {
	return p.Discount.GreaterThan(decimal.Zero) && p.Stock > 0
}
