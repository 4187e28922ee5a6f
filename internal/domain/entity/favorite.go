package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Favorite producto marcado por un usuario. FinalPrice se fija al agregar y no se
// recalcula si el descuento del producto cambia después.
type Favorite struct {
	UserID     int64
	Product    Product
	FinalPrice decimal.Decimal
	CreatedAt  time.Time
}
