package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Estados del carrito.
const (
	CartStatusOpen   = "abierto"
	CartStatusClosed = "cerrado"
)

// MaxQuantity tope de cantidad por línea; las columnas cantidad son INTEGER.
const MaxQuantity = math.MaxInt32

// Cart carrito de un usuario. Solo puede existir uno abierto por usuario.
type Cart struct {
	ID        int64
	UserID    int64
	Status    string
	CreatedAt time.Time
}

// CartItem línea del carrito con el precio capturado al agregar.
// ProductName, Description e Image vienen del join con products (solo lectura).
type CartItem struct {
	ID          int64
	CartID      int64
	ProductID   int64
	Quantity    int
	UnitPrice   decimal.Decimal
	ProductName string
	Description string
	Image       string
}

// Subtotal precio unitario por cantidad.
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartTotal suma de subtotales de las líneas.
func CartTotal(items []*CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
