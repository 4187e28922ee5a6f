package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase cabecera de compra. Inmutable una vez creada.
type Purchase struct {
	ID        int64
	UserID    int64
	Total     decimal.Decimal
	CreatedAt time.Time
}

// PurchaseItem copia desnormalizada de una línea del carrito al momento de la compra.
type PurchaseItem struct {
	ID          int64
	PurchaseID  int64
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
