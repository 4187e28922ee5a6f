package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutResponse resultado de finalizar la compra.
type CheckoutResponse struct {
	Mensaje      string          `json:"mensaje"`
	IDCompra     int64           `json:"id_compra"`
	NumeroTicket string          `json:"numero_ticket"`
	PDFURL       string          `json:"pdf_url"`
	Total        decimal.Decimal `json:"total"`
}

// PurchaseResponse cabecera de compra.
type PurchaseResponse struct {
	IDCompra int64           `json:"id_compra"`
	Total    decimal.Decimal `json:"total"`
	Fecha    time.Time       `json:"fecha"`
}

// PurchaseItemResponse línea de compra.
type PurchaseItemResponse struct {
	IDProducto     int64           `json:"id_producto"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// PurchaseDetailResponse compra con sus líneas y ticket.
type PurchaseDetailResponse struct {
	PurchaseResponse
	NumeroTicket string                 `json:"numero_ticket,omitempty"`
	Productos    []PurchaseItemResponse `json:"productos"`
}
