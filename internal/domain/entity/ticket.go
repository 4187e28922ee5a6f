package entity

import "time"

// Ticket comprobante de una compra (uno por compra).
type Ticket struct {
	ID         int64
	PurchaseID int64
	Number     string
	PDFPath    string
	CreatedAt  time.Time
}
