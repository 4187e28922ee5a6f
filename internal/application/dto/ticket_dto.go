package dto

import "time"

// TicketResponse datos del ticket de una compra.
type TicketResponse struct {
	IDTicket     int64     `json:"id_ticket"`
	IDCompra     int64     `json:"id_compra"`
	NumeroTicket string    `json:"numero_ticket"`
	PDFURL       string    `json:"pdf_url"`
	Fecha        time.Time `json:"fecha"`
}
