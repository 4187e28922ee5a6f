package checkout

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repositorios que toca el checkout.
// Si fn devuelve error nada de lo escrito persiste.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		carts repository.CartRepository,
		purchases repository.PurchaseRepository,
		tickets repository.TicketRepository,
	) error) error
}

// TicketDocument datos que se imprimen en el ticket.
type TicketDocument struct {
	Number       string
	Date         time.Time
	CustomerName string
	Items        []*entity.PurchaseItem
	Total        decimal.Decimal
	URL          string // URL de descarga; se imprime como QR si no está vacía
}

// TicketPDFGenerator genera el PDF del ticket.
type TicketPDFGenerator interface {
	GenerateTicketPDF(ctx context.Context, doc TicketDocument) ([]byte, error)
}

// TicketFileStore guarda y lee los PDF de tickets.
type TicketFileStore interface {
	// Save escribe el PDF del ticket y devuelve la ruta guardada.
	Save(number string, content []byte) (string, error)
	Read(path string) ([]byte, error)
	Remove(path string) error
}
