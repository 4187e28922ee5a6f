package checkout

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/domain/ticket"
)

// URLBuilder arma la URL pública de descarga de un ticket.
type URLBuilder struct {
	BaseURL string // sin barra final; vacío = ruta relativa
}

// TicketURL ruta de GET /ticket/:numero.
func (b URLBuilder) TicketURL(number string) string {
	return b.BaseURL + "/ticket/" + number
}

// TicketUseCase consulta y descarga de tickets.
type TicketUseCase struct {
	tickets repository.TicketRepository
	files   TicketFileStore
	urls    URLBuilder
}

// NewTicketUseCase construye el caso de uso de tickets.
func NewTicketUseCase(tickets repository.TicketRepository, files TicketFileStore, urls URLBuilder) *TicketUseCase {
	return &TicketUseCase{tickets: tickets, files: files, urls: urls}
}

// GetByPurchase ticket de una compra.
func (uc *TicketUseCase) GetByPurchase(ctx context.Context, purchaseID int64) (*dto.TicketResponse, error) {
	t, err := uc.tickets.GetByPurchaseID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: ticket no encontrado", domain.ErrNotFound)
	}
	return &dto.TicketResponse{
		IDTicket:     t.ID,
		IDCompra:     t.PurchaseID,
		NumeroTicket: t.Number,
		PDFURL:       uc.urls.TicketURL(t.Number),
		Fecha:        t.CreatedAt,
	}, nil
}

// Download devuelve el PDF y el nombre de archivo de un ticket.
func (uc *TicketUseCase) Download(ctx context.Context, number string) (pdf []byte, filename string, err error) {
	if !ticket.Valid(number) {
		return nil, "", fmt.Errorf("%w: ticket no encontrado", domain.ErrNotFound)
	}
	t, err := uc.tickets.GetByNumber(ctx, number)
	if err != nil {
		return nil, "", err
	}
	if t == nil {
		return nil, "", fmt.Errorf("%w: ticket no encontrado", domain.ErrNotFound)
	}
	pdf, err = uc.files.Read(t.PDFPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: PDF no encontrado", domain.ErrNotFound)
		}
		return nil, "", fmt.Errorf("leer ticket: %w", err)
	}
	return pdf, ticket.FileName(t.Number), nil
}
