package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/domain/ticket"
)

// CheckoutUseCase convierte el carrito abierto en una compra con su ticket.
type CheckoutUseCase struct {
	txRunner  TxRunner
	generator TicketPDFGenerator
	files     TicketFileStore
	urls      URLBuilder
	now       func() time.Time
}

// NewCheckoutUseCase construye el caso de uso inyectando sus dependencias.
func NewCheckoutUseCase(txRunner TxRunner, generator TicketPDFGenerator, files TicketFileStore, urls URLBuilder) *CheckoutUseCase {
	return &CheckoutUseCase{
		txRunner:  txRunner,
		generator: generator,
		files:     files,
		urls:      urls,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *CheckoutUseCase) WithClock(now func() time.Time) *CheckoutUseCase {
	uc.now = now
	return uc
}

// Checkout finaliza la compra del usuario en una sola transacción:
// cabecera, líneas, PDF, ticket y vaciado del carrito.
//
// Retorna domain.ErrEmptyCart si el carrito no tiene líneas. Si algo falla después de
// escribir el PDF, el archivo se elimina y la transacción se revierte.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, user *entity.User) (*dto.CheckoutResponse, error) {
	var (
		purchase  *entity.Purchase
		number    string
		savedPath string
	)
	now := uc.now()

	err := uc.txRunner.RunCheckout(ctx, func(
		carts repository.CartRepository,
		purchases repository.PurchaseRepository,
		tickets repository.TicketRepository,
	) error {
		// ── 1. Carrito ────────────────────────────────────────────────────────
		cartID, err := carts.EnsureOpenCart(ctx, user.ID)
		if err != nil {
			return err
		}
		items, err := carts.ListItems(ctx, cartID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.ErrEmptyCart
		}

		// ── 2. Cabecera y líneas ──────────────────────────────────────────────
		purchase = &entity.Purchase{UserID: user.ID, Total: entity.CartTotal(items), CreatedAt: now}
		if err := purchases.Create(ctx, purchase); err != nil {
			return err
		}
		lines := make([]*entity.PurchaseItem, 0, len(items))
		for _, it := range items {
			line := &entity.PurchaseItem{
				PurchaseID:  purchase.ID,
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				Subtotal:    it.Subtotal(),
			}
			if err := purchases.CreateItem(ctx, line); err != nil {
				return err
			}
			lines = append(lines, line)
		}

		// ── 3. PDF y ticket ───────────────────────────────────────────────────
		number = ticket.Number(now.Year(), purchase.ID)
		pdf, err := uc.generator.GenerateTicketPDF(ctx, TicketDocument{
			Number:       number,
			Date:         now,
			CustomerName: user.Name,
			Items:        lines,
			Total:        purchase.Total,
			URL:          uc.urls.TicketURL(number),
		})
		if err != nil {
			return fmt.Errorf("generar ticket: %w", err)
		}
		savedPath, err = uc.files.Save(number, pdf)
		if err != nil {
			return fmt.Errorf("guardar ticket: %w", err)
		}
		if err := tickets.Create(ctx, &entity.Ticket{PurchaseID: purchase.ID, Number: number, PDFPath: savedPath}); err != nil {
			return err
		}

		// ── 4. Vaciar carrito ─────────────────────────────────────────────────
		return carts.Clear(ctx, cartID)
	})
	if err != nil {
		if savedPath != "" {
			if rmErr := uc.files.Remove(savedPath); rmErr != nil {
				log.Error().Err(rmErr).Str("ticket", number).Msg("no se pudo eliminar el PDF de una compra revertida")
			}
		}
		return nil, err
	}

	log.Info().Int64("id_compra", purchase.ID).Int64("id_usuario", user.ID).Str("ticket", number).
		Str("total", purchase.Total.StringFixed(2)).Msg("compra finalizada")

	return &dto.CheckoutResponse{
		Mensaje:      "Compra finalizada correctamente",
		IDCompra:     purchase.ID,
		NumeroTicket: number,
		PDFURL:       uc.urls.TicketURL(number),
		Total:        purchase.Total,
	}, nil
}
