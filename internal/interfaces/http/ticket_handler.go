package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/checkout"
)

// TicketHandler consulta y descarga de tickets (rutas públicas).
type TicketHandler struct {
	uc *checkout.TicketUseCase
}

// NewTicketHandler construye el handler.
func NewTicketHandler(uc *checkout.TicketUseCase) *TicketHandler {
	return &TicketHandler{uc: uc}
}

// GetByPurchase godoc
// @Summary      Ticket de una compra
// @Tags         tickets
// @Produce      json
// @Param        idCompra  path  int  true  "ID de la compra"
// @Success      200       {object}  dto.TicketResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /ticket/compra/{idCompra} [get]
func (h *TicketHandler) GetByPurchase(c *fiber.Ctx) error {
	id, ok := paramID(c, "idCompra")
	if !ok {
		return badRequest(c, "INVALID_ID", "idCompra inválido")
	}
	out, err := h.uc.GetByPurchase(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Descargar ticket PDF
// @Tags         tickets
// @Produce      application/pdf
// @Param        numero  path  string  true  "Número de ticket (TCK-YYYY-NNNNNN)"
// @Success      200     {file}    binary
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /ticket/{numero} [get]
func (h *TicketHandler) Download(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.Download(c.UserContext(), c.Params("numero"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "inline; filename="+filename)
	return c.Send(pdf)
}
