package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/checkout"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// PurchaseHandler finaliza compras y consulta el historial.
type PurchaseHandler struct {
	checkout  *checkout.CheckoutUseCase
	purchases *usecase.PurchaseUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(co *checkout.CheckoutUseCase, purchases *usecase.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{checkout: co, purchases: purchases}
}

// Checkout godoc
// @Summary      Finalizar compra
// @Description  Registra la compra, genera el ticket PDF y vacía el carrito en una sola transacción.
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.CheckoutResponse
// @Failure      400  {object}  dto.ErrorResponse  "carrito vacío"
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /compras/finalizar [post]
func (h *PurchaseHandler) Checkout(c *fiber.Ctx) error {
	out, err := h.checkout.Checkout(c.UserContext(), GetUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Historial de compras
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PurchaseResponse
// @Router       /compras [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	out, err := h.purchases.ListByUser(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de una compra
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /compras/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	out, err := h.purchases.Get(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
