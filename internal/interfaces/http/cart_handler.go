package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// CartHandler maneja el carrito abierto del usuario autenticado.
type CartHandler struct {
	uc *usecase.CartUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *usecase.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Get godoc
// @Summary      Ver carrito
// @Description  Crea el carrito abierto si el usuario aún no tiene uno.
// @Tags         carrito
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /carrito [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar producto al carrito
// @Description  Si el producto ya está en el carrito suma la cantidad y reemplaza el precio.
// @Tags         carrito
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddToCartRequest  true  "id_producto, cantidad, precio_unitario"
// @Success      201   {object}  dto.CartMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /carrito/agregar [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Add(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CartMutationResponse{Success: true, Carrito: *out})
}

// Update godoc
// @Summary      Cambiar cantidad de una línea
// @Description  Cantidad menor o igual a cero elimina la línea. Sin cuerpo se asume cantidad 1.
// @Tags         carrito
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        detalleId  path  int                        true  "ID de la línea"
// @Param        body       body  dto.UpdateCartItemRequest  false  "cantidad"
// @Success      200        {object}  dto.CartMutationResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /carrito/actualizar/{detalleId} [put]
func (h *CartHandler) Update(c *fiber.Ctx) error {
	itemID, ok := paramID(c, "detalleId")
	if !ok {
		return badRequest(c, "INVALID_ID", "detalleId inválido")
	}
	var in dto.UpdateCartItemRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}
	qty := 1
	if in.Cantidad != nil {
		qty = *in.Cantidad
	}
	out, err := h.uc.UpdateQuantity(c.UserContext(), GetUserID(c), itemID, qty)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CartMutationResponse{Success: true, Carrito: *out})
}

// Remove godoc
// @Summary      Eliminar línea del carrito
// @Tags         carrito
// @Security     Bearer
// @Produce      json
// @Param        detalleId  path  int  true  "ID de la línea"
// @Success      200        {object}  dto.CartMutationResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /carrito/eliminar/{detalleId} [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	itemID, ok := paramID(c, "detalleId")
	if !ok {
		return badRequest(c, "INVALID_ID", "detalleId inválido")
	}
	out, err := h.uc.Remove(c.UserContext(), GetUserID(c), itemID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CartMutationResponse{Success: true, Carrito: *out})
}

// Clear godoc
// @Summary      Vaciar carrito
// @Tags         carrito
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartMutationResponse
// @Router       /carrito/vaciar [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	out, err := h.uc.Clear(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CartMutationResponse{Success: true, Carrito: *out})
}
