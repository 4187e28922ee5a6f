package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// FavoriteHandler maneja la lista de favoritos del usuario autenticado.
type FavoriteHandler struct {
	uc *usecase.FavoriteUseCase
}

// NewFavoriteHandler construye el handler.
func NewFavoriteHandler(uc *usecase.FavoriteUseCase) *FavoriteHandler {
	return &FavoriteHandler{uc: uc}
}

// List godoc
// @Summary      Listar favoritos
// @Tags         favoritos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FavoriteResponse
// @Router       /favoritos [get]
func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar favorito
// @Description  Guarda el precio final vigente; agregar de nuevo lo actualiza.
// @Tags         favoritos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddFavoriteRequest  true  "id_producto"
// @Success      200   {object}  dto.AddFavoriteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /favoritos/agregar [post]
func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	var in dto.AddFavoriteRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	price, err := h.uc.Add(c.UserContext(), GetUserID(c), in.IDProducto)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AddFavoriteResponse{Message: "Producto agregado a favoritos", PrecioFinal: price})
}

// Remove godoc
// @Summary      Quitar favorito
// @Tags         favoritos
// @Security     Bearer
// @Produce      json
// @Param        idProducto  path  int  true  "ID del producto"
// @Success      200         {object}  dto.SuccessResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Router       /favoritos/eliminar/{idProducto} [delete]
func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	productID, ok := paramID(c, "idProducto")
	if !ok {
		return badRequest(c, "INVALID_ID", "idProducto inválido")
	}
	if err := h.uc.Remove(c.UserContext(), GetUserID(c), productID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "Producto eliminado de favoritos"})
}

// Check godoc
// @Summary      Verificar favorito
// @Tags         favoritos
// @Security     Bearer
// @Produce      json
// @Param        idProducto  path  int  true  "ID del producto"
// @Success      200         {object}  dto.FavoriteCheckResponse
// @Router       /favoritos/verificar/{idProducto} [get]
func (h *FavoriteHandler) Check(c *fiber.Ctx) error {
	productID, ok := paramID(c, "idProducto")
	if !ok {
		return badRequest(c, "INVALID_ID", "idProducto inválido")
	}
	fav, err := h.uc.IsFavorite(c.UserContext(), GetUserID(c), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FavoriteCheckResponse{Favorito: fav})
}

// Clear godoc
// @Summary      Vaciar favoritos
// @Tags         favoritos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse
// @Router       /favoritos/vaciar [delete]
func (h *FavoriteHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.UserContext(), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "Favoritos vaciados"})
}
