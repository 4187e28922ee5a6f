package http

import (
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// ProductHandler maneja el catálogo. Lectura pública, escritura solo admin.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Offers godoc
// @Summary      Productos en oferta
// @Description  Descuento mayor a cero y stock disponible, más recientes primero.
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /ofertas [get]
func (h *ProductHandler) Offers(c *fiber.Ctx) error {
	out, err := h.uc.ListOffers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        body    body      dto.ProductInput  false  "Datos del producto (JSON)"
// @Param        imagen  formData  file              false  "Imagen del producto"
// @Success      201     {object}  dto.ProductResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	in, image, closeImage, err := parseProductRequest(c)
	if err != nil {
		return badRequest(c, "INVALID_BODY", err.Error())
	}
	defer closeImage()
	out, err := h.uc.Create(c.UserContext(), in, image)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Los campos omitidos conservan su valor; una imagen nueva reemplaza la anterior.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        id      path      int               true   "ID del producto"
// @Param        body    body      dto.ProductInput  false  "Campos a actualizar (JSON)"
// @Param        imagen  formData  file              false  "Imagen nueva"
// @Success      200     {object}  dto.ProductResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	in, image, closeImage, err := parseProductRequest(c)
	if err != nil {
		return badRequest(c, "INVALID_BODY", err.Error())
	}
	defer closeImage()
	out, err := h.uc.Update(c.UserContext(), id, in, image)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "producto eliminado"})
}

// parseProductRequest acepta JSON, multipart/form-data o x-www-form-urlencoded.
// closeImage siempre es invocable.
func parseProductRequest(c *fiber.Ctx) (in dto.ProductInput, image *dto.ImageUpload, closeImage func(), err error) {
	closeImage = func() {}
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		if err := c.BodyParser(&in); err != nil {
			return in, nil, closeImage, errors.New("cuerpo inválido")
		}
		return in, nil, closeImage, nil
	}

	form := productForm{c: c}
	if mf, ferr := c.MultipartForm(); ferr == nil {
		form.multipart = mf
	}
	// En formularios un campo vacío cuenta como omitido; para borrar la descripción se usa JSON.
	if v, ok := form.value("nombre"); ok && v != "" {
		in.Nombre = &v
	}
	if v, ok := form.value("descripcion"); ok && v != "" {
		in.Descripcion = &v
	}
	if in.Precio, err = form.decimal("precio"); err != nil {
		return in, nil, closeImage, err
	}
	if in.Descuento, err = form.decimal("descuento"); err != nil {
		return in, nil, closeImage, err
	}
	if v, ok := form.value("stock"); ok && v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil {
			return in, nil, closeImage, errors.New("stock debe ser un entero")
		}
		in.Stock = &n
	}

	if form.multipart != nil {
		if files := form.multipart.File["imagen"]; len(files) > 0 && files[0].Size > 0 {
			f, openErr := files[0].Open()
			if openErr != nil {
				return in, nil, closeImage, errors.New("no se pudo leer la imagen")
			}
			closeImage = func() { _ = f.Close() }
			image = &dto.ImageUpload{Filename: files[0].Filename, Content: f}
		}
	}
	return in, image, closeImage, nil
}

type productForm struct {
	c         *fiber.Ctx
	multipart *multipart.Form
}

// value distingue un campo ausente de uno vacío.
func (f productForm) value(key string) (string, bool) {
	if f.multipart != nil {
		if vals, ok := f.multipart.Value[key]; ok && len(vals) > 0 {
			return vals[0], true
		}
		return "", false
	}
	args := f.c.Request().PostArgs()
	if args.Has(key) {
		return string(args.Peek(key)), true
	}
	return "", false
}

func (f productForm) decimal(key string) (*decimal.Decimal, error) {
	v, ok := f.value(key)
	if !ok || v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, errors.New(key + " debe ser numérico")
	}
	return &d, nil
}
