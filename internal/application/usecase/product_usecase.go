package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ImageStore guarda las imágenes subidas de productos.
type ImageStore interface {
	// Save guarda el contenido con un nombre único derivado de originalName y devuelve ese nombre.
	Save(originalName string, content io.Reader) (string, error)
	Remove(name string) error
}

// CatalogCache caché de lecturas públicas del catálogo.
type CatalogCache interface {
	Products(key string) ([]*entity.Product, bool)
	SetProducts(key string, products []*entity.Product)
	Invalidate()
}

// Claves de CatalogCache.
const (
	CatalogKeyAll    = "products:all"
	CatalogKeyOffers = "products:offers"
)

var maxDiscount = decimal.NewFromInt(100)

// ProductUseCase casos de uso del catálogo.
type ProductUseCase struct {
	repo   repository.ProductRepository
	images ImageStore
	cache  CatalogCache
}

// NewProductUseCase construye el caso de uso. cache puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, images ImageStore, cache CatalogCache) *ProductUseCase {
	return &ProductUseCase{repo: repo, images: images, cache: cache}
}

// List catálogo completo.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	return uc.cachedList(ctx, CatalogKeyAll, uc.repo.List)
}

// ListOffers productos con descuento y stock, más recientes primero.
func (uc *ProductUseCase) ListOffers(ctx context.Context) ([]dto.ProductResponse, error) {
	return uc.cachedList(ctx, CatalogKeyOffers, uc.repo.ListOffers)
}

func (uc *ProductUseCase) cachedList(ctx context.Context, key string,
	load func(context.Context) ([]*entity.Product, error)) ([]dto.ProductResponse, error) {
	if uc.cache != nil {
		if list, ok := uc.cache.Products(key); ok {
			return toProductResponses(list), nil
		}
	}
	list, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.SetProducts(key, list)
	}
	return toProductResponses(list), nil
}

// GetByID obtiene un producto; ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// Create crea un producto. nombre y precio son obligatorios.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductInput, image *dto.ImageUpload) (*dto.ProductResponse, error) {
	if in.Nombre == nil || strings.TrimSpace(*in.Nombre) == "" {
		return nil, fmt.Errorf("%w: nombre es obligatorio", domain.ErrInvalidInput)
	}
	if in.Precio == nil {
		return nil, fmt.Errorf("%w: precio es obligatorio", domain.ErrInvalidInput)
	}
	p := &entity.Product{Discount: decimal.Zero}
	applyProductInput(p, in)
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	if image != nil {
		name, err := uc.images.Save(image.Filename, image.Content)
		if err != nil {
			return nil, fmt.Errorf("guardar imagen: %w", err)
		}
		p.Image = name
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		uc.discardImage(p.Image)
		return nil, err
	}
	uc.invalidate()
	return toProductResponse(p), nil
}

// Update aplica solo los campos presentes; una imagen nueva reemplaza a la anterior.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.ProductInput, image *dto.ImageUpload) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	applyProductInput(p, in)
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	previousImage := p.Image
	if image != nil {
		name, err := uc.images.Save(image.Filename, image.Content)
		if err != nil {
			return nil, fmt.Errorf("guardar imagen: %w", err)
		}
		p.Image = name
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		if p.Image != previousImage {
			uc.discardImage(p.Image)
		}
		return nil, err
	}
	if p.Image != previousImage {
		uc.discardImage(previousImage)
	}
	uc.invalidate()
	return toProductResponse(p), nil
}

// Delete elimina un producto y su imagen.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.discardImage(p.Image)
	uc.invalidate()
	return nil
}

func (uc *ProductUseCase) invalidate() {
	if uc.cache != nil {
		uc.cache.Invalidate()
	}
}

func (uc *ProductUseCase) discardImage(name string) {
	if name == "" || uc.images == nil {
		return
	}
	if err := uc.images.Remove(name); err != nil {
		log.Warn().Err(err).Str("imagen", name).Msg("no se pudo eliminar la imagen del producto")
	}
}

func applyProductInput(p *entity.Product, in dto.ProductInput) {
	if in.Nombre != nil {
		p.Name = strings.TrimSpace(*in.Nombre)
	}
	if in.Descripcion != nil {
		p.Description = *in.Descripcion
	}
	if in.Precio != nil {
		p.Price = *in.Precio
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Descuento != nil {
		p.Discount = *in.Descuento
	}
}

func validateProduct(p *entity.Product) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: nombre no puede quedar vacío", domain.ErrInvalidInput)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: precio no puede ser negativo", domain.ErrInvalidInput)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock no puede ser negativo", domain.ErrInvalidInput)
	case p.Discount.IsNegative() || p.Discount.GreaterThan(maxDiscount):
		return fmt.Errorf("%w: descuento debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Nombre:      p.Name,
		Descripcion: p.Description,
		Precio:      p.Price,
		PrecioFinal: p.FinalPrice(),
		Imagen:      p.Image,
		Stock:       p.Stock,
		Descuento:   p.Discount,
		CreatedAt:   p.CreatedAt,
	}
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out
}
