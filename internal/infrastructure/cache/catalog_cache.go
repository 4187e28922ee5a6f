// Package cache implementa cachés en memoria de lecturas públicas.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

var _ usecase.CatalogCache = (*CatalogCache)(nil)

// CatalogCache guarda los listados de /products y /ofertas durante ttl.
// Cualquier escritura del catálogo llama a Invalidate.
type CatalogCache struct {
	c *gocache.Cache
}

// NewCatalogCache con ttl <= 0 devuelve nil; un *CatalogCache nil no guarda nada.
func NewCatalogCache(ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		return nil
	}
	return &CatalogCache{c: gocache.New(ttl, 2*ttl)}
}

func (cc *CatalogCache) Products(key string) ([]*entity.Product, bool) {
	if cc == nil {
		return nil, false
	}
	v, ok := cc.c.Get(key)
	if !ok {
		return nil, false
	}
	products, ok := v.([]*entity.Product)
	return products, ok
}

func (cc *CatalogCache) SetProducts(key string, products []*entity.Product) {
	if cc == nil {
		return
	}
	cc.c.SetDefault(key, products)
}

func (cc *CatalogCache) Invalidate() {
	if cc == nil {
		return
	}
	cc.c.Flush()
}
