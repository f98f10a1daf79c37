package memory

import (
	"time"

	"facility-services-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

const catalogKey = "service_catalog_active"

// CatalogCache keeps the active service catalog in memory. The catalog changes
// rarely; a short TTL keeps admin edits visible without hitting the DB on every
// request-form load.
type CatalogCache struct {
	cache *cache.Cache
}

func NewCatalogCache() *CatalogCache {
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &CatalogCache{
		cache: c,
	}
}

func (r *CatalogCache) Save(items []*entity.ServiceCatalogItem) {
	r.cache.Set(catalogKey, items, cache.DefaultExpiration)
}

func (r *CatalogCache) Get() ([]*entity.ServiceCatalogItem, bool) {
	if x, found := r.cache.Get(catalogKey); found {
		return x.([]*entity.ServiceCatalogItem), true
	}
	return nil, false
}

func (r *CatalogCache) Invalidate() {
	r.cache.Delete(catalogKey)
}
