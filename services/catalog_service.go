package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/catalog"
	"storefront/models"
)

const (
	DefaultFeaturedLimit = 8
	RelatedLimit         = 4
)

var productListKeyPrefix = models.CacheKey("catalog", "products") + ":"

type CatalogService struct {
	index    *catalog.Index
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewCatalogService wraps the index. cache may be nil.
func NewCatalogService(index *catalog.Index, cache *redis.Client, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{index: index, cache: cache, cacheTTL: cacheTTL}
}

func (s *CatalogService) Index() *catalog.Index {
	return s.index
}

func (s *CatalogService) GetAllCategories() []models.Category {
	return s.index.Categories()
}

func (s *CatalogService) GetCategory(slug string) (*models.CategoryDetail, error) {
	c, ok := s.index.GetCategoryBySlug(slug)
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return &models.CategoryDetail{
		Category: c,
		Products: s.index.GetByCategory(slug),
	}, nil
}

func (s *CatalogService) GetProductDetail(id string) (*models.ProductDetail, error) {
	p, ok := s.index.GetByID(id)
	if !ok {
		return nil, ErrProductNotFound
	}
	return &models.ProductDetail{
		Product:         p,
		CompleteTheLook: s.index.CompleteTheLook(p),
		Related:         s.index.Related(p, RelatedLimit),
	}, nil
}

func (s *CatalogService) GetFeatured(limit int) []*models.Product {
	if limit < 1 {
		limit = DefaultFeaturedLimit
	}
	return s.index.GetFeatured(limit)
}

func (s *CatalogService) GetByFlag(flag catalog.Flag) []*models.Product {
	return s.index.GetByFlag(flag)
}

// FilterProducts runs a catalog query. Result ids are cached in Redis when a
// client is configured; a cache failure only costs a recomputation.
func (s *CatalogService) FilterProducts(ctx context.Context, q models.ProductFilterQuery) ([]*models.Product, catalog.SortKey, error) {
	key, err := catalog.ParseSortKey(strings.TrimSpace(q.Sort))
	if err != nil {
		return nil, key, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}

	preds := []catalog.Predicate{}
	if c := strings.TrimSpace(q.Category); c != "" {
		preds = append(preds, catalog.InCategory(c))
	}
	if f := strings.TrimSpace(q.Flag); f != "" {
		flag, ok := catalog.ParseFlag(f)
		if !ok {
			return nil, key, fmt.Errorf("%w: unknown flag %q", ErrInvalidFilter, f)
		}
		preds = append(preds, catalog.HasFlag(flag))
	}
	if q.MinPrice > 0 && q.MaxPrice > 0 && q.MinPrice > q.MaxPrice {
		return nil, key, fmt.Errorf("%w: min_price greater than max_price", ErrInvalidFilter)
	}
	if q.MinPrice > 0 || q.MaxPrice > 0 {
		preds = append(preds, catalog.PriceBetween(q.MinPrice, q.MaxPrice))
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		preds = append(preds, catalog.NameContains(search))
	}

	cacheKey := productListCacheKey(q, key)
	if ids, ok := s.cachedIDs(ctx, cacheKey); ok {
		return s.index.ResolveCrossSell(ids), key, nil
	}

	var pred catalog.Predicate
	if len(preds) > 0 {
		pred = catalog.All(preds...)
	}
	products := s.index.FilterAndSort(pred, key)
	s.storeIDs(ctx, cacheKey, products)

	return products, key, nil
}

func productListCacheKey(q models.ProductFilterQuery, key catalog.SortKey) string {
	return fmt.Sprintf("%sc=%s|f=%s|s=%s|min=%d|max=%d|sort=%s",
		productListKeyPrefix,
		strings.TrimSpace(q.Category),
		strings.ToLower(strings.TrimSpace(q.Flag)),
		strings.ToLower(strings.TrimSpace(q.Search)),
		q.MinPrice, q.MaxPrice, key)
}

func (s *CatalogService) cachedIDs(ctx context.Context, key string) ([]string, bool) {
	if s.cache == nil {
		return nil, false
	}
	cached, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Println("Catalog cache read failed:", err)
		}
		return nil, false
	}
	var ids []string
	if err := json.Unmarshal([]byte(cached), &ids); err != nil {
		return nil, false
	}
	return ids, true
}

func (s *CatalogService) storeIDs(ctx context.Context, key string, products []*models.Product) {
	if s.cache == nil {
		return
	}
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	data, _ := json.Marshal(ids)
	if err := s.cache.Set(ctx, key, string(data), s.cacheTTL).Err(); err != nil {
		log.Println("Catalog cache write failed:", err)
	}
}

// InvalidateCache drops cached product lists, e.g. after the catalog was
// reseeded.
func (s *CatalogService) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	iter := s.cache.Scan(ctx, 0, productListKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		s.cache.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Println("Catalog cache invalidation failed:", err)
	}
}
