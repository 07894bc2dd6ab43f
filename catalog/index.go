// Package catalog holds the read-only product catalog and its queries.
//
// An Index is built once from an ordered list of products and categories and
// is never mutated afterwards, so it is safe for any number of concurrent
// readers. Queries return fresh slices in catalog order unless a sort key
// says otherwise; a reference that does not resolve yields an empty result,
// never an error.
package catalog

import (
	"errors"
	"fmt"

	"storefront/models"
)

var (
	ErrDuplicateProduct  = errors.New("duplicate product id")
	ErrDuplicateCategory = errors.New("duplicate category slug")
	ErrInvalidProduct    = errors.New("invalid product")
)

type Flag int

const (
	FlagNew Flag = iota
	FlagRestocked
	FlagSoldOut
)

type Index struct {
	products   []*models.Product
	byID       map[string]*models.Product
	categories []models.Category
	bySlug     map[string]int
}

// NewIndex validates the seed and builds the lookup tables. The given
// products are copied, so later changes to the caller's slice do not leak in.
func NewIndex(products []models.Product, categories []models.Category) (*Index, error) {
	idx := &Index{
		products:   make([]*models.Product, 0, len(products)),
		byID:       make(map[string]*models.Product, len(products)),
		categories: make([]models.Category, 0, len(categories)),
		bySlug:     make(map[string]int, len(categories)),
	}

	for i := range products {
		p := products[i]
		if p.ID == "" {
			return nil, fmt.Errorf("%w: product at position %d has no id", ErrInvalidProduct, i)
		}
		if len(p.Sizes) == 0 {
			return nil, fmt.Errorf("%w: product %s has no sizes", ErrInvalidProduct, p.ID)
		}
		if len(p.Images) == 0 {
			return nil, fmt.Errorf("%w: product %s has no images", ErrInvalidProduct, p.ID)
		}
		if _, exists := idx.byID[p.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProduct, p.ID)
		}
		idx.products = append(idx.products, &p)
		idx.byID[p.ID] = &p
	}

	for _, c := range categories {
		if _, exists := idx.bySlug[c.Slug]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, c.Slug)
		}
		idx.bySlug[c.Slug] = len(idx.categories)
		idx.categories = append(idx.categories, c)
	}

	return idx, nil
}

func (idx *Index) Len() int {
	return len(idx.products)
}

func (idx *Index) All() []*models.Product {
	return append([]*models.Product(nil), idx.products...)
}

func (idx *Index) GetByID(id string) (*models.Product, bool) {
	p, ok := idx.byID[id]
	return p, ok
}

func (idx *Index) Categories() []models.Category {
	return append([]models.Category(nil), idx.categories...)
}

func (idx *Index) GetCategoryBySlug(slug string) (models.Category, bool) {
	i, ok := idx.bySlug[slug]
	if !ok {
		return models.Category{}, false
	}
	return idx.categories[i], true
}

func (idx *Index) GetByCategory(slug string) []*models.Product {
	return idx.filter(InCategory(slug))
}

func (idx *Index) GetByFlag(flag Flag) []*models.Product {
	return idx.filter(HasFlag(flag))
}

// GetFeatured returns the first n products in catalog order.
func (idx *Index) GetFeatured(n int) []*models.Product {
	if n <= 0 {
		return []*models.Product{}
	}
	if n > len(idx.products) {
		n = len(idx.products)
	}
	return append([]*models.Product(nil), idx.products[:n]...)
}

// ResolveCrossSell maps ids to products, skipping ids that do not resolve.
func (idx *Index) ResolveCrossSell(ids []string) []*models.Product {
	out := make([]*models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := idx.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (idx *Index) CompleteTheLook(p *models.Product) []*models.Product {
	if p == nil {
		return []*models.Product{}
	}
	return idx.ResolveCrossSell(p.CompleteTheLook)
}

// Related returns up to n other products from the same category.
func (idx *Index) Related(p *models.Product, n int) []*models.Product {
	out := []*models.Product{}
	if p == nil || n <= 0 {
		return out
	}
	for _, candidate := range idx.products {
		if candidate.Category != p.Category || candidate.ID == p.ID {
			continue
		}
		out = append(out, candidate)
		if len(out) == n {
			break
		}
	}
	return out
}

// FilterAndSort applies pred (nil keeps everything) and orders the result by
// key. Ties keep catalog order.
func (idx *Index) FilterAndSort(pred Predicate, key SortKey) []*models.Product {
	out := idx.filter(pred)
	sortProducts(out, key)
	return out
}

func (idx *Index) filter(pred Predicate) []*models.Product {
	out := []*models.Product{}
	for _, p := range idx.products {
		if pred == nil || pred(p) {
			out = append(out, p)
		}
	}
	return out
}
