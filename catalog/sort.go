package catalog

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"storefront/models"
)

var ErrUnknownSortKey = errors.New("unknown sort key")

type SortKey int

const (
	SortCatalogOrder SortKey = iota
	SortPriceAscending
	SortPriceDescending
	SortNameAlphabetical
)

var sortKeyNames = map[SortKey]string{
	SortCatalogOrder:     "newest",
	SortPriceAscending:   "price-asc",
	SortPriceDescending:  "price-desc",
	SortNameAlphabetical: "name",
}

func (k SortKey) String() string {
	if name, ok := sortKeyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SortKey(%d)", int(k))
}

// ParseSortKey accepts the storefront's sort option names. An empty string
// means catalog order.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortCatalogOrder, nil
	}
	for k, name := range sortKeyNames {
		if name == s {
			return k, nil
		}
	}
	return SortCatalogOrder, fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

// collationTag is the locale used for name ordering.
var collationTag = language.English

func sortProducts(products []*models.Product, key SortKey) {
	switch key {
	case SortPriceAscending:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDescending:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortNameAlphabetical:
		// collators keep internal buffers and must not be shared between goroutines
		c := collate.New(collationTag)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	}
}
