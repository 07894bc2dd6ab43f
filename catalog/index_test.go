package catalog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
)

func boolPtr(b bool) *bool { return &b }

func product(id, name string, price int, category string) models.Product {
	return models.Product{
		ID:       id,
		Name:     name,
		Price:    price,
		Category: category,
		Sizes:    []string{"XS", "S", "M", "L", "XL"},
		Images:   []string{"https://example.com/" + id + ".jpg"},
	}
}

func ids(products []*models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func prices(products []*models.Product) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.Price)
	}
	return out
}

func smallIndex(t *testing.T) *Index {
	t.Helper()

	dress := product("dress", "Drape Dress", 189, "dresses")
	dress.IsNew = boolPtr(true)
	tee := product("tee", "High Neck Tee", 59, "tops")
	tee.IsRestocked = boolPtr(true)
	tee.CompleteTheLook = []string{"pants", "missing"}
	abaya := product("abaya", "Classic Abaya", 249, "abayas")
	abaya.IsSoldOut = boolPtr(true)
	pants := product("pants", "Casual Pants", 59, "bottoms")
	pants.IsNew = boolPtr(false)

	idx, err := NewIndex(
		[]models.Product{dress, tee, abaya, pants},
		[]models.Category{
			{ID: "1", Name: "Dresses", Slug: "dresses"},
			{ID: "2", Name: "Tops", Slug: "tops"},
		},
	)
	require.NoError(t, err)
	return idx
}

func TestGetByID(t *testing.T) {
	idx := smallIndex(t)

	p, ok := idx.GetByID("tee")
	require.True(t, ok)
	assert.Equal(t, "High Neck Tee", p.Name)

	p, ok = idx.GetByID("does-not-exist")
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestGetByID_ReturnsSharedReference(t *testing.T) {
	idx := smallIndex(t)

	a, _ := idx.GetByID("dress")
	b, _ := idx.GetByID("dress")
	assert.Same(t, a, b)
}

func TestGetByCategory(t *testing.T) {
	idx := smallIndex(t)

	assert.Equal(t, []string{"tee"}, ids(idx.GetByCategory("tops")))

	unknown := idx.GetByCategory("nonexistent")
	require.NotNil(t, unknown)
	assert.Empty(t, unknown)
}

func TestGetCategoryBySlug(t *testing.T) {
	idx := smallIndex(t)

	c, ok := idx.GetCategoryBySlug("tops")
	require.True(t, ok)
	assert.Equal(t, "Tops", c.Name)

	_, ok = idx.GetCategoryBySlug("shoes")
	assert.False(t, ok)
	assert.Len(t, idx.Categories(), 2)
}

func TestGetByFlag(t *testing.T) {
	idx := smallIndex(t)

	assert.Equal(t, []string{"dress"}, ids(idx.GetByFlag(FlagNew)))
	assert.Equal(t, []string{"tee"}, ids(idx.GetByFlag(FlagRestocked)))
	assert.Equal(t, []string{"abaya"}, ids(idx.GetByFlag(FlagSoldOut)))
}

func TestGetFeatured(t *testing.T) {
	idx := smallIndex(t)

	assert.Equal(t, []string{"dress", "tee"}, ids(idx.GetFeatured(2)))
	assert.Equal(t, []string{"dress", "tee", "abaya", "pants"}, ids(idx.GetFeatured(50)))
	assert.Empty(t, idx.GetFeatured(0))
}

func TestResolveCrossSell_SkipsMissing(t *testing.T) {
	idx := smallIndex(t)

	assert.Equal(t, []string{"pants", "abaya"}, ids(idx.ResolveCrossSell([]string{"pants", "nope", "abaya"})))
	assert.Empty(t, idx.ResolveCrossSell(nil))

	tee, _ := idx.GetByID("tee")
	assert.Equal(t, []string{"pants"}, ids(idx.CompleteTheLook(tee)))
}

func TestRelated(t *testing.T) {
	seed, err := NewSeedIndex()
	require.NoError(t, err)

	tee, ok := seed.GetByID("6")
	require.True(t, ok)
	assert.Equal(t, []string{"7", "8"}, ids(seed.Related(tee, 4)))

	scarf, _ := seed.GetByID("15")
	assert.Equal(t, []string{"16", "17"}, ids(seed.Related(scarf, 2)))
}

func TestFilterAndSort_PriceSorts(t *testing.T) {
	idx, err := NewIndex([]models.Product{
		product("a", "A", 189, "x"),
		product("b", "B", 59, "x"),
		product("c", "C", 249, "x"),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []int{59, 189, 249}, prices(idx.FilterAndSort(nil, SortPriceAscending)))
	assert.Equal(t, []int{249, 189, 59}, prices(idx.FilterAndSort(nil, SortPriceDescending)))
	assert.Equal(t, []int{189, 59, 249}, prices(idx.FilterAndSort(nil, SortCatalogOrder)))
}

func TestFilterAndSort_StableOnTies(t *testing.T) {
	idx := smallIndex(t)

	// tee and pants share a price; catalog order puts tee first
	assert.Equal(t, []string{"tee", "pants", "dress", "abaya"}, ids(idx.FilterAndSort(nil, SortPriceAscending)))
	assert.Equal(t, []string{"abaya", "dress", "tee", "pants"}, ids(idx.FilterAndSort(nil, SortPriceDescending)))
}

func TestFilterAndSort_NameIsLocaleAware(t *testing.T) {
	idx, err := NewIndex([]models.Product{
		product("1", "zip Hoodie", 10, "x"),
		product("2", "Élan Scarf", 10, "x"),
		product("3", "Abaya", 10, "x"),
		product("4", "echo Tee", 10, "x"),
	}, nil)
	require.NoError(t, err)

	got := idx.FilterAndSort(nil, SortNameAlphabetical)
	names := []string{}
	for _, p := range got {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Abaya", "echo Tee", "Élan Scarf", "zip Hoodie"}, names)
}

func TestFilterAndSort_WithPredicate(t *testing.T) {
	idx := smallIndex(t)

	got := idx.FilterAndSort(All(PriceBetween(50, 200), NameContains("neck")), SortCatalogOrder)
	assert.Equal(t, []string{"tee"}, ids(got))

	got = idx.FilterAndSort(PriceBetween(0, 100), SortPriceDescending)
	assert.Equal(t, []string{"tee", "pants"}, ids(got))

	assert.Empty(t, idx.FilterAndSort(InCategory("nonexistent"), SortNameAlphabetical))
}

func TestFilterAndSort_DoesNotMutateCatalog(t *testing.T) {
	idx := smallIndex(t)

	_ = idx.FilterAndSort(nil, SortPriceDescending)
	assert.Equal(t, []string{"dress", "tee", "abaya", "pants"}, ids(idx.All()))
}

func TestParseSortKey(t *testing.T) {
	cases := map[string]SortKey{
		"":           SortCatalogOrder,
		"newest":     SortCatalogOrder,
		"price-asc":  SortPriceAscending,
		"price-desc": SortPriceDescending,
		"name":       SortNameAlphabetical,
	}
	for in, want := range cases {
		got, err := ParseSortKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSortKey("cheapest")
	assert.ErrorIs(t, err, ErrUnknownSortKey)
}

func TestNewIndex_RejectsBadSeed(t *testing.T) {
	dup := product("1", "A", 1, "x")
	_, err := NewIndex([]models.Product{dup, dup}, nil)
	assert.ErrorIs(t, err, ErrDuplicateProduct)

	noSizes := product("2", "B", 1, "x")
	noSizes.Sizes = nil
	_, err = NewIndex([]models.Product{noSizes}, nil)
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = NewIndex(nil, []models.Category{{Slug: "a"}, {Slug: "a"}})
	assert.ErrorIs(t, err, ErrDuplicateCategory)
}

func TestSeedCatalog(t *testing.T) {
	idx, err := NewSeedIndex()
	require.NoError(t, err)

	assert.Equal(t, 24, idx.Len())
	assert.Len(t, idx.Categories(), 6)
	assert.Len(t, idx.GetFeatured(8), 8)

	tee, ok := idx.GetByID("6")
	require.True(t, ok)
	assert.Equal(t, 59, tee.Price)
	assert.Equal(t, []string{"9"}, ids(idx.CompleteTheLook(tee)))

	sold, _ := idx.GetByID("2")
	assert.True(t, sold.SoldOut())
}

func TestConcurrentReaders(t *testing.T) {
	idx, err := NewSeedIndex()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := idx.FilterAndSort(nil, SortNameAlphabetical)
			assert.Len(t, got, 24)
		}()
	}
	wg.Wait()
}
