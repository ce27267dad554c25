package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/glowmart/app/models"
	"github.com/shashiranjanraj/glowmart/app/services"
	"github.com/shashiranjanraj/glowmart/pkg/apperr"
)

// fakeProductStore records the filter/patch it receives and returns
// canned data, so the tests pin down exactly what the service asks of
// storage.
type fakeProductStore struct {
	lastFilter services.ProductFilter
	lastPatch  models.ProductPatch
	lastInsert models.Product

	items     []models.Product
	total     int64
	distinct  map[string][]string
	inserted  int
	updated   int
	findErr   error
	updateErr error
}

func (f *fakeProductStore) Find(_ context.Context, filter services.ProductFilter) ([]models.Product, int64, error) {
	f.lastFilter = filter
	return f.items, f.total, f.findErr
}

func (f *fakeProductStore) Distinct(_ context.Context, field string) ([]string, error) {
	return f.distinct[field], nil
}

func (f *fakeProductStore) FindByID(_ context.Context, id string) (models.Product, error) {
	return models.Product{}, apperr.New(apperr.NotFound, "Product not found")
}

func (f *fakeProductStore) Insert(_ context.Context, p models.Product) (models.Product, error) {
	f.inserted++
	f.lastInsert = p
	p.ID = primitive.NewObjectID()
	return p, nil
}

func (f *fakeProductStore) Update(_ context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	f.updated++
	f.lastPatch = patch
	if f.updateErr != nil {
		return models.Product{}, f.updateErr
	}
	return models.Product{Title: "kept"}, nil
}

func (f *fakeProductStore) Delete(_ context.Context, id string) error { return nil }

func newProductService(store *fakeProductStore) *services.ProductService {
	return services.NewProductService(store, nil)
}

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }

func TestListClampsLimitAndPage(t *testing.T) {
	store := &fakeProductStore{total: 0}
	svc := newProductService(store)

	cases := []struct {
		name        string
		page, limit int
		wantSkip    int64
		wantLimit   int64
		wantPage    int
	}{
		{"defaults", 0, 0, 0, 10, 1},
		{"limit too high", 1, 999, 0, 50, 1},
		{"limit too low", 1, -4, 0, 1, 1},
		{"negative page", -2, 10, 0, 10, 1},
		{"skip offset", 3, 20, 40, 20, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := svc.List(context.Background(), services.ProductListParams{Page: tc.page, Limit: tc.limit})
			require.NoError(t, err)
			assert.Equal(t, tc.wantSkip, store.lastFilter.Skip)
			assert.Equal(t, tc.wantLimit, store.lastFilter.Limit)
			assert.Equal(t, tc.wantPage, page.Page)
			assert.Equal(t, int(tc.wantLimit), page.Limit)
		})
	}
}

func TestListPagesIsCeilOfTotal(t *testing.T) {
	store := &fakeProductStore{total: 61}
	svc := newProductService(store)

	page, err := svc.List(context.Background(), services.ProductListParams{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 7, page.Pages)
	assert.EqualValues(t, 61, page.Total)
}

func TestListNormalizesSort(t *testing.T) {
	store := &fakeProductStore{}
	svc := newProductService(store)

	_, err := svc.List(context.Background(), services.ProductListParams{Sort: "price_desc"})
	require.NoError(t, err)
	assert.Equal(t, services.SortPriceDesc, store.lastFilter.Sort)

	_, err = svc.List(context.Background(), services.ProductListParams{Sort: "bogus"})
	require.NoError(t, err)
	assert.Equal(t, services.SortNewest, store.lastFilter.Sort)
}

func TestListPassesFilters(t *testing.T) {
	store := &fakeProductStore{}
	svc := newProductService(store)

	_, err := svc.List(context.Background(), services.ProductListParams{
		Query:    "  sky ",
		Category: "shampoo",
		Brand:    "Sky",
		MinPrice: fptr(2),
		MaxPrice: fptr(10),
	})
	require.NoError(t, err)

	f := store.lastFilter
	assert.Equal(t, "sky", f.Query)
	assert.Equal(t, "shampoo", f.Category)
	assert.Equal(t, "Sky", f.Brand)
	require.NotNil(t, f.MinPrice)
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, 2.0, *f.MinPrice)
	assert.Equal(t, 10.0, *f.MaxPrice)
}

func TestMetaFiltersEmptyAndSorts(t *testing.T) {
	store := &fakeProductStore{distinct: map[string][]string{
		"category": {"shampoo", "", "razor-blades"},
		"brand":    {"", "Sky", "Astra"},
	}}
	svc := newProductService(store)

	meta, err := svc.Meta(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"razor-blades", "shampoo"}, meta.Categories)
	assert.Equal(t, []string{"Astra", "Sky"}, meta.Brands)
}

func TestCreateRequiresTitleAndPrice(t *testing.T) {
	store := &fakeProductStore{}
	svc := newProductService(store)

	_, err := svc.Create(context.Background(), services.ProductInput{Price: fptr(5)})
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))

	_, err = svc.Create(context.Background(), services.ProductInput{Title: "   ", Price: fptr(5)})
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))

	_, err = svc.Create(context.Background(), services.ProductInput{Title: "Soap"})
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))

	_, err = svc.Create(context.Background(), services.ProductInput{Title: "Soap", Price: fptr(-1)})
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))

	assert.Zero(t, store.inserted)
}

func TestCreateTrimsTextFields(t *testing.T) {
	store := &fakeProductStore{}
	svc := newProductService(store)

	created, err := svc.Create(context.Background(), services.ProductInput{
		Title:       "  Sky Shampoo  ",
		VariantName: " Vanilla ",
		Brand:       " Sky ",
		Price:       fptr(6.90),
		InStock:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sky Shampoo", created.Title)
	assert.Equal(t, "Vanilla", created.VariantName)
	assert.Equal(t, "Sky", created.Brand)
	assert.Equal(t, 6.90, created.Price)
	assert.True(t, created.InStock)
}

func TestCreateInStockTakenAsSent(t *testing.T) {
	store := &fakeProductStore{}
	svc := newProductService(store)

	created, err := svc.Create(context.Background(), services.ProductInput{Title: "Soap", Price: fptr(1)})
	require.NoError(t, err)
	assert.False(t, created.InStock)
}

func TestUpdatePassesOnlyPresentFields(t *testing.T) {
	store := &fakeProductStore{}
	svc := newProductService(store)

	_, err := svc.Update(context.Background(), "64f000000000000000000001", models.ProductPatch{
		Price: fptr(7.50),
	})
	require.NoError(t, err)

	patch := store.lastPatch
	require.NotNil(t, patch.Price)
	assert.Equal(t, 7.50, *patch.Price)
	assert.Nil(t, patch.Title)
	assert.Nil(t, patch.Brand)
	assert.Nil(t, patch.Category)
	assert.Nil(t, patch.InStock)
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	store := &fakeProductStore{}
	svc := newProductService(store)

	_, err := svc.Update(context.Background(), "64f000000000000000000001", models.ProductPatch{
		Title: sptr("   "),
	})
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
	assert.Zero(t, store.updated)
}

func TestUpdateTrimsPatchText(t *testing.T) {
	store := &fakeProductStore{}
	svc := newProductService(store)

	_, err := svc.Update(context.Background(), "64f000000000000000000001", models.ProductPatch{
		Title: sptr("  New Name "),
		Brand: sptr(" Sky  "),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", *store.lastPatch.Title)
	assert.Equal(t, "Sky", *store.lastPatch.Brand)
}

func TestUpdatePropagatesNotFound(t *testing.T) {
	store := &fakeProductStore{updateErr: apperr.New(apperr.NotFound, "Product not found")}
	svc := newProductService(store)

	_, err := svc.Update(context.Background(), "ffffffffffffffffffffffff", models.ProductPatch{Price: fptr(1)})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
