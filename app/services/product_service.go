// Package services implements the storefront's business rules on top of
// storage interfaces the repositories satisfy.
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shashiranjanraj/glowmart/app/models"
	"github.com/shashiranjanraj/glowmart/pkg/apperr"
	"github.com/shashiranjanraj/glowmart/pkg/cache"
	"github.com/shashiranjanraj/glowmart/pkg/paginate"
)

// Product listing limits.
const (
	productDefaultLimit = 10
	productMaxLimit     = 50
)

// Sort orders accepted by the catalog listing. Anything else falls back
// to SortNewest.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortTitleAsc  = "title_asc"
)

// ProductFilter is the storage-level query the catalog listing issues.
type ProductFilter struct {
	Query    string // case-insensitive substring over title/brand/variantName
	Category string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
	Sort     string
	Skip     int64
	Limit    int64
}

// ProductStore is the persistence surface the catalog needs.
type ProductStore interface {
	Find(ctx context.Context, f ProductFilter) ([]models.Product, int64, error)
	Distinct(ctx context.Context, field string) ([]string, error)
	FindByID(ctx context.Context, id string) (models.Product, error)
	Insert(ctx context.Context, p models.Product) (models.Product, error)
	Update(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductListParams are the raw listing inputs from the query string.
type ProductListParams struct {
	Query    string
	Category string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
	Sort     string
	Page     int
	Limit    int
}

// ProductMeta is the distinct filter choices for the storefront UI.
type ProductMeta struct {
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
}

// ProductInput is the create payload.
type ProductInput struct {
	Title       string   `json:"title"`
	VariantName string   `json:"variantName"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	PackLabel   string   `json:"packLabel"`
	SizeML      *float64 `json:"sizeMl"`
	Pcs         *int     `json:"pcs"`
	Price       *float64 `json:"price"`
	ImageURL    string   `json:"imageUrl"`
	InStock     bool     `json:"inStock"`
	Tag         string   `json:"tag"`
	GroupID     string   `json:"groupId"`
}

// ProductService owns the catalog rules: filter normalization, limit
// clamping, text trimming, and the sparse-update contract.
type ProductService struct {
	store ProductStore
	cache *cache.Store
}

// NewProductService builds a ProductService. cache may be nil.
func NewProductService(store ProductStore, c *cache.Store) *ProductService {
	return &ProductService{store: store, cache: c}
}

// List returns one catalog page. Limit is clamped into [1,50] with a
// default of 10; unknown sort values fall back to newest-first.
func (s *ProductService) List(ctx context.Context, p ProductListParams) (paginate.Page[models.Product], error) {
	page, limit := paginate.Clamp(p.Page, p.Limit, productDefaultLimit, productMaxLimit)
	sortOrder := normalizeSort(p.Sort)

	key := s.cache.Key(ctx, listSignature(p, page, limit, sortOrder))
	var cached paginate.Page[models.Product]
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	filter := ProductFilter{
		Query:    strings.TrimSpace(p.Query),
		Category: p.Category,
		Brand:    p.Brand,
		MinPrice: p.MinPrice,
		MaxPrice: p.MaxPrice,
		Sort:     sortOrder,
		Skip:     int64(page-1) * int64(limit),
		Limit:    int64(limit),
	}

	items, total, err := s.store.Find(ctx, filter)
	if err != nil {
		return paginate.Page[models.Product]{}, err
	}

	result := paginate.New(items, total, page, limit)
	s.cache.Set(ctx, key, result)
	return result, nil
}

// Meta returns the distinct non-empty categories and brands, sorted
// ascending, for populating the storefront filter dropdowns.
func (s *ProductService) Meta(ctx context.Context) (ProductMeta, error) {
	key := s.cache.Key(ctx, "meta")
	var cached ProductMeta
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	categories, err := s.store.Distinct(ctx, "category")
	if err != nil {
		return ProductMeta{}, err
	}
	brands, err := s.store.Distinct(ctx, "brand")
	if err != nil {
		return ProductMeta{}, err
	}

	meta := ProductMeta{
		Categories: cleanDistinct(categories),
		Brands:     cleanDistinct(brands),
	}
	s.cache.Set(ctx, key, meta)
	return meta, nil
}

// Get fetches one product by id.
func (s *ProductService) Get(ctx context.Context, id string) (models.Product, error) {
	return s.store.FindByID(ctx, id)
}

// Create validates and persists a new product. Title and price are
// required; all text fields are trimmed; inStock is taken as sent (an
// absent flag means out of stock).
func (s *ProductService) Create(ctx context.Context, in ProductInput) (models.Product, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.Price == nil {
		return models.Product{}, apperr.New(apperr.InvalidInput, "Missing title/price")
	}
	if *in.Price < 0 {
		return models.Product{}, apperr.New(apperr.InvalidInput, "Price must be non-negative")
	}

	p := models.Product{
		Title:       title,
		VariantName: strings.TrimSpace(in.VariantName),
		Brand:       strings.TrimSpace(in.Brand),
		Category:    strings.TrimSpace(in.Category),
		PackLabel:   strings.TrimSpace(in.PackLabel),
		SizeML:      in.SizeML,
		Pcs:         in.Pcs,
		Price:       *in.Price,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		InStock:     in.InStock,
		Tag:         strings.TrimSpace(in.Tag),
		GroupID:     strings.TrimSpace(in.GroupID),
	}

	created, err := s.store.Insert(ctx, p)
	if err != nil {
		return models.Product{}, err
	}
	s.cache.Invalidate(ctx)
	return created, nil
}

// Update applies a sparse patch: only fields present in the payload are
// written, so omitting a field never clears it. Used for full edits and
// the single-field stock-toggle / price-edit quick actions alike.
func (s *ProductService) Update(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return models.Product{}, apperr.New(apperr.InvalidInput, "Missing title/price")
		}
		patch.Title = &t
	}
	if patch.Price != nil && *patch.Price < 0 {
		return models.Product{}, apperr.New(apperr.InvalidInput, "Price must be non-negative")
	}
	trimField(&patch.VariantName)
	trimField(&patch.Brand)
	trimField(&patch.Category)
	trimField(&patch.PackLabel)
	trimField(&patch.ImageURL)
	trimField(&patch.Tag)
	trimField(&patch.GroupID)

	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return models.Product{}, err
	}
	s.cache.Invalidate(ctx)
	return updated, nil
}

// Delete removes a product by id.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func normalizeSort(s string) string {
	switch s {
	case SortPriceAsc, SortPriceDesc, SortTitleAsc:
		return s
	default:
		return SortNewest
	}
}

// cleanDistinct drops empty values and sorts ascending.
func cleanDistinct(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func trimField(f **string) {
	if *f != nil {
		t := strings.TrimSpace(**f)
		*f = &t
	}
}

// listSignature is the cache key component for a normalized listing query.
func listSignature(p ProductListParams, page, limit int, sortOrder string) string {
	min, max := "", ""
	if p.MinPrice != nil {
		min = fmt.Sprintf("%g", *p.MinPrice)
	}
	if p.MaxPrice != nil {
		max = fmt.Sprintf("%g", *p.MaxPrice)
	}
	return fmt.Sprintf("list:q=%s:cat=%s:brand=%s:min=%s:max=%s:sort=%s:p=%d:l=%d",
		strings.ToLower(strings.TrimSpace(p.Query)), p.Category, p.Brand, min, max, sortOrder, page, limit)
}
