package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/glowmart/app/models"
	"github.com/shashiranjanraj/glowmart/app/routes"
	"github.com/shashiranjanraj/glowmart/app/services"
	"github.com/shashiranjanraj/glowmart/pkg/apperr"
	"github.com/shashiranjanraj/glowmart/pkg/auth"
)

// memProductStore is an in-memory ProductStore with just enough filter
// behavior to drive the router end to end.
type memProductStore struct {
	mu    sync.Mutex
	seq   int
	items []models.Product
}

func (m *memProductStore) Find(_ context.Context, f services.ProductFilter) ([]models.Product, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []models.Product
	for _, p := range m.items {
		if f.Query != "" && !matchesQuery(p, f.Query) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Brand != "" && p.Brand != f.Brand {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		matches = append(matches, p)
	}

	switch f.Sort {
	case services.SortPriceAsc:
		sort.Slice(matches, func(i, j int) bool { return matches[i].Price < matches[j].Price })
	case services.SortPriceDesc:
		sort.Slice(matches, func(i, j int) bool { return matches[i].Price > matches[j].Price })
	case services.SortTitleAsc:
		sort.Slice(matches, func(i, j int) bool { return matches[i].Title < matches[j].Title })
	default:
		sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })
	}

	total := int64(len(matches))
	lo := f.Skip
	if lo > total {
		lo = total
	}
	hi := lo + f.Limit
	if hi > total {
		hi = total
	}
	return matches[lo:hi], total, nil
}

func matchesQuery(p models.Product, q string) bool {
	q = strings.ToLower(q)
	for _, field := range []string{p.Title, p.Brand, p.VariantName} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (m *memProductStore) Distinct(_ context.Context, field string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := map[string]bool{}
	var out []string
	for _, p := range m.items {
		v := p.Category
		if field == "brand" {
			v = p.Brand
		}
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memProductStore) FindByID(_ context.Context, id string) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.items {
		if p.ID.Hex() == id {
			return p, nil
		}
	}
	return models.Product{}, apperr.New(apperr.NotFound, "Product not found")
}

func (m *memProductStore) Insert(_ context.Context, p models.Product) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Unix(int64(m.seq), 0)
	p.UpdatedAt = p.CreatedAt
	m.items = append(m.items, p)
	return p, nil
}

func (m *memProductStore) Update(_ context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.items {
		if p.ID.Hex() != id {
			continue
		}
		applyPatch(&p, patch)
		p.UpdatedAt = time.Now()
		m.items[i] = p
		return p, nil
	}
	return models.Product{}, apperr.New(apperr.NotFound, "Product not found")
}

func applyPatch(p *models.Product, patch models.ProductPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.VariantName != nil {
		p.VariantName = *patch.VariantName
	}
	if patch.Brand != nil {
		p.Brand = *patch.Brand
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.PackLabel != nil {
		p.PackLabel = *patch.PackLabel
	}
	if patch.SizeML != nil {
		p.SizeML = patch.SizeML
	}
	if patch.Pcs != nil {
		p.Pcs = patch.Pcs
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.InStock != nil {
		p.InStock = *patch.InStock
	}
	if patch.Tag != nil {
		p.Tag = *patch.Tag
	}
	if patch.GroupID != nil {
		p.GroupID = *patch.GroupID
	}
}

func (m *memProductStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.items {
		if p.ID.Hex() == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return apperr.New(apperr.NotFound, "Product not found")
}

// memOrderStore is the in-memory OrderStore counterpart.
type memOrderStore struct {
	mu     sync.Mutex
	orders []models.Order
}

func (m *memOrderStore) Insert(_ context.Context, o models.Order) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o.ID = primitive.NewObjectID()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	m.orders = append(m.orders, o)
	return o, nil
}

func (m *memOrderStore) Find(_ context.Context, f services.OrderFilter) ([]models.Order, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []models.Order
	for _, o := range m.orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.Phone != "" && !strings.Contains(strings.ToLower(o.Customer.Phone), strings.ToLower(f.Phone)) {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(o.Customer.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.From != nil && o.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && o.CreatedAt.After(*f.To) {
			continue
		}
		matches = append(matches, o)
	}

	total := int64(len(matches))
	lo := f.Skip
	if lo > total {
		lo = total
	}
	hi := lo + f.Limit
	if hi > total {
		hi = total
	}
	return matches[lo:hi], total, nil
}

func (m *memOrderStore) FindByID(_ context.Context, id string) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range m.orders {
		if o.ID.Hex() == id {
			return o, nil
		}
	}
	return models.Order{}, apperr.New(apperr.NotFound, "Order not found")
}

func (m *memOrderStore) UpdateStatus(_ context.Context, id, status string) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, o := range m.orders {
		if o.ID.Hex() == id {
			o.Status = status
			o.UpdatedAt = time.Now()
			m.orders[i] = o
			return o, nil
		}
	}
	return models.Order{}, apperr.New(apperr.NotFound, "Order not found")
}

// env is one wired-up API under test.
type env struct {
	handler  http.Handler
	products *memProductStore
	orders   *memOrderStore
	tokens   *auth.Manager
}

func newEnv(t *testing.T) *env {
	t.Helper()

	products := &memProductStore{}
	orders := &memOrderStore{}
	tokens := auth.NewManager("test-secret", time.Hour)

	handler := routes.New(routes.Deps{
		Products:    services.NewProductService(products, nil),
		Orders:      services.NewOrderService(orders),
		Auth:        services.NewAuthService("admin", "hunter2", tokens),
		Tokens:      tokens,
		CORSOrigins: []string{"*"},
	})

	return &env{handler: handler, products: products, orders: orders, tokens: tokens}
}

func (e *env) adminToken(t *testing.T) string {
	t.Helper()
	token, err := e.tokens.Generate("admin", true)
	require.NoError(t, err)
	return token
}

// do performs a request; a non-empty token is sent as a bearer header.
func (e *env) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest))
}
