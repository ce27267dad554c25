package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/glowmart/app/models"
	"github.com/shashiranjanraj/glowmart/app/services"
	"github.com/shashiranjanraj/glowmart/pkg/response"
)

// ProductController serves the catalog routes.
type ProductController struct {
	products *services.ProductService
}

// NewProductController builds a ProductController.
func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// List is the public catalog listing with search, filters, sorting, and
// pagination.
//
// GET /products?q=&category=&brand=&minPrice=&maxPrice=&sort=&page=&limit=
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := services.ProductListParams{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
		MinPrice: floatParam(q.Get("minPrice")),
		MaxPrice: floatParam(q.Get("maxPrice")),
		Sort:     q.Get("sort"),
		Page:     intParam(q.Get("page")),
		Limit:    intParam(q.Get("limit")),
	}

	page, err := c.products.List(r.Context(), params)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.JSON(w, http.StatusOK, page)
}

// Meta returns the distinct categories and brands for filter dropdowns.
//
// GET /products/meta
func (c *ProductController) Meta(w http.ResponseWriter, r *http.Request) {
	meta, err := c.products.Meta(r.Context())
	if err != nil {
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, meta)
}

// Get fetches one product for the admin edit form.
//
// GET /products/{id}  (admin)
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	p, err := c.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

// Create adds a catalog entry.
//
// POST /products  (admin)
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if err := decode(r, &in); err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := c.products.Create(r.Context(), in)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, created)
}

// Update applies a partial edit; absent fields stay untouched.
//
// PUT /products/{id}  (admin)
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.ProductPatch
	if err := decode(r, &patch); err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := c.products.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.JSON(w, http.StatusOK, updated)
}

// Delete removes a product.
//
// DELETE /products/{id}  (admin)
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// floatParam parses a numeric query value; unparseable or empty means
// "not supplied".
func floatParam(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// intParam parses an integer query value; unparseable means zero, which
// the pagination clamp replaces with its default.
func intParam(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
