package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/glowmart/app/services"
	"github.com/shashiranjanraj/glowmart/pkg/logger"
	"github.com/shashiranjanraj/glowmart/pkg/response"
)

// OrderController serves checkout and the back-office order routes.
type OrderController struct {
	orders *services.OrderService
}

// NewOrderController builds an OrderController.
func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Create places an order from the submitted cart. The total is computed
// server-side; any total the client sends is ignored.
//
// POST /orders
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CheckoutInput
	if err := decode(r, &in); err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(in.Customer); err != nil {
		response.Message(w, http.StatusBadRequest, "Missing customer fields")
		return
	}

	order, err := c.orders.Create(r.Context(), in)
	if err != nil {
		response.Err(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("order created",
		"order_id", order.ID.Hex(), "total", order.Total, "items", len(order.Items))

	response.JSON(w, http.StatusCreated, map[string]string{"orderId": order.ID.Hex()})
}

// List is the back-office order listing with status, customer, and date
// filters.
//
// GET /orders?page=&limit=&status=&phone=&name=&from=&to=  (admin)
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := services.OrderListParams{
		Status: q.Get("status"),
		Phone:  q.Get("phone"),
		Name:   q.Get("name"),
		From:   q.Get("from"),
		To:     q.Get("to"),
		Page:   intParam(q.Get("page")),
		Limit:  intParam(q.Get("limit")),
	}

	page, err := c.orders.List(r.Context(), params)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.JSON(w, http.StatusOK, page)
}

// Get fetches one order.
//
// GET /orders/{id}  (admin)
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	order, err := c.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, order)
}

// UpdateStatus moves an order to another member of the allowed status
// set.
//
// PATCH /orders/{id}/status  (admin)
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	// A missing or malformed body leaves Status empty, which fails the
	// set-membership check below with the same client-facing error.
	_ = decode(r, &body)

	order, err := c.orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{
		"_id":    order.ID.Hex(),
		"status": order.Status,
	})
}
