package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/glowmart/app/models"
	"github.com/shashiranjanraj/glowmart/pkg/apperr"
	"github.com/shashiranjanraj/glowmart/pkg/metrics"
	"github.com/shashiranjanraj/glowmart/pkg/paginate"
)

// Order listing limits.
const (
	orderDefaultLimit = 20
	orderMaxLimit     = 100
)

const dateLayout = "2006-01-02"

// OrderFilter is the storage-level query the order listing issues.
// Results are always newest-first.
type OrderFilter struct {
	Status string
	Phone  string // case-insensitive substring
	Name   string // case-insensitive substring
	From   *time.Time
	To     *time.Time
	Skip   int64
	Limit  int64
}

// OrderStore is the persistence surface the order service needs.
type OrderStore interface {
	Insert(ctx context.Context, o models.Order) (models.Order, error)
	Find(ctx context.Context, f OrderFilter) ([]models.Order, int64, error)
	FindByID(ctx context.Context, id string) (models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (models.Order, error)
}

// CheckoutItem is one cart line as submitted by the client.
type CheckoutItem struct {
	ProductID   string  `json:"productId"`
	Title       string  `json:"title"`
	VariantName string  `json:"variantName"`
	Price       float64 `json:"price"`
	Qty         int     `json:"qty"`
}

// CheckoutCustomer is the contact block of the checkout payload.
type CheckoutCustomer struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
	Note    string `json:"note"`
}

// CheckoutInput is the public order-creation payload. Any total the
// client sends is absent here on purpose: it is never read.
type CheckoutInput struct {
	Customer CheckoutCustomer `json:"customer"`
	Items    []CheckoutItem   `json:"items"`
}

// OrderListParams are the raw listing inputs from the query string.
// From and To are calendar dates (YYYY-MM-DD); unparseable values are
// silently dropped from the filter.
type OrderListParams struct {
	Status string
	Phone  string
	Name   string
	From   string
	To     string
	Page   int
	Limit  int
}

// OrderService owns checkout validation, the server-side total, and the
// status set.
type OrderService struct {
	store OrderStore
}

// NewOrderService builds an OrderService.
func NewOrderService(store OrderStore) *OrderService {
	return &OrderService{store: store}
}

// Create validates the checkout payload and persists a new order with a
// line-item snapshot. The total is recomputed here as Σ(price×qty);
// client-sent totals are never trusted. Status starts at "new".
func (s *OrderService) Create(ctx context.Context, in CheckoutInput) (models.Order, error) {
	if strings.TrimSpace(in.Customer.Name) == "" ||
		strings.TrimSpace(in.Customer.Phone) == "" ||
		strings.TrimSpace(in.Customer.Address) == "" {
		return models.Order{}, apperr.New(apperr.InvalidInput, "Missing customer fields")
	}
	if len(in.Items) == 0 {
		return models.Order{}, apperr.New(apperr.EmptyCart, "Cart is empty")
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	var total float64
	for _, it := range in.Items {
		pid, err := primitive.ObjectIDFromHex(it.ProductID)
		if err != nil {
			return models.Order{}, apperr.New(apperr.InvalidInput, "Invalid product id")
		}
		if strings.TrimSpace(it.Title) == "" || it.Qty < 1 || it.Price < 0 {
			return models.Order{}, apperr.New(apperr.InvalidInput, "Invalid cart item")
		}

		items = append(items, models.OrderItem{
			ProductID:   pid,
			Title:       it.Title,
			VariantName: it.VariantName,
			Price:       it.Price,
			Qty:         it.Qty,
		})
		total += it.Price * float64(it.Qty)
	}

	order := models.Order{
		Customer: models.Customer{
			Name:    in.Customer.Name,
			Phone:   in.Customer.Phone,
			Address: in.Customer.Address,
			Note:    in.Customer.Note,
		},
		Items:  items,
		Total:  total,
		Status: models.StatusNew,
	}

	created, err := s.store.Insert(ctx, order)
	if err != nil {
		return models.Order{}, err
	}
	metrics.OrdersCreated.Inc()
	return created, nil
}

// List returns one back-office page of orders, newest first. Limit is
// clamped into [1,100] with a default of 20.
func (s *OrderService) List(ctx context.Context, p OrderListParams) (paginate.Page[models.Order], error) {
	page, limit := paginate.Clamp(p.Page, p.Limit, orderDefaultLimit, orderMaxLimit)

	filter := OrderFilter{
		Status: p.Status,
		Phone:  strings.TrimSpace(p.Phone),
		Name:   strings.TrimSpace(p.Name),
		From:   parseDayStart(p.From),
		To:     parseDayEnd(p.To),
		Skip:   int64(page-1) * int64(limit),
		Limit:  int64(limit),
	}

	items, total, err := s.store.Find(ctx, filter)
	if err != nil {
		return paginate.Page[models.Order]{}, err
	}

	return paginate.New(items, total, page, limit), nil
}

// Get fetches one order by id.
func (s *OrderService) Get(ctx context.Context, id string) (models.Order, error) {
	return s.store.FindByID(ctx, id)
}

// UpdateStatus moves an order to any member of the allowed status set.
// No adjacency rules: the back-office UI hints at forward progression,
// the service accepts every member-to-member transition.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (models.Order, error) {
	if !models.ValidStatus(status) {
		return models.Order{}, apperr.New(apperr.InvalidInput, "Invalid status")
	}
	return s.store.UpdateStatus(ctx, id, status)
}

// parseDayStart parses a calendar date and floors it to local midnight.
// Returns nil when the value is empty or unparseable.
func parseDayStart(s string) *time.Time {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return nil
	}
	return &t
}

// parseDayEnd parses a calendar date and ceils it to 23:59:59.999 local,
// giving an inclusive upper bound on the whole day.
func parseDayEnd(s string) *time.Time {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return nil
	}
	end := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), time.Local)
	return &end
}
