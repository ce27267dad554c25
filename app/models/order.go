// Package models holds the persisted document shapes for the products
// and orders collections.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. The transition graph is deliberately unconstrained:
// any member may move to any other member; only set membership is
// checked.
const (
	StatusNew       = "new"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDone      = "done"
	StatusCancelled = "cancelled"
)

// AllowedStatuses is the closed set of order statuses, in the typical
// forward order the back-office presents them.
var AllowedStatuses = []string{
	StatusNew, StatusConfirmed, StatusShipped, StatusDone, StatusCancelled,
}

// ValidStatus reports whether s is a member of the allowed set.
func ValidStatus(s string) bool {
	for _, a := range AllowedStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// Customer is the contact block captured at checkout.
type Customer struct {
	Name    string `bson:"name" json:"name"`
	Phone   string `bson:"phone" json:"phone"`
	Address string `bson:"address" json:"address"`
	Note    string `bson:"note,omitempty" json:"note,omitempty"`
}

// OrderItem is a snapshot of one cart line at order time. Later product
// edits never alter it.
type OrderItem struct {
	ProductID   primitive.ObjectID `bson:"productId" json:"productId"`
	Title       string             `bson:"title" json:"title"`
	VariantName string             `bson:"variantName,omitempty" json:"variantName,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Qty         int                `bson:"qty" json:"qty"`
}

// Order is append-only except for Status.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Customer  Customer           `bson:"customer" json:"customer"`
	Items     []OrderItem        `bson:"items" json:"items"`
	Total     float64            `bson:"total" json:"total"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
