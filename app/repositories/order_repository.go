package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/glowmart/app/models"
	"github.com/shashiranjanraj/glowmart/app/services"
	"github.com/shashiranjanraj/glowmart/pkg/apperr"
	"github.com/shashiranjanraj/glowmart/pkg/database"
)

// OrderRepository persists orders in the orders collection.
type OrderRepository struct {
	col *mongo.Collection
}

// NewOrderRepository builds an OrderRepository on db.
func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(database.OrdersCollection)}
}

// Insert persists a new order with fresh id and timestamps.
func (r *OrderRepository) Insert(ctx context.Context, o models.Order) (models.Order, error) {
	now := time.Now()
	o.ID = primitive.NewObjectID()
	o.CreatedAt = now
	o.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, o); err != nil {
		return models.Order{}, apperr.Wrap(apperr.Internal, "insert order", err)
	}
	return o, nil
}

// Find runs the back-office listing, newest first.
func (r *OrderRepository) Find(ctx context.Context, f services.OrderFilter) ([]models.Order, int64, error) {
	filter := bson.M{}

	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Phone != "" {
		filter["customer.phone"] = ciSubstring(f.Phone)
	}
	if f.Name != "" {
		filter["customer.name"] = ciSubstring(f.Name)
	}

	created := bson.M{}
	if f.From != nil {
		created["$gte"] = *f.From
	}
	if f.To != nil {
		created["$lte"] = *f.To
	}
	if len(created) > 0 {
		filter["createdAt"] = created
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "count orders", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(f.Skip).
		SetLimit(f.Limit)

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "find orders", err)
	}

	var items []models.Order
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "decode orders", err)
	}

	return items, total, nil
}

// FindByID fetches one order.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Order{}, apperr.New(apperr.NotFound, "Order not found")
	}

	var o models.Order
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, apperr.New(apperr.NotFound, "Order not found")
	}
	if err != nil {
		return models.Order{}, apperr.Wrap(apperr.Internal, "find order", err)
	}
	return o, nil
}

// UpdateStatus writes the status field and returns the updated order.
// Last write wins under concurrent updates; there is no version check.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) (models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Order{}, apperr.New(apperr.NotFound, "Order not found")
	}

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var o models.Order
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, apperr.New(apperr.NotFound, "Order not found")
	}
	if err != nil {
		return models.Order{}, apperr.Wrap(apperr.Internal, "update order status", err)
	}
	return o, nil
}
