// Package database connects to MongoDB and prepares the collections the
// storefront uses.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	ProductsCollection = "products"
	OrdersCollection   = "orders"
)

// Connect opens a Mongo client, verifies the connection, and ensures
// indexes. The returned database is ready for the repositories.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	db := client.Database(dbName)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}

// Disconnect closes the client behind db, flushing within a short grace
// period.
func Disconnect(db *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = db.Client().Disconnect(ctx)
}

// ensureIndexes creates the indexes the list queries sort and filter on.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	productIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "brand", Value: 1}}},
	}
	if _, err := db.Collection(ProductsCollection).Indexes().CreateMany(ctx, productIdx); err != nil {
		return fmt.Errorf("database: product indexes: %w", err)
	}

	orderIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := db.Collection(OrdersCollection).Indexes().CreateMany(ctx, orderIdx); err != nil {
		return fmt.Errorf("database: order indexes: %w", err)
	}

	return nil
}
