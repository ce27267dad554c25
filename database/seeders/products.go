// Package seeders loads a small demo catalog for local development.
package seeders

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/glowmart/app/models"
	"github.com/shashiranjanraj/glowmart/pkg/database"
)

func ml(v float64) *float64 { return &v }

func pcs(v int) *int { return &v }

func demoProducts() []models.Product {
	return []models.Product{
		{
			Title:       "Sky Shampoo",
			VariantName: "Vanilla",
			Brand:       "Sky",
			Category:    "shampoo",
			PackLabel:   "400 ml",
			SizeML:      ml(400),
			Price:       6.90,
			InStock:     true,
			GroupID:     "sky-shampoo-400",
		},
		{
			Title:       "Sky Shampoo",
			VariantName: "Rose",
			Brand:       "Sky",
			Category:    "shampoo",
			PackLabel:   "400 ml",
			SizeML:      ml(400),
			Price:       6.90,
			InStock:     true,
			GroupID:     "sky-shampoo-400",
		},
		{
			Title:       "Astra Blades",
			VariantName: "Green (5 pcs)",
			Brand:       "Astra",
			Category:    "razor-blades",
			PackLabel:   "5 pcs",
			Pcs:         pcs(5),
			Price:       2.50,
			InStock:     true,
			GroupID:     "astra-blades",
		},
	}
}

// Products wipes the products collection and inserts the demo catalog.
func Products(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(database.ProductsCollection)

	if _, err := col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("seed: wipe products: %w", err)
	}

	now := time.Now()
	docs := make([]interface{}, 0, 3)
	for _, p := range demoProducts() {
		p.ID = primitive.NewObjectID()
		p.CreatedAt = now
		p.UpdatedAt = now
		docs = append(docs, p)
	}

	if _, err := col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed: insert products: %w", err)
	}

	return nil
}
