// Package repositories implements the services' store interfaces against
// MongoDB. All queries are single-collection: count+find for listings,
// single-document create/update/delete for mutations. Malformed or
// unresolvable ids surface as NotFound.
package repositories

import (
	"context"
	"errors"
	"regexp"
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

// ProductRepository persists products in the products collection.
type ProductRepository struct {
	col *mongo.Collection
}

// NewProductRepository builds a ProductRepository on db.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(database.ProductsCollection)}
}

// Find runs the catalog listing: count, then find with sort/skip/limit.
// The two calls are not snapshot-consistent under concurrent writes.
func (r *ProductRepository) Find(ctx context.Context, f services.ProductFilter) ([]models.Product, int64, error) {
	filter := bson.M{}

	if f.Query != "" {
		re := ciSubstring(f.Query)
		filter["$or"] = []bson.M{
			{"title": re},
			{"brand": re},
			{"variantName": re},
		}
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Brand != "" {
		filter["brand"] = f.Brand
	}

	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "count products", err)
	}

	opts := options.Find().
		SetSort(productSort(f.Sort)).
		SetSkip(f.Skip).
		SetLimit(f.Limit)

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "find products", err)
	}

	var items []models.Product
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "decode products", err)
	}

	return items, total, nil
}

// Distinct returns the raw distinct values of field across the collection.
func (r *ProductRepository) Distinct(ctx context.Context, field string) ([]string, error) {
	raw, err := r.col.Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "distinct "+field, err)
	}

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}
	return values, nil
}

// FindByID fetches one product.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, apperr.New(apperr.NotFound, "Product not found")
	}

	var p models.Product
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, apperr.New(apperr.NotFound, "Product not found")
	}
	if err != nil {
		return models.Product{}, apperr.Wrap(apperr.Internal, "find product", err)
	}
	return p, nil
}

// Insert persists a new product with fresh id and timestamps.
func (r *ProductRepository) Insert(ctx context.Context, p models.Product) (models.Product, error) {
	now := time.Now()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return models.Product{}, apperr.Wrap(apperr.Internal, "insert product", err)
	}
	return p, nil
}

// Update applies a sparse $set built from the non-nil patch fields and
// returns the updated document.
func (r *ProductRepository) Update(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, apperr.New(apperr.NotFound, "Product not found")
	}

	set := bson.M{"updatedAt": time.Now()}
	setIf(set, "title", patch.Title)
	setIf(set, "variantName", patch.VariantName)
	setIf(set, "brand", patch.Brand)
	setIf(set, "category", patch.Category)
	setIf(set, "packLabel", patch.PackLabel)
	setIf(set, "sizeMl", patch.SizeML)
	setIf(set, "pcs", patch.Pcs)
	setIf(set, "price", patch.Price)
	setIf(set, "imageUrl", patch.ImageURL)
	setIf(set, "inStock", patch.InStock)
	setIf(set, "tag", patch.Tag)
	setIf(set, "groupId", patch.GroupID)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Product
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, apperr.New(apperr.NotFound, "Product not found")
	}
	if err != nil {
		return models.Product{}, apperr.Wrap(apperr.Internal, "update product", err)
	}
	return updated, nil
}

// Delete removes one product.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.NotFound, "Product not found")
	}

	err = r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.New(apperr.NotFound, "Product not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "delete product", err)
	}
	return nil
}

// setIf adds key to set when the patch field is present.
func setIf[T any](set bson.M, key string, v *T) {
	if v != nil {
		set[key] = *v
	}
}

// ciSubstring builds a case-insensitive substring matcher. The needle is
// quoted so regex metacharacters in user input match literally.
func ciSubstring(needle string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(needle), Options: "i"}
}

func productSort(order string) bson.D {
	switch order {
	case services.SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}}
	case services.SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}
	case services.SortTitleAsc:
		return bson.D{{Key: "title", Value: 1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}
