package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is one sellable catalog entry. Variants of the same base item
// (e.g. two scents of the same shampoo) share a GroupID.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	VariantName string             `bson:"variantName,omitempty" json:"variantName,omitempty"`
	Brand       string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	// PackLabel is free text describing the pack, e.g. "400 ml" / "5 pcs".
	PackLabel string   `bson:"packLabel,omitempty" json:"packLabel,omitempty"`
	SizeML    *float64 `bson:"sizeMl,omitempty" json:"sizeMl,omitempty"`
	Pcs       *int     `bson:"pcs,omitempty" json:"pcs,omitempty"`
	Price     float64  `bson:"price" json:"price"`
	ImageURL  string   `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	InStock   bool     `bson:"inStock" json:"inStock"`
	Tag       string   `bson:"tag,omitempty" json:"tag,omitempty"`
	GroupID   string   `bson:"groupId,omitempty" json:"groupId,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProductPatch is a sparse update: nil means "leave unchanged", so a
// partial edit never clobbers fields the caller did not send.
type ProductPatch struct {
	Title       *string  `json:"title"`
	VariantName *string  `json:"variantName"`
	Brand       *string  `json:"brand"`
	Category    *string  `json:"category"`
	PackLabel   *string  `json:"packLabel"`
	SizeML      *float64 `json:"sizeMl"`
	Pcs         *int     `json:"pcs"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
	InStock     *bool    `json:"inStock"`
	Tag         *string  `json:"tag"`
	GroupID     *string  `json:"groupId"`
}
