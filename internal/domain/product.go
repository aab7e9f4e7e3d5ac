package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CategoryMen    = "Men"
	CategoryWomen  = "Women"
	CategoryUnisex = "Unisex"
)

type Product struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	ShortDescription string             `bson:"short_description" json:"shortDescription"`
	FullDescription  string             `bson:"full_description" json:"fullDescription"`
	Price            float64            `bson:"price" json:"price"`
	OldPrice         float64            `bson:"old_price,omitempty" json:"oldPrice,omitempty"`
	Category         string             `bson:"category" json:"category"`
	Sizes            []string           `bson:"sizes" json:"sizes"`
	Images           []string           `bson:"images" json:"images"`
	Rating           float64            `bson:"rating" json:"rating"`
	NumReviews       int                `bson:"num_reviews" json:"numReviews"`
	InStock          bool               `bson:"in_stock" json:"inStock"`
	Brand            string             `bson:"brand" json:"brand"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updatedAt"`
}
