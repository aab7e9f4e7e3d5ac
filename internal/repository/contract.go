package repository

import (
	"context"

	"github.com/odelour/perfume-shop/storefront-service/internal/domain"
	"github.com/odelour/perfume-shop/storefront-service/internal/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoDBProductRepository interface {
	AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error)
	GetProducts(ctx context.Context) (data []domain.Product, err error)
	GetProductsByCategory(ctx context.Context, category string) (data []domain.Product, err error)
	GetProductByID(ctx context.Context, id string) (product domain.Product, err error)
	UpdateProductRating(ctx context.Context, id primitive.ObjectID, rating float64, numReviews int) (err error)
	HandleTrx(ctx context.Context, fn func(ctx mongo.SessionContext) error) error
}

type MongoDBReviewRepository interface {
	AddReview(ctx context.Context, data domain.Review) (id primitive.ObjectID, err error)
	GetReviewsByProductID(ctx context.Context, productID primitive.ObjectID) (data []domain.Review, err error)
	EnsureIndexes(ctx context.Context) error
}

type ElasticSearchProductRepository interface {
	AddProduct(ctx context.Context, index string, data dto.ProductDocument) (err error)
	SearchProducts(ctx context.Context, query string, limit int) (data []dto.ProductDocument, count int, err error)
	UpdateProductRating(ctx context.Context, data dto.RatingUpdate) (err error)
}
