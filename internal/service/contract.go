package service

import (
	"context"

	"github.com/odelour/perfume-shop/storefront-service/internal/domain"
	"github.com/odelour/perfume-shop/storefront-service/internal/dto"
)

type ProductService interface {
	GetProducts(ctx context.Context) (data []domain.Product, err error)
	GetProductsByCategory(ctx context.Context, category string) (data []domain.Product, err error)
	GetProductByID(ctx context.Context, id string) (product domain.Product, err error)
	SearchProducts(ctx context.Context, query string) (data []dto.ProductDocument, err error)
	ConsumeEvent()
}

type ReviewService interface {
	GetProductReviews(ctx context.Context, productID string) (data []dto.ReviewResponse, err error)
	AddReview(ctx context.Context, req dto.ReviewRequest) (data dto.ReviewResponse, err error)
}
