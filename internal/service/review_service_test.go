package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/odelour/perfume-shop/storefront-service/config"
	"github.com/odelour/perfume-shop/storefront-service/internal/domain"
	"github.com/odelour/perfume-shop/storefront-service/internal/dto"
	"github.com/odelour/perfume-shop/storefront-service/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeReviewRepo struct {
	reviews []domain.Review
	addErr  error
	getErr  error
}

func (f *fakeReviewRepo) AddReview(ctx context.Context, data domain.Review) (primitive.ObjectID, error) {
	if f.addErr != nil {
		return primitive.NilObjectID, f.addErr
	}

	data.ID = primitive.NewObjectID()
	f.reviews = append(f.reviews, data)
	return data.ID, nil
}

func (f *fakeReviewRepo) GetReviewsByProductID(ctx context.Context, productID primitive.ObjectID) ([]domain.Review, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}

	// newest first, matching the created_at index ordering
	var data []domain.Review
	for i := len(f.reviews) - 1; i >= 0; i-- {
		if f.reviews[i].ProductID == productID {
			data = append(data, f.reviews[i])
		}
	}
	return data, nil
}

func (f *fakeReviewRepo) EnsureIndexes(ctx context.Context) error { return nil }

type fakeProductRepo struct {
	products    map[primitive.ObjectID]*domain.Product
	updateErr   error
	updateCalls int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[primitive.ObjectID]*domain.Product)}
}

func (f *fakeProductRepo) addProduct(product domain.Product) primitive.ObjectID {
	id := primitive.NewObjectID()
	product.ID = id
	f.products[id] = &product
	return id
}

func (f *fakeProductRepo) AddProduct(ctx context.Context, data domain.Product) (primitive.ObjectID, error) {
	return f.addProduct(data), nil
}

func (f *fakeProductRepo) GetProducts(ctx context.Context) ([]domain.Product, error) {
	var data []domain.Product
	for _, product := range f.products {
		data = append(data, *product)
	}
	return data, nil
}

func (f *fakeProductRepo) GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	var data []domain.Product
	for _, product := range f.products {
		if product.Category == category {
			data = append(data, *product)
		}
	}
	return data, nil
}

func (f *fakeProductRepo) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Product{}, errs.ErrClient
	}

	product, ok := f.products[objectID]
	if !ok {
		return domain.Product{}, errs.ErrProductNotFound
	}
	return *product, nil
}

func (f *fakeProductRepo) UpdateProductRating(ctx context.Context, id primitive.ObjectID, rating float64, numReviews int) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}

	product, ok := f.products[id]
	if !ok {
		return errs.ErrProductNotFound
	}

	product.Rating = rating
	product.NumReviews = numReviews
	return nil
}

func (f *fakeProductRepo) HandleTrx(ctx context.Context, fn func(ctx mongo.SessionContext) error) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

func newTestReviewService(t *testing.T) (*ReviewServiceImpl, *fakeReviewRepo, *fakeProductRepo, primitive.ObjectID) {
	t.Helper()

	reviewRepo := &fakeReviewRepo{}
	productRepo := newFakeProductRepo()
	productID := productRepo.addProduct(domain.Product{
		Name:     "Versace Dylan Blue",
		Category: domain.CategoryMen,
		Brand:    "Versace",
	})

	svc := CreateReviewService(reviewRepo, productRepo, config.Config{}, nil).(*ReviewServiceImpl)
	return svc, reviewRepo, productRepo, productID
}

func validRequest(productID primitive.ObjectID) dto.ReviewRequest {
	return dto.ReviewRequest{
		ProductID: productID.Hex(),
		UserName:  "Alex",
		Rating:    5,
		Comment:   "Smells amazing, lasts all day.",
	}
}

func TestAddReview_Validation(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(req *dto.ReviewRequest)
		expectedErr error
	}{
		{
			name:        "missing product id",
			mutate:      func(req *dto.ReviewRequest) { req.ProductID = "" },
			expectedErr: errs.ErrMissingFields,
		},
		{
			name:        "missing user name",
			mutate:      func(req *dto.ReviewRequest) { req.UserName = "" },
			expectedErr: errs.ErrMissingFields,
		},
		{
			name:        "blank user name",
			mutate:      func(req *dto.ReviewRequest) { req.UserName = "   " },
			expectedErr: errs.ErrMissingFields,
		},
		{
			name:        "missing comment",
			mutate:      func(req *dto.ReviewRequest) { req.Comment = "" },
			expectedErr: errs.ErrMissingFields,
		},
		{
			name:        "zero rating treated as missing",
			mutate:      func(req *dto.ReviewRequest) { req.Rating = 0 },
			expectedErr: errs.ErrMissingFields,
		},
		{
			name:        "rating above range",
			mutate:      func(req *dto.ReviewRequest) { req.Rating = 6 },
			expectedErr: errs.ErrInvalidRating,
		},
		{
			name:        "negative rating",
			mutate:      func(req *dto.ReviewRequest) { req.Rating = -1 },
			expectedErr: errs.ErrInvalidRating,
		},
		{
			name:        "fractional rating",
			mutate:      func(req *dto.ReviewRequest) { req.Rating = 3.5 },
			expectedErr: errs.ErrInvalidRating,
		},
		{
			name:        "comment too long",
			mutate:      func(req *dto.ReviewRequest) { req.Comment = strings.Repeat("a", 501) },
			expectedErr: errs.ErrCommentTooLong,
		},
		{
			name:        "malformed product id",
			mutate:      func(req *dto.ReviewRequest) { req.ProductID = "not-an-object-id" },
			expectedErr: errs.ErrClient,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, reviewRepo, productRepo, productID := newTestReviewService(t)

			req := validRequest(productID)
			tc.mutate(&req)

			_, err := svc.AddReview(context.Background(), req)
			require.ErrorIs(t, err, tc.expectedErr)

			// fail fast: nothing persisted, no aggregation attempted
			assert.Empty(t, reviewRepo.reviews)
			assert.Zero(t, productRepo.updateCalls)
		})
	}
}

func TestAddReview_BoundaryRatingsAccepted(t *testing.T) {
	for _, rating := range []float64{1, 5} {
		svc, reviewRepo, _, productID := newTestReviewService(t)

		req := validRequest(productID)
		req.Rating = rating

		data, err := svc.AddReview(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int(rating), data.Rating)
		assert.Len(t, reviewRepo.reviews, 1)
	}
}

func TestAddReview_UnknownProduct(t *testing.T) {
	svc, reviewRepo, _, _ := newTestReviewService(t)

	req := validRequest(primitive.NewObjectID())

	_, err := svc.AddReview(context.Background(), req)
	require.ErrorIs(t, err, errs.ErrProductNotFound)
	assert.Empty(t, reviewRepo.reviews)
}

func TestAddReview_RecomputesProductRating(t *testing.T) {
	svc, _, productRepo, productID := newTestReviewService(t)

	scenario := []struct {
		rating             float64
		expectedRating     float64
		expectedNumReviews int
	}{
		{rating: 5, expectedRating: 5.0, expectedNumReviews: 1},
		{rating: 3, expectedRating: 4.0, expectedNumReviews: 2},
		{rating: 4, expectedRating: 4.0, expectedNumReviews: 3},
	}

	for _, step := range scenario {
		req := validRequest(productID)
		req.Rating = step.rating

		_, err := svc.AddReview(context.Background(), req)
		require.NoError(t, err)

		product := productRepo.products[productID]
		assert.Equal(t, step.expectedRating, product.Rating)
		assert.Equal(t, step.expectedNumReviews, product.NumReviews)
	}
}

func TestAddReview_RoundsMeanToOneDecimal(t *testing.T) {
	testCases := []struct {
		name           string
		ratings        []float64
		expectedRating float64
	}{
		{name: "repeating third rounds down", ratings: []float64{4, 4, 5}, expectedRating: 4.3},
		{name: "exact half kept", ratings: []float64{4, 5}, expectedRating: 4.5},
		{name: "repeating two thirds rounds up", ratings: []float64{1, 2, 2}, expectedRating: 1.7},
		{name: "tie at second decimal rounds away from zero", ratings: []float64{4, 4, 4, 5}, expectedRating: 4.3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, productRepo, productID := newTestReviewService(t)

			for _, rating := range tc.ratings {
				req := validRequest(productID)
				req.Rating = rating

				_, err := svc.AddReview(context.Background(), req)
				require.NoError(t, err)
			}

			assert.Equal(t, tc.expectedRating, productRepo.products[productID].Rating)
		})
	}
}

func TestAddReview_AggregationFailureDoesNotFailSubmission(t *testing.T) {
	svc, reviewRepo, productRepo, productID := newTestReviewService(t)
	productRepo.products[productID].Rating = 4.2
	productRepo.products[productID].NumReviews = 7
	productRepo.updateErr = errs.ErrInternalServer

	data, err := svc.AddReview(context.Background(), validRequest(productID))
	require.NoError(t, err)
	assert.NotEmpty(t, data.ID)

	// the review is persisted, the stored rating stays stale
	assert.Len(t, reviewRepo.reviews, 1)
	assert.Equal(t, 4.2, productRepo.products[productID].Rating)
	assert.Equal(t, 7, productRepo.products[productID].NumReviews)
}

func TestRecomputeProductRating_EmptySetIsNoOp(t *testing.T) {
	svc, _, productRepo, productID := newTestReviewService(t)
	productRepo.products[productID].Rating = 4.2
	productRepo.products[productID].NumReviews = 7

	err := svc.recomputeProductRating(context.Background(), productID)
	require.NoError(t, err)

	assert.Zero(t, productRepo.updateCalls)
	assert.Equal(t, 4.2, productRepo.products[productID].Rating)
	assert.Equal(t, 7, productRepo.products[productID].NumReviews)
}

func TestRecomputeProductRating_Idempotent(t *testing.T) {
	svc, _, productRepo, productID := newTestReviewService(t)

	for _, rating := range []float64{5, 3} {
		req := validRequest(productID)
		req.Rating = rating

		_, err := svc.AddReview(context.Background(), req)
		require.NoError(t, err)
	}

	first := *productRepo.products[productID]

	err := svc.recomputeProductRating(context.Background(), productID)
	require.NoError(t, err)

	assert.Equal(t, first.Rating, productRepo.products[productID].Rating)
	assert.Equal(t, first.NumReviews, productRepo.products[productID].NumReviews)
}

func TestGetProductReviews_NewestFirst(t *testing.T) {
	svc, _, _, productID := newTestReviewService(t)

	reqA := validRequest(productID)
	reqA.UserName = "Alice"
	_, err := svc.AddReview(context.Background(), reqA)
	require.NoError(t, err)

	reqB := validRequest(productID)
	reqB.UserName = "Bob"
	_, err = svc.AddReview(context.Background(), reqB)
	require.NoError(t, err)

	data, err := svc.GetProductReviews(context.Background(), productID.Hex())
	require.NoError(t, err)

	require.Len(t, data, 2)
	assert.Equal(t, "Bob", data[0].UserName)
	assert.Equal(t, "Alice", data[1].UserName)
}

func TestGetProductReviews_EmptySet(t *testing.T) {
	svc, _, _, productID := newTestReviewService(t)

	data, err := svc.GetProductReviews(context.Background(), productID.Hex())
	require.NoError(t, err)
	assert.NotNil(t, data)
	assert.Empty(t, data)
}

func TestGetProductReviews_MalformedProductID(t *testing.T) {
	svc, _, _, _ := newTestReviewService(t)

	_, err := svc.GetProductReviews(context.Background(), "not-an-object-id")
	require.ErrorIs(t, err, errs.ErrClient)
}

func TestAddReview_AssignsCreationTimestamp(t *testing.T) {
	svc, reviewRepo, _, productID := newTestReviewService(t)

	before := time.Now()
	data, err := svc.AddReview(context.Background(), validRequest(productID))
	require.NoError(t, err)

	assert.False(t, data.CreatedAt.Before(before))
	assert.False(t, data.CreatedAt.After(time.Now()))
	require.Len(t, reviewRepo.reviews, 1)
	assert.Equal(t, data.CreatedAt, reviewRepo.reviews[0].CreatedAt)
}
