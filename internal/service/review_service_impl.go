package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/odelour/perfume-shop/storefront-service/config"
	"github.com/odelour/perfume-shop/storefront-service/internal/domain"
	"github.com/odelour/perfume-shop/storefront-service/internal/dto"
	"github.com/odelour/perfume-shop/storefront-service/internal/repository"
	"github.com/odelour/perfume-shop/storefront-service/pkg/errs"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const maxCommentLength = 500

type ReviewServiceImpl struct {
	reviewRepo    repository.MongoDBReviewRepository
	productRepo   repository.MongoDBProductRepository
	config        config.Config
	kafkaProducer *kafka.Conn
}

func CreateReviewService(reviewRepo repository.MongoDBReviewRepository, productRepo repository.MongoDBProductRepository, config config.Config, kafkaProducer *kafka.Conn) ReviewService {
	return &ReviewServiceImpl{reviewRepo: reviewRepo, productRepo: productRepo, config: config, kafkaProducer: kafkaProducer}
}

func (s *ReviewServiceImpl) GetProductReviews(ctx context.Context, productID string) (data []dto.ReviewResponse, err error) {
	objectID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductReviews").Msg("")
		return nil, errs.ErrClient
	}

	reviews, err := s.reviewRepo.GetReviewsByProductID(ctx, objectID)
	if err != nil {
		return nil, err
	}

	data = make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		data = append(data, toReviewResponse(review))
	}

	return data, nil
}

func (s *ReviewServiceImpl) AddReview(ctx context.Context, req dto.ReviewRequest) (data dto.ReviewResponse, err error) {
	req.UserName = strings.TrimSpace(req.UserName)

	// A zero rating is indistinguishable from an absent one and is rejected
	// together with the other missing fields.
	if req.ProductID == "" || req.UserName == "" || req.Rating == 0 || req.Comment == "" {
		return data, errs.ErrMissingFields
	}

	if req.Rating != math.Trunc(req.Rating) || req.Rating < 1 || req.Rating > 5 {
		return data, errs.ErrInvalidRating
	}

	if utf8.RuneCountInString(req.Comment) > maxCommentLength {
		return data, errs.ErrCommentTooLong
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddReview").Msg("")
		return data, errs.ErrClient
	}

	// Reviews must reference an existing product; orphan reviews are not
	// accepted.
	if _, err = s.productRepo.GetProductByID(ctx, req.ProductID); err != nil {
		return data, err
	}

	review := domain.Review{
		ProductID: productID,
		UserName:  req.UserName,
		Rating:    int(req.Rating),
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	reviewID, err := s.reviewRepo.AddReview(ctx, review)
	if err != nil {
		return data, err
	}
	review.ID = reviewID

	// Aggregation is best effort: the review is already persisted, so a
	// failed recompute leaves the stored rating stale until the next
	// successful submission for this product.
	if aggErr := s.recomputeProductRating(ctx, productID); aggErr != nil {
		log.Ctx(ctx).Warn().Err(aggErr).Str("component", "AddReview").Str("product_id", productID.Hex()).Msg("Rating aggregation failed")
	}

	return toReviewResponse(review), nil
}

// recomputeProductRating rederives a product's rating and review count from
// the full review set. The mean is kept to one decimal place, ties rounded
// away from zero. With no reviews the stored values are left untouched.
func (s *ReviewServiceImpl) recomputeProductRating(ctx context.Context, productID primitive.ObjectID) error {
	var rating float64
	var numReviews int
	updated := false

	err := s.productRepo.HandleTrx(ctx, func(sessionCtx mongo.SessionContext) error {
		reviews, err := s.reviewRepo.GetReviewsByProductID(sessionCtx, productID)
		if err != nil {
			return err
		}

		if len(reviews) == 0 {
			return nil
		}

		total := 0
		for _, review := range reviews {
			total += review.Rating
		}

		rating = math.Round(float64(total)/float64(len(reviews))*10) / 10
		numReviews = len(reviews)

		if err := s.productRepo.UpdateProductRating(sessionCtx, productID, rating, numReviews); err != nil {
			return err
		}

		updated = true
		return nil
	})
	if err != nil {
		return err
	}

	if updated {
		s.publishRatingUpdated(ctx, dto.RatingUpdate{
			ProductID:  productID.Hex(),
			Rating:     rating,
			NumReviews: numReviews,
		})
	}

	return nil
}

func (s *ReviewServiceImpl) publishRatingUpdated(ctx context.Context, data dto.RatingUpdate) {
	// Without a broker the search index converges on the next full reindex.
	if s.kafkaProducer == nil {
		return
	}

	kafkaMsg := dto.KafkaMessage{
		EventType: "product_rating_updated",
		Data:      data,
	}

	jsonMsg, err := json.Marshal(kafkaMsg)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publishRatingUpdated").Msg("")
		return
	}

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		err = s.writeKafkaMessageWithKey(jsonMsg, data.ProductID)
		if err == nil {
			break
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "publishRatingUpdated").Msg("")
		time.Sleep(time.Second * time.Duration(i+1)) // Exponential backoff
	}

	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "publishRatingUpdated").Str("product_id", data.ProductID).Msg("Dropping rating update event")
	}
}

func (s *ReviewServiceImpl) writeKafkaMessageWithKey(msg []byte, key string) error {
	_, err := s.kafkaProducer.WriteMessages(
		kafka.Message{
			Key:   []byte(key),
			Value: msg,
		},
	)
	return err
}

func toReviewResponse(review domain.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        review.ID.Hex(),
		ProductID: review.ProductID.Hex(),
		UserName:  review.UserName,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}
