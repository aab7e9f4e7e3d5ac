package repository

import (
	"context"

	"github.com/odelour/perfume-shop/storefront-service/internal/domain"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBReviewRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBReviewRepository(db *mongo.Database) MongoDBReviewRepository {
	return &MongoDBReviewRepositoryImpl{db: db}
}

func (r *MongoDBReviewRepositoryImpl) AddReview(ctx context.Context, data domain.Review) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection("reviews").InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddReview").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), err
}

func (r *MongoDBReviewRepositoryImpl) GetReviewsByProductID(ctx context.Context, productID primitive.ObjectID) (data []domain.Review, err error) {
	filter := bson.D{{Key: "product_id", Value: productID}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection("reviews").Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetReviewsByProductID").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetReviewsByProductID").Msg("")
		return
	}

	return data, nil
}

// EnsureIndexes keeps the product_id lookup backed by a secondary index so
// review listing and aggregation do not scan the whole collection.
func (r *MongoDBReviewRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection("reviews").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "product_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "EnsureIndexes").Msg("")
	}

	return err
}
