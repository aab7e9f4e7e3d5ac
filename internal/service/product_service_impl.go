package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/odelour/perfume-shop/storefront-service/config"
	"github.com/odelour/perfume-shop/storefront-service/internal/domain"
	"github.com/odelour/perfume-shop/storefront-service/internal/dto"
	"github.com/odelour/perfume-shop/storefront-service/internal/repository"
	"github.com/segmentio/kafka-go"
)

const searchResultLimit = 10

type ProductServiceImpl struct {
	mongoDBRepo       repository.MongoDBProductRepository
	elasticSearchRepo repository.ElasticSearchProductRepository
	config            config.Config
	kafkaReader       *kafka.Reader
}

func CreateProductService(mongoDBRepo repository.MongoDBProductRepository, elasticSearchRepo repository.ElasticSearchProductRepository, config config.Config, kafkaReader *kafka.Reader) ProductService {
	return &ProductServiceImpl{mongoDBRepo: mongoDBRepo, elasticSearchRepo: elasticSearchRepo, config: config, kafkaReader: kafkaReader}
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context) (data []domain.Product, err error) {
	data, err = s.mongoDBRepo.GetProducts(ctx)

	return
}

func (s *ProductServiceImpl) GetProductsByCategory(ctx context.Context, category string) (data []domain.Product, err error) {
	data, err = s.mongoDBRepo.GetProductsByCategory(ctx, category)

	return
}

func (s *ProductServiceImpl) GetProductByID(ctx context.Context, id string) (product domain.Product, err error) {
	product, err = s.mongoDBRepo.GetProductByID(ctx, id)

	return
}

func (s *ProductServiceImpl) SearchProducts(ctx context.Context, query string) (data []dto.ProductDocument, err error) {
	data, _, err = s.elasticSearchRepo.SearchProducts(ctx, query, searchResultLimit)

	return
}

func (s *ProductServiceImpl) indexProduct(ctx context.Context, data dto.ProductDocument) (err error) {
	err = s.elasticSearchRepo.AddProduct(ctx, "products", data)

	return
}

func (s *ProductServiceImpl) updateIndexedProductRating(ctx context.Context, data dto.RatingUpdate) (err error) {
	err = s.elasticSearchRepo.UpdateProductRating(ctx, data)

	return
}

// ConsumeEvent keeps the search index in sync with the catalog. It never
// returns; malformed or unknown events are logged and skipped.
func (s *ProductServiceImpl) ConsumeEvent() {
	for {
		msg, err := s.kafkaReader.ReadMessage(context.Background())
		if err != nil {
			log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
			continue
		}

		var receivedMsg dto.KafkaMessage
		if err := json.Unmarshal(msg.Value, &receivedMsg); err != nil {
			log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
			continue
		}

		switch receivedMsg.EventType {
		case "add_product":
			var productData dto.ProductDocument
			dataBytes, err := json.Marshal(receivedMsg.Data)
			if err != nil {
				log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
				continue
			}

			if err := json.Unmarshal(dataBytes, &productData); err != nil {
				log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
				continue
			}

			if err := s.indexProduct(context.Background(), productData); err != nil {
				log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
				continue
			}

			log.Info().Str("component", "ConsumeEvent").Str("product_id", productData.ID).Msg("Product indexed")
		case "product_rating_updated":
			var ratingUpdate dto.RatingUpdate
			dataBytes, err := json.Marshal(receivedMsg.Data)
			if err != nil {
				log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
				continue
			}

			if err := json.Unmarshal(dataBytes, &ratingUpdate); err != nil {
				log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
				continue
			}

			if err := s.updateIndexedProductRating(context.Background(), ratingUpdate); err != nil {
				log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
				continue
			}

			log.Info().Str("component", "ConsumeEvent").Str("product_id", ratingUpdate.ProductID).Msg("Indexed product rating updated")
		default:
			log.Warn().Str("component", "ConsumeEvent").Str("event_type", receivedMsg.EventType).Msg("Unknown event type")
		}
	}
}
