// Seeds the perfume catalog into MongoDB and publishes add_product events so
// the search index picks the products up. Reseeding wipes products and
// reviews first.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/odelour/perfume-shop/storefront-service/config"
	"github.com/odelour/perfume-shop/storefront-service/internal/domain"
	"github.com/odelour/perfume-shop/storefront-service/internal/dto"
	"github.com/odelour/perfume-shop/storefront-service/internal/infrastructure/database/mongodb"
	kafkainfra "github.com/odelour/perfume-shop/storefront-service/internal/infrastructure/message-queue/kafka"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var seedProducts = []domain.Product{
	{
		Name:             "Versace Dylan Blue",
		ShortDescription: "A fresh, woody fragrance with Mediterranean notes perfect for the modern man.",
		FullDescription:  "Versace Pour Homme Dylan Blue combines natural citrus notes with aquatic accords. Top notes of Calabrian bergamot, grapefruit and fig leaf over violet leaf, papyrus wood and patchouli, on a base of musk, tonka bean, saffron and incense.",
		Price:            4141,
		OldPrice:         5050,
		Category:         domain.CategoryMen,
		Sizes:            []string{"30ml", "50ml", "100ml", "200ml"},
		Images:           []string{"https://images.odelour.shop/products/dylan-blue-1.jpg", "https://images.odelour.shop/products/dylan-blue-2.jpg"},
		InStock:          true,
		Brand:            "Versace",
	},
	{
		Name:             "Dunhill Icon Elite",
		ShortDescription: "A sophisticated blend of black pepper, lavender and vetiver for the refined gentleman.",
		FullDescription:  "Dunhill Icon Elite opens with black pepper and bergamot, leading to a heart of iris and lavender. The base of vetiver, agarwood and leather gives a powerful yet refined signature.",
		Price:            7800,
		OldPrice:         8500,
		Category:         domain.CategoryMen,
		Sizes:            []string{"50ml", "100ml"},
		Images:           []string{"https://images.odelour.shop/products/icon-elite-1.jpg"},
		InStock:          true,
		Brand:            "Dunhill",
	},
	{
		Name:             "Jaguar Classic EDT",
		ShortDescription: "A classic masculine scent with notes of mandarin, sandalwood and musk.",
		FullDescription:  "Jaguar Classic is an aromatic-fougere fragrance. Refreshing mandarin and apple balanced by jasmine and pink pepper, with a warm dry-down of sandalwood, musk and oakmoss.",
		Price:            2700,
		OldPrice:         3300,
		Category:         domain.CategoryMen,
		Sizes:            []string{"40ml", "100ml"},
		Images:           []string{"https://images.odelour.shop/products/jaguar-classic-1.jpg"},
		InStock:          true,
		Brand:            "Jaguar",
	},
	{
		Name:             "Lancome La Vie Est Belle",
		ShortDescription: "An iris gourmand celebrating joy and femininity with praline and vanilla.",
		FullDescription:  "La Vie Est Belle pairs iris pallida with patchouli essence and a praline and vanilla gourmand accord. A luminous, long-lasting fragrance of happiness.",
		Price:            6200,
		OldPrice:         7100,
		Category:         domain.CategoryWomen,
		Sizes:            []string{"30ml", "50ml", "100ml"},
		Images:           []string{"https://images.odelour.shop/products/la-vie-est-belle-1.jpg", "https://images.odelour.shop/products/la-vie-est-belle-2.jpg"},
		InStock:          true,
		Brand:            "Lancome",
	},
	{
		Name:             "Chanel Coco Mademoiselle",
		ShortDescription: "A fresh oriental fragrance with vibrant orange and elegant rose.",
		FullDescription:  "Coco Mademoiselle opens with vibrant orange, unfolds over a clear and sensual heart of rose and jasmine, and settles into patchouli and vetiver.",
		Price:            9800,
		Category:         domain.CategoryWomen,
		Sizes:            []string{"35ml", "50ml", "100ml"},
		Images:           []string{"https://images.odelour.shop/products/coco-mademoiselle-1.jpg"},
		InStock:          true,
		Brand:            "Chanel",
	},
	{
		Name:             "CK One",
		ShortDescription: "The iconic shared fragrance with bergamot, cardamom and green tea.",
		FullDescription:  "CK One is a citrus aromatic fragrance made to be shared. Bergamot, cardamom and pineapple over a green tea heart, with a soft musky amber base.",
		Price:            2100,
		OldPrice:         2600,
		Category:         domain.CategoryUnisex,
		Sizes:            []string{"50ml", "100ml", "200ml"},
		Images:           []string{"https://images.odelour.shop/products/ck-one-1.jpg"},
		InStock:          true,
		Brand:            "Calvin Klein",
	},
}

func main() {
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stdout}).With().Logger()
	log.Logger = logger

	config := config.CreateNewConfig()
	db, err := mongodb.ConnectToMongoDB(fmt.Sprintf("mongodb://%s:%s", config.MongoDBConfig.DBHost, config.MongoDBConfig.DBPort), config.MongoDBConfig.DBName)
	if err != nil {
		panic(err)
	}

	defer db.Client().Disconnect(context.Background())

	kafkaProducer := kafkainfra.CreateKafkaProducer(config)
	defer kafkaProducer.Close()

	ctx := context.Background()

	if _, err := db.Collection("reviews").DeleteMany(ctx, bson.D{}); err != nil {
		log.Fatal().Err(err).Msg("Failed to clear reviews")
	}
	if _, err := db.Collection("products").DeleteMany(ctx, bson.D{}); err != nil {
		log.Fatal().Err(err).Msg("Failed to clear products")
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(seedProducts))
	for _, product := range seedProducts {
		product.CreatedAt = now
		product.UpdatedAt = now
		docs = append(docs, product)
	}

	result, err := db.Collection("products").InsertMany(ctx, docs)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to insert products")
	}

	for i, insertedID := range result.InsertedIDs {
		product := seedProducts[i]
		kafkaMsg := dto.KafkaMessage{
			EventType: "add_product",
			Data: dto.ProductDocument{
				ID:               insertedID.(primitive.ObjectID).Hex(),
				Name:             product.Name,
				Brand:            product.Brand,
				ShortDescription: product.ShortDescription,
				Price:            product.Price,
				OldPrice:         product.OldPrice,
				Category:         product.Category,
				Sizes:            product.Sizes,
				Images:           product.Images,
				Rating:           product.Rating,
				NumReviews:       product.NumReviews,
				InStock:          product.InStock,
			},
		}

		jsonMsg, err := json.Marshal(kafkaMsg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to marshal product event")
		}

		if _, err := kafkaProducer.WriteMessages(kafka.Message{Value: jsonMsg}); err != nil {
			log.Error().Err(err).Str("product", product.Name).Msg("Failed to publish product event")
		}
	}

	log.Info().Int("products", len(result.InsertedIDs)).Msg("Catalog seeded")
}
