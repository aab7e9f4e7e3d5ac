package main

import (
	"context"
	"fmt"
	"os"

	"github.com/odelour/perfume-shop/storefront-service/config"
	"github.com/odelour/perfume-shop/storefront-service/internal/app"
	"github.com/odelour/perfume-shop/storefront-service/internal/infrastructure/database/mongodb"
	"github.com/odelour/perfume-shop/storefront-service/internal/infrastructure/message-queue/kafka"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stdout}).With().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	config := config.CreateNewConfig()
	db, err := mongodb.ConnectToMongoDB(fmt.Sprintf("mongodb://%s:%s", config.MongoDBConfig.DBHost, config.MongoDBConfig.DBPort), config.MongoDBConfig.DBName)
	if err != nil {
		panic(err)
	}

	defer db.Client().Disconnect(context.Background())

	kafkaReader := kafka.CreateKafkaReader(config)
	kafkaProducer := kafka.CreateKafkaProducer(config)

	application := app.App{
		DB:            db,
		Config:        config,
		KafkaReader:   kafkaReader,
		KafkaProducer: kafkaProducer,
	}

	application.Start()
}
