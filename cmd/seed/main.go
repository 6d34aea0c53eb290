// Command seed wipes the configured MongoDB database and loads demo data.
package main

import (
	"context"
	"time"
	"youclone/internal/config"
	"youclone/internal/logger"
	"youclone/internal/repository/mongo"
	"youclone/internal/seed"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logrus.WithError(err).Fatal("Could not load config")
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		logrus.WithError(err).Fatal("Could not initialize logger")
	}
	if cfg.Database.Driver != config.DriverMongo {
		log.Fatal("Seeding requires database.driver=mongo; the memory driver seeds itself with database.seed=true")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.WithError(err).Fatal("Could not connect to MongoDB")
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.WithError(err).Error("Failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	if err := mongo.DropAll(ctx, appDB); err != nil {
		log.WithError(err).Fatal("Could not clear collections")
	}
	log.Info("Cleared existing data")
	if err := mongo.EnsureIndexes(ctx, appDB, log); err != nil {
		log.WithError(err).Fatal("Index creation failed")
	}

	if _, err := seed.Run(ctx, mongo.NewRepositories(appDB), log); err != nil {
		log.WithError(err).Fatal("Seeding failed")
	}
}
