package main

import (
	"context"
	"time"

	mongoMigration "cafebook/internal/migrations/mongo"
	"cafebook/pkg/client"
	"cafebook/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.Log.Info("Starting Mongo migration job")

	c := client.NewClient(cfg.Log)
	if err := c.ConnectMongo(cfg.MongoURI, cfg.MongoConnTimeout); err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	defer c.Close(context.Background())

	if err := mongoMigration.RunMigration(ctx, c.Database(cfg.MongoDatabaseName), cfg.Log); err != nil {
		c.Close(context.Background())
		cfg.Log.Fatal("Migration failed", "error", err)
	}

	cfg.Log.Info("Migration completed successfully")
}
