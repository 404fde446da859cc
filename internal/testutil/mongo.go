// Package testutil holds helpers for tests that run against a live MongoDB.
// They are skipped unless CAFEBOOK_TEST_MONGO_URI is set.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	mongoMigration "cafebook/internal/migrations/mongo"
	"cafebook/pkg/client"
	"cafebook/pkg/config"
	"cafebook/pkg/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	EnvTestMongoURI   = "CAFEBOOK_TEST_MONGO_URI"
	ConnectionTimeout = 10 * time.Second
)

type MongoHelper struct {
	Client   *client.Client
	Database *mongo.Database
	Config   *config.Config
}

// NewMongoHelper connects to a fresh, migrated database that is dropped when
// the test ends.
func NewMongoHelper(t *testing.T) *MongoHelper {
	t.Helper()

	mongoURI := os.Getenv(EnvTestMongoURI)
	if mongoURI == "" {
		t.Skipf("%s not set, skipping MongoDB test", EnvTestMongoURI)
	}

	log := logger.Discard()
	c := client.NewClient(log)
	if err := c.ConnectMongo(mongoURI, ConnectionTimeout); err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}

	cfg := config.FromEnv()
	cfg.Log = log
	cfg.MongoURI = mongoURI
	cfg.MongoDatabaseName = "cafebook_test_" + uuid.NewString()[:8]

	h := &MongoHelper{
		Client:   c,
		Database: c.Database(cfg.MongoDatabaseName),
		Config:   cfg,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := mongoMigration.RunMigration(ctx, h.Database, log); err != nil {
		h.Close(t)
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { h.Close(t) })
	return h
}

func (m *MongoHelper) Close(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Database.Drop(ctx); err != nil {
		t.Logf("warning: failed to drop test database %s: %v", m.Database.Name(), err)
	}
	m.Client.Close(ctx)
}
