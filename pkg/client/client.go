package client

import (
	"context"
	"fmt"
	"time"

	"cafebook/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client owns the connections to external stores. It is created once at startup
// and closed on shutdown; components receive the handles they need from it.
type Client struct {
	Mongo *mongo.Client
	Redis *redis.Client

	log *logger.Logger
}

func NewClient(log *logger.Logger) *Client {
	return &Client{log: log}
}

func (c *Client) ConnectMongo(mongoURI string, connTimeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), connTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	c.log.Info("Successfully connected to MongoDB")
	c.Mongo = client
	return nil
}

// ConnectRedis is optional; an empty address leaves Redis disabled.
func (c *Client) ConnectRedis(addr, password string, db int, connTimeout time.Duration) error {
	if addr == "" {
		c.log.Info("Redis address not configured, skipping Redis connection")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("failed to ping Redis at %s: %w", addr, err)
	}

	c.log.Info("Successfully connected to Redis", "addr", addr)
	c.Redis = rdb
	return nil
}

func (c *Client) Database(name string) *mongo.Database {
	return c.Mongo.Database(name)
}

// Close disconnects every open store connection.
func (c *Client) Close(ctx context.Context) {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.log.Error("Failed to close Redis connection", "error", err)
		}
	}
	if c.Mongo != nil {
		if err := c.Mongo.Disconnect(ctx); err != nil {
			c.log.Error("Failed to disconnect from MongoDB", "error", err)
			return
		}
		c.log.Info("Disconnected from MongoDB")
	}
}
