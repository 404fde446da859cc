package main

import (
	adminhandler "cafebook/internal/admin/handler"
	adminservice "cafebook/internal/admin/service"
	"cafebook/internal/bookings/events"
	bookinghandler "cafebook/internal/bookings/handler"
	bookingrepo "cafebook/internal/bookings/repository"
	bookingservice "cafebook/internal/bookings/service"
	bookingvalidator "cafebook/internal/bookings/validator"
	cafehandler "cafebook/internal/cafes/handler"
	caferepo "cafebook/internal/cafes/repository"
	cafeservice "cafebook/internal/cafes/service"
	cafevalidator "cafebook/internal/cafes/validator"
	"cafebook/internal/health"
	slothandler "cafebook/internal/slots/handler"
	slotrepo "cafebook/internal/slots/repository"
	slotservice "cafebook/internal/slots/service"
	slotvalidator "cafebook/internal/slots/validator"
	"cafebook/pkg/app"
	"cafebook/pkg/client"
	"cafebook/pkg/config"
	"cafebook/pkg/contracts"
	"cafebook/pkg/kafka"
	kafka_config "cafebook/pkg/kafka/config"
	kafka_middleware "cafebook/pkg/kafka/middleware"

	"go.mongodb.org/mongo-driver/mongo"
)

const ServiceName = "cafebook"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Cafebook API")

	c := client.NewClient(cfg.Log)
	if err := c.ConnectMongo(cfg.MongoURI, cfg.MongoConnTimeout); err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	if err := c.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.MongoConnTimeout); err != nil {
		cfg.Log.Fatal("Failed to connect to Redis", "error", err)
	}
	db := c.Database(cfg.MongoDatabaseName)

	producer, publisher := initEvents(cfg)

	serverApp := app.NewApplication(cfg, c)
	serverApp.SetProducer(producer)
	serverApp.SetApp(
		health.NewHealthHandler(health.NewMongoStore(db), cfg.Log),
		initHandlers(cfg, db, publisher)...,
	)
	serverApp.Run()
}

// initEvents returns a nil producer and a no-op publisher when no broker is
// configured.
func initEvents(cfg *config.Config) (*kafka.Producer, events.Publisher) {
	kafkaCfg := kafka_config.Load()
	if err := kafkaCfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	if !kafkaCfg.Enabled() {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return nil, events.NewNoopPublisher()
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))

	return producer, events.NewKafkaPublisher(producer, kafkaCfg.PublishTimeout)
}

func initHandlers(cfg *config.Config, db *mongo.Database, publisher events.Publisher) []contracts.Handler {
	cafeRepo := caferepo.NewMongoCafeRepository(db, cfg)
	slotRepo := slotrepo.NewMongoSlotRepository(db, cfg)
	bookingRepo := bookingrepo.NewMongoBookingRepository(db, cfg)

	cafeService := cafeservice.NewCafeService(cafeRepo, cafevalidator.NewCafeValidator(cfg.Log), cfg)
	slotService := slotservice.NewSlotService(slotRepo, slotvalidator.NewSlotValidator(cfg.Log), cfg)
	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		slotRepo,
		cafeRepo,
		publisher,
		bookingvalidator.NewBookingValidator(cfg.Log),
		cfg,
	)
	statsService := adminservice.NewStatsService(cafeRepo, slotRepo, bookingRepo, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		cafehandler.NewCafeHandler(cafeService, cfg.Log),
		slothandler.NewSlotHandler(slotService, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
		adminhandler.NewStatsHandler(statsService, cfg.Log),
	}
}
