package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "cafebook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort      = "8000"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRedisDB = 0

	DefaultBookingEventsTopic = "cafebook.bookings"

	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 35 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultStoreReadTimeout  = 10 * time.Second
	DefaultStoreWriteTimeout = 10 * time.Second

	DefaultSlotClaimMaxRetries     = 3
	DefaultSlotClaimInitialBackoff = 50 * time.Millisecond
)

// Fixed result caps for the list endpoints.
const (
	CafeListLimit         = 50
	SlotListLimit         = 200
	OwnerBookingListLimit = 500
	MaxSlotsPerBulk       = 500
)

type SlotStatus = string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
)

type BookingStatus = string

const (
	Pending   BookingStatus = "pending"
	Confirmed BookingStatus = "confirmed"
	Cancelled BookingStatus = "cancelled"
)

type Role = string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
)
