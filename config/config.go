package config

import (
	"log"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Storage. STORAGE_DRIVER is "mongo" or "memory".
	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	DatabaseName  string `mapstructure:"DATABASE_NAME"`
	// SeedFile is a JSON directory seed (see config/seed.example.json), read by
	// the memory driver and by cmd/seed.
	SeedFile string `mapstructure:"SEED_FILE"`

	// Redis configuration.
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int           `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB    int           `mapstructure:"REDIS_QUEUE_DB"`
	VehicleCacheTTL time.Duration `mapstructure:"VEHICLE_CACHE_TTL"`

	// Booking lifecycle.
	BookingCleanupDelay  time.Duration `mapstructure:"BOOKING_CLEANUP_DELAY"`
	BookingSweepInterval time.Duration `mapstructure:"BOOKING_SWEEP_INTERVAL"`
	DeliveryWindow       time.Duration `mapstructure:"DELIVERY_WINDOW"`
	BusinessTimezone     string        `mapstructure:"BUSINESS_TIMEZONE"`

	// Workers.
	WorkerConcurrency int `mapstructure:"WORKER_CONCURRENCY"`

	// Push notifications. Empty disables FCM and falls back to log delivery.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("STORAGE_DRIVER", "mongo")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017/?replicaSet=rs0")
	viper.SetDefault("DATABASE_NAME", "rentify")
	viper.SetDefault("SEED_FILE", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("VEHICLE_CACHE_TTL", "5m")
	viper.SetDefault("BOOKING_CLEANUP_DELAY", "15m")
	viper.SetDefault("BOOKING_SWEEP_INTERVAL", "10m")
	viper.SetDefault("DELIVERY_WINDOW", "8h")
	viper.SetDefault("BUSINESS_TIMEZONE", "UTC")
	viper.SetDefault("WORKER_CONCURRENCY", 10)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

func UseMemoryStorage() bool {
	return AppConfig.StorageDriver == "memory"
}

// BusinessLocation resolves BUSINESS_TIMEZONE, falling back to UTC.
func BusinessLocation() *time.Location {
	if AppConfig.BusinessTimezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(AppConfig.BusinessTimezone)
	if err != nil {
		log.Printf("Unknown BUSINESS_TIMEZONE %q, using UTC", AppConfig.BusinessTimezone)
		return time.UTC
	}
	return loc
}
