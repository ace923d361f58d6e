package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env        string
	ServerPort string
	LogFile    string

	// database
	DBDriver    string
	DatabaseDSN string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPass      string
	DBName      string

	// sessions
	SessionSecret string
	SessionStore  string // database | redis | memory
	SessionTTL    time.Duration
	SessionSweep  time.Duration // expired row cleanup, database store only

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// seed admin
	AdminEmail string
	AdminPass  string

	// uploads
	UploadDir      string
	MaxUploadBytes int64
	CloudinaryUrl  string

	CorsOrigins  string
	LegacyDBPath string

	// events
	EventsBroker  string // none | kafka | redis
	KafkaBroker   string
	KafkaTopic    string
	KafkaUsername string
	KafkaPassword string
	EventsStream  string
}

func LoadConfig() (Config, error) {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		Env:        v.GetString("ENV"),
		ServerPort: v.GetString("SERVER_PORT"),
		LogFile:    v.GetString("LOG_FILE"),

		DBDriver:    strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN: v.GetString("DATABASE_DSN"),
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBUser:      v.GetString("DB_USER"),
		DBPass:      v.GetString("DB_PASS"),
		DBName:      v.GetString("DB_NAME"),

		SessionSecret: v.GetString("SESSION_SECRET"),
		SessionStore:  strings.ToLower(v.GetString("SESSION_STORE")),
		SessionTTL:    v.GetDuration("SESSION_TTL"),
		SessionSweep:  v.GetDuration("SESSION_SWEEP_INTERVAL"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		AdminEmail: v.GetString("ADMIN_EMAIL"),
		AdminPass:  v.GetString("ADMIN_PASS"),

		UploadDir:      v.GetString("UPLOAD_DIR"),
		MaxUploadBytes: v.GetInt64("MAX_UPLOAD_BYTES"),
		CloudinaryUrl:  v.GetString("CLOUDINARY_URL"),

		CorsOrigins:  v.GetString("CORS_ORIGINS"),
		LegacyDBPath: v.GetString("LEGACY_DB_PATH"),

		EventsBroker:  strings.ToLower(v.GetString("EVENTS_BROKER")),
		KafkaBroker:   v.GetString("KAFKA_BROKER"),
		KafkaTopic:    v.GetString("KAFKA_TOPIC"),
		KafkaUsername: v.GetString("KAFKA_USERNAME"),
		KafkaPassword: v.GetString("KAFKA_PASSWORD"),
		EventsStream:  v.GetString("EVENTS_STREAM"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_PORT", ":4000")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_NAME", "affiliate_db")

	v.SetDefault("SESSION_SECRET", "dev-session-secret")
	v.SetDefault("SESSION_STORE", "database")
	v.SetDefault("SESSION_TTL", 8*time.Hour)
	v.SetDefault("SESSION_SWEEP_INTERVAL", 15*time.Minute)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ADMIN_EMAIL", "admin@example.com")
	v.SetDefault("ADMIN_PASS", "password123")

	v.SetDefault("UPLOAD_DIR", "./mock-storage")
	v.SetDefault("MAX_UPLOAD_BYTES", 10*1024*1024)
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("LEGACY_DB_PATH", "./db.json")

	v.SetDefault("EVENTS_BROKER", "none")
	v.SetDefault("KAFKA_TOPIC", "claim.events")
	v.SetDefault("EVENTS_STREAM", "claim:events")
}

// IsProduction reports whether the service runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// DSN returns DATABASE_DSN, or one assembled from the DB_* parts.
func (c Config) DSN() string {
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN
	}
	if c.DBDriver == "sqlite" {
		return c.DBName + ".db"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName)
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.SessionStore {
	case "database", "redis", "memory":
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.SessionStore)
	}

	switch c.EventsBroker {
	case "none", "kafka", "redis":
	default:
		return fmt.Errorf("unsupported EVENTS_BROKER %q", c.EventsBroker)
	}
	if c.EventsBroker == "kafka" && c.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required when EVENTS_BROKER=kafka")
	}

	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.IsProduction() && (c.SessionSecret == "" || c.SessionSecret == "dev-session-secret") {
		return errors.New("SESSION_SECRET must be set in production")
	}
	if c.AdminEmail == "" || c.AdminPass == "" {
		return errors.New("ADMIN_EMAIL and ADMIN_PASS are required")
	}
	return nil
}
