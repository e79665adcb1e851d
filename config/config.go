package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"

	DefaultPageSize = 10
)

type Config struct {
	Environment string
	Name        string
	Version     string
	StoreDriver string
	HTTP        HTTPConfig
	Postgres    PostgresConfig
	Mongo       MongoConfig
	JWT         JWTConfig
	S3          S3Config
	Redis       RedisConfig
	RateLimit   RateLimitConfig
}

type HTTPConfig struct {
	Port          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	MaxHeaderMB   int
	MaxBodyMB     int
	AllowedOrigin []string
	// PageSize используется, когда клиент не передал page_size.
	PageSize      int
}

type PostgresConfig struct {
	Host               string
	Port               string
	Username           string
	Password           string
	DBName             string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	MaxLifetime        time.Duration
	MigrationsDir      string
	ApplicationName    string
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type JWTConfig struct {
	SigningKey     string
	AccessTokenTTL time.Duration
}

type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	SearchTTL time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func NewConfig() (*Config, error) {
	httpReadTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	httpWriteTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	postgresMaxLifetime, err := time.ParseDuration(getEnv("POSTGRES_MAX_LIFETIME", "5m"))
	if err != nil {
		return nil, err
	}

	mongoConnectTimeout, err := time.ParseDuration(getEnv("MONGODB_CONNECT_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	jwtAccessTokenTTL, err := time.ParseDuration(getEnv("JWT_ACCESS_TOKEN_TTL", "24h"))
	if err != nil {
		return nil, err
	}

	redisSearchTTL, err := time.ParseDuration(getEnv("REDIS_SEARCH_TTL", "30s"))
	if err != nil {
		return nil, err
	}

	pageSize := getEnvAsInt("PAGE_SIZE", DefaultPageSize)
	if pageSize <= 0 {
		return nil, fmt.Errorf("PAGE_SIZE должен быть положительным: %d", pageSize)
	}

	appName := getEnv("APP_NAME", "slotbook")

	storeDriver := strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres))
	if storeDriver != StoreDriverPostgres && storeDriver != StoreDriverMongo {
		return nil, fmt.Errorf("неизвестный STORE_DRIVER: %s", storeDriver)
	}

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Name:        appName,
		Version:     getEnv("APP_VERSION", "1.0.0"),
		StoreDriver: storeDriver,
		HTTP: HTTPConfig{
			Port:          getEnv("PORT", getEnv("HTTP_PORT", "5000")),
			ReadTimeout:   httpReadTimeout,
			WriteTimeout:  httpWriteTimeout,
			MaxHeaderMB:   getEnvAsInt("HTTP_MAX_HEADER_MB", 1),
			MaxBodyMB:     getEnvAsInt("HTTP_MAX_BODY_MB", 10),
			AllowedOrigin: strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
			PageSize:      pageSize,
		},
		Postgres: PostgresConfig{
			Host:               getEnv("POSTGRES_HOST", "localhost"),
			Port:               getEnv("POSTGRES_PORT", "5432"),
			Username:           getEnv("POSTGRES_USER", "postgres"),
			Password:           getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:             getEnv("POSTGRES_DB", "slotbook"),
			SSLMode:            getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConnections:     getEnvAsInt("POSTGRES_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("POSTGRES_MAX_IDLE_CONNECTIONS", 2),
			MaxLifetime:        postgresMaxLifetime,
			MigrationsDir:      getEnv("MIGRATIONS_DIR", "./migrations"),
			ApplicationName:    appName,
		},
		Mongo: MongoConfig{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DATABASE", "appointment-system"),
			ConnectTimeout: mongoConnectTimeout,
		},
		JWT: JWTConfig{
			SigningKey:     getEnv("JWT_SIGNING_KEY", "your_secret_key"),
			AccessTokenTTL: jwtAccessTokenTTL,
		},
		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Bucket:          getEnv("S3_BUCKET", "slotbook"),
			UseSSL:          getEnv("S3_USE_SSL", "true") == "true",
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", ""),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvAsInt("REDIS_DB", 0),
			SearchTTL: redisSearchTTL,
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvAsFloat("AUTH_RATE_LIMIT_RPS", 5),
			Burst: getEnvAsInt("AUTH_RATE_LIMIT_BURST", 10),
		},
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value := 0
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var value float64
	_, err := fmt.Sscanf(valueStr, "%g", &value)
	if err != nil {
		return defaultValue
	}

	return value
}
