package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type Mongo struct {
	URI      string
	Database string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Config struct {
	ServerPort    int
	Env           string
	StorageDriver string
	DB            DB
	Mongo         Mongo
	MinIO         MinIO
	Redis         Redis
	JWTSecretKey  string
	TokenDuration time.Duration
	MaxUploadSize int64
}

// IsDevelopment reports whether cookies may be sent over plain HTTP.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 10 * 1024 * 1024
	}
	return size
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "socialhub"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMongo() Mongo {
	return Mongo{
		URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		Database: getEnv("MONGO_DB", "socialhub"),
	}
}

func LoadMinIO() MinIO {
	endpoint := getEnv("MINIO_ENDPOINT", "localhost:9000")
	useSSL := getEnvBool("MINIO_USE_SSL", false)

	scheme := "http://"
	if useSSL {
		scheme = "https://"
	}

	return MinIO{
		Endpoint:   endpoint,
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "images"),
		UseSSL:     useSSL,
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", scheme+endpoint),
	}
}

func LoadRedis() Redis {
	return Redis{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvAsInt("REDIS_DB", 0),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Warn(".env файл не найден, используются переменные окружения")
	}

	return &Config{
		ServerPort:    getEnvAsInt("SERVER_PORT", 8080),
		Env:           getEnv("APP_ENV", "production"),
		StorageDriver: getEnv("STORAGE_DRIVER", DriverMongo),
		DB:            LoadDB(),
		Mongo:         LoadMongo(),
		MinIO:         LoadMinIO(),
		Redis:         LoadRedis(),
		JWTSecretKey:  getEnv("JWT_SECRET_KEY", ""),
		TokenDuration: parseDuration(getEnv("TOKEN_DURATION", "360h"), 15*24*time.Hour),
		MaxUploadSize: parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
	}
}
