package config

import (
	"github.com/joho/godotenv"
	"log"
	"os"
	"strconv"
	"time"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
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

type OAuth struct {
	GoogleClientID     string
	GoogleClientSecret string
}

type Mail struct {
	ResendAPIKey string
	Sender       string
}

type Config struct {
	ServerPort            int
	Environment           string
	DB                    DB
	MinIO                 MinIO
	OAuth                 OAuth
	Mail                  Mail
	JWTSecretKey          string
	SessionTokenDuration  time.Duration
	ResetTokenDuration    time.Duration
	VerificationOTPExpiry time.Duration
	ResetOTPExpiry        time.Duration
	BlacklistSweepPeriod  time.Duration
	MaxUploadSize         int64
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
	if err != nil {
		return fallback
	}
	return duration
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 25 * 1024 * 1024
	}
	return size
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "connections"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "media"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", "http://localhost:9000"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:  getEnvAsInt("SERVER_PORT", 8080),
		Environment: getEnv("APP_ENV", "development"),
		DB:          LoadDB(),
		MinIO:       LoadMinIO(),
		OAuth: OAuth{
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		},
		Mail: Mail{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			Sender:       getEnv("EMAIL_SENDER", "Connections <no-reply@connections.local>"),
		},
		JWTSecretKey:          getEnv("JWT_SECRET_KEY", ""),
		SessionTokenDuration:  parseDuration(getEnv("SESSION_TOKEN_DURATION", "168h"), 168*time.Hour),
		ResetTokenDuration:    parseDuration(getEnv("RESET_TOKEN_DURATION", "10m"), 10*time.Minute),
		VerificationOTPExpiry: parseDuration(getEnv("VERIFICATION_OTP_EXPIRY", "10m"), 10*time.Minute),
		ResetOTPExpiry:        parseDuration(getEnv("RESET_OTP_EXPIRY", "5m"), 5*time.Minute),
		BlacklistSweepPeriod:  parseDuration(getEnv("BLACKLIST_SWEEP_PERIOD", "1h"), time.Hour),
		MaxUploadSize:         parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "26214400")),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
