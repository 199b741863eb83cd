package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config is the environment-provided settings the service consumes.
type Config struct {
	Port        string
	AppEnv      string // "production" gates TLS redirect and shorter tokens
	MongoURI    string // empty means the primary store is not configured
	MongoDBName string
	AuditLogDir string
	JWTSecret   string
	AWSRegion   string
	SNSFcmARN   string
	SESSender   string
	S3Bucket    string
}

// Load reads .env (best effort, real deployments set the environment
// directly) and assembles the config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDBName: getEnv("MONGO_DB_NAME", "wellnesssage"),
		AuditLogDir: getEnv("AUDIT_LOG_DIR", "logs/audit"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		AWSRegion:   getEnv("AWS_REGION", "us-east-1"),
		SNSFcmARN:   os.Getenv("SNS_FCM_ARN"),
		SESSender:   os.Getenv("SES_SENDER"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
	}
	return cfg
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
