package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	JWTSecret      string
	MongoURI       string
	DBName         string
	SkipAuth       bool
	Environment    string
	AppId          string
	BusinessAPIURL   string // When set, widget data is fetched from a remote business API instead of the local services
	BusinessAPIToken string // Bearer token for the remote business API
	DivisionsDSN   string // Optional Postgres DSN for the external divisions-stats source
	SnapshotCron   string // Cron spec for the daily business snapshot job
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:         getEnv("DB_NAME", "go-bizops"),
		SkipAuth:       getEnv("SKIP_AUTH", "false") == "true",
		Environment:    getEnv("ENVIRONMENT", "development"),
		AppId:          getEnv("APP_ID", "go-bizops"),
		BusinessAPIURL:   getEnv("BUSINESS_API_URL", ""),
		BusinessAPIToken: getEnv("BUSINESS_API_TOKEN", ""),
		DivisionsDSN:   getEnv("DIVISIONS_DSN", ""),
		SnapshotCron:   getEnv("SNAPSHOT_CRON", "0 2 * * *"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
