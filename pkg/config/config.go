package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string

	JWTSecret string
	JWTExpiry int64

	// Firestore backs the API when a project is configured; otherwise the
	// in-memory repositories are used.
	FirebaseProject    string
	ServiceAccountPath string
	ServiceAccountJSON string
	AuthRateLimit      int
	GeneralRateLimit   int

	// Client side.
	APIBaseURL  string
	StateDir    string
	HTTPTimeout time.Duration
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8000"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		JWTSecret:          getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiry:          getEnvAsInt64("JWT_EXPIRY", 24*60*60), // 24 hours
		FirebaseProject:    getEnv("FIREBASE_PROJECT_ID", ""),
		ServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		ServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		AuthRateLimit:      int(getEnvAsInt64("AUTH_RATE_LIMIT", 5)),
		GeneralRateLimit:   int(getEnvAsInt64("API_RATE_LIMIT", 120)),
		APIBaseURL:         getEnv("STOREFRONT_API_URL", "http://localhost:8000"),
		StateDir:           getEnv("STOREFRONT_STATE_DIR", defaultStateDir()),
		HTTPTimeout:        time.Duration(getEnvAsInt64("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
	}

	return config, nil
}

func (c *Config) UseFirestore() bool {
	return c.FirebaseProject != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func defaultStateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".storefront"
	}
	return filepath.Join(dir, "storefront")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
