package config

import (
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

const (
	defaultMongoURI  = "mongodb://localhost:27017"
	defaultMongoDB   = "akxton"
	defaultJWTSecret = "change-me-in-production"
	defaultAppPort   = "5000"
	defaultAppEnv    = "development"
)

var (
	loadOnce sync.Once

	mu     sync.RWMutex
	values = map[string]string{}
)

// Load reads .env (if present) and the process environment once.
// Process environment variables win over .env entries.
func Load() error {
	loadOnce.Do(func() {
		loaded := map[string]string{}

		if env, err := godotenv.Read(".env"); err == nil {
			for k, v := range env {
				loaded[strings.ToUpper(strings.TrimSpace(k))] = strings.TrimSpace(v)
			}
		}

		for _, entry := range os.Environ() {
			key, value, ok := strings.Cut(entry, "=")
			if !ok || key == "" {
				continue
			}
			loaded[strings.ToUpper(key)] = value
		}

		mu.Lock()
		values = loaded
		mu.Unlock()
	})
	return nil
}

// Get reads any config key by name with a fallback.
func Get(key, fallback string) string {
	_ = Load()

	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[strings.ToUpper(key)]); value != "" {
		return value
	}
	return fallback
}

func MongoURI() string { return Get("MONGODB_URI", defaultMongoURI) }
func MongoDB() string  { return Get("MONGODB_DB", defaultMongoDB) }

func JWTSecret() string { return Get("JWT_SECRET", defaultJWTSecret) }

func AppPort() string { return Get("APP_PORT", defaultAppPort) }
func AppEnv() string  { return Get("APP_ENV", defaultAppEnv) }

// IsProduction reports whether the app runs in production mode.
// Controls log format and whether stack traces are surfaced on 500s.
func IsProduction() bool {
	env := strings.ToLower(AppEnv())
	return env == "production" || env == "prod"
}

// FrontendURL is the allowed CORS origin in production.
func FrontendURL() string { return Get("FRONTEND_URL", "*") }

// ── Image store (S3-compatible) ──────────────────────────────────────────────

func S3Bucket() string   { return Get("S3_BUCKET", "") }
func S3Region() string   { return Get("S3_REGION", "us-east-1") }
func S3Key() string      { return Get("S3_KEY", "") }
func S3Secret() string   { return Get("S3_SECRET", "") }
func S3Endpoint() string { return Get("S3_ENDPOINT", "") }
func S3URL() string      { return Get("S3_URL", "") }
