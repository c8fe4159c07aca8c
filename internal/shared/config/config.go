package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultSaveTimeout = 15 * time.Second

// Config holds application configuration.
type Config struct {
	Port                string
	CORSAllowOrigin     []string
	ObjectStoreType     string
	LocalStoreDir       string
	AWSRegion           string
	S3Bucket            string
	S3Prefix            string
	SSEKMSKeyID         string
	DatabaseURL         string
	Env                 string
	JWTSecret           string
	PendingStore        string
	SaveEndpointBaseURL string
	SaveEndpointKey     string
	WebhookKey          string
	SaveTimeout         time.Duration
	EventsQueueURL      string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience. Variables
	// already set in the environment win.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	saveKey := getEnv("SUPABASE_ANON_KEY", "")

	return Config{
		Port:                getEnv("PORT", "8080"),
		CORSAllowOrigin:     splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType:     normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:       getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:           getEnv("AWS_REGION", ""),
		S3Bucket:            getEnv("S3_BUCKET", ""),
		S3Prefix:            getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:         getEnv("SSE_KMS_KEY_ID", ""),
		DatabaseURL:         dbURL,
		Env:                 env,
		JWTSecret:           getEnv("JWT_SECRET", ""),
		PendingStore:        normalizePendingStore(getEnv("PENDING_STORE", ""), dbURL),
		SaveEndpointBaseURL: strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SaveEndpointKey:     saveKey,
		WebhookKey:          getEnv("WEBHOOK_ANON_KEY", saveKey),
		SaveTimeout:         getDuration("SAVE_TIMEOUT", defaultSaveTimeout),
		EventsQueueURL:      getEnv("RESUME_EVENTS_QUEUE_URL", ""),
	}
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.Printf("config: failed to load %s: %v", path, err)
		}
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("config: invalid %s %q, using %s", key, raw, def)
		return def
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

// normalizePendingStore picks the draft store backend. Without an explicit
// choice, drafts live in postgres when a database is configured. Unknown
// values are passed through so bootstrap can reject them.
func normalizePendingStore(raw, dbURL string) string {
	choice := strings.ToLower(strings.TrimSpace(raw))
	switch choice {
	case "memory":
		return "memory"
	case "postgres", "pg":
		return "postgres"
	case "object", "s3", "local":
		return "object"
	case "":
		if strings.TrimSpace(dbURL) != "" {
			return "postgres"
		}
		return "memory"
	default:
		return choice
	}
}
