package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	DatabaseURL     string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
	PublicBaseURL   string

	ImageProvider        string
	ImageKitPublicKey    string
	ImageKitPrivateKey   string
	ImageKitUploadPrefix string
	MaxImageBytes        int64

	LLMProvider  string
	LLMModel     string
	OpenAIAPIKey string
	GeminiAPIKey string
	AIRatePerSec float64
	AIBurst      int

	JWTSecret          string
	JWTExpirationHours int
	BcryptCost         int
	PasswordPepper     string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	jwtSecret := os.Getenv("JWT_SECRET")

	if env == "production" {
		if dbURL == "" {
			log.Printf("DATABASE_URL is required in production")
		}
		if jwtSecret == "" {
			log.Printf("JWT_SECRET is required in production")
		}
	}
	if jwtSecret == "" {
		jwtSecret = "dev-secret"
	}

	port := getEnv("PORT", "8080")

	return Config{
		Port:            port,
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:     dbURL,

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
		PublicBaseURL:   strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:"+port), "/"),

		ImageProvider:        normalizeImageProvider(getEnv("IMAGE_PROVIDER", defaultImageProvider())),
		ImageKitPublicKey:    getEnv("IMAGEKIT_PUBLIC_KEY", ""),
		ImageKitPrivateKey:   getEnv("IMAGEKIT_PRIVATE_KEY", ""),
		ImageKitUploadPrefix: getEnv("IMAGEKIT_UPLOAD_PREFIX", ""),
		MaxImageBytes:        int64(getEnvInt("MAX_IMAGE_BYTES", 5<<20)),

		LLMProvider:  strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
		LLMModel:     getEnv("LLM_MODEL", ""),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		AIRatePerSec: getEnvFloat("AI_RATE_PER_SEC", 0.5),
		AIBurst:      getEnvInt("AI_BURST", 5),

		JWTSecret:          jwtSecret,
		JWTExpirationHours: getEnvInt("JWT_EXPIRATION_HOURS", 24*7),
		BcryptCost:         getEnvInt("BCRYPT_COST", 10),
		PasswordPepper:     getEnv("PASSWORD_PEPPER", ""),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		UIRedirectURL:      getEnv("UI_REDIRECT_URL", ""),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return v
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		log.Printf("invalid %s=%q, using %v", key, raw, def)
		return def
	}
	return v
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
	case "test":
		return "test"
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

// defaultImageProvider prefers ImageKit whenever its key is configured, since
// only ImageKit applies the resize and background removal directive.
func defaultImageProvider() string {
	if strings.TrimSpace(os.Getenv("IMAGEKIT_PRIVATE_KEY")) != "" {
		return "imagekit"
	}
	return "store"
}

func normalizeImageProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "imagekit":
		return "imagekit"
	default:
		return "store"
	}
}
