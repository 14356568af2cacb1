package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Matching. The threshold applies to Euclidean distance between
	// L2-normalized embeddings; one knob for the whole deployment.
	FaceMatchThreshold float64       `envconfig:"FACE_MATCH_THRESHOLD" default:"0.6"`
	CooldownWindow     time.Duration `envconfig:"COOLDOWN_WINDOW" default:"10m"`
	Timezone           string        `envconfig:"TIMEZONE" default:"Asia/Kolkata"`

	// Provider
	ProviderType     string        `envconfig:"PROVIDER_TYPE" default:"deepface"`
	DeepFaceURL      string        `envconfig:"DEEPFACE_URL" default:"http://localhost:5005"`
	ModelsDir        string        `envconfig:"MODELS_DIR" default:"models"`
	ExtractorTimeout time.Duration `envconfig:"EXTRACTOR_TIMEOUT" default:"15s"`

	// Security
	JWTSecret    string        `envconfig:"JWT_SECRET" required:"true"`
	JWTIssuer    string        `envconfig:"JWT_ISSUER" default:"ponto"`
	JWTExpiresIn time.Duration `envconfig:"JWT_EXPIRES_IN" default:"30m"`

	// Rate limiting for the public recognition endpoint (per client IP).
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"100"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	// Snapshot archive (MinIO). Disabled when endpoint is empty.
	MinIOEndpoint  string `envconfig:"MINIO_ENDPOINT" default:""`
	MinIOAccessKey string `envconfig:"MINIO_ACCESS_KEY" default:""`
	MinIOSecretKey string `envconfig:"MINIO_SECRET_KEY" default:""`
	MinIOBucket    string `envconfig:"MINIO_BUCKET" default:"ponto-checkins"`
	MinIOUseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`

	// Event bus (NATS JetStream). Disabled when URL is empty.
	NATSURL string `envconfig:"NATS_URL" default:""`

	// Prometheus metrics listener. Disabled when empty.
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9090"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// Location resolves the configured display timezone. Cooldown arithmetic is
// done on UTC instants; the zone only affects user-facing messages.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
