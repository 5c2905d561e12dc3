package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"

	EmbeddingsHuggingFace = "huggingface"
	EmbeddingsGemini      = "gemini"
)

// ErrMissingCredentials is returned when a required datastore credential is absent.
var ErrMissingCredentials = errors.New("missing datastore credentials")

// Config holds application configuration shared by every binary.
type Config struct {
	Env              string   `env:"ENV" envDefault:"dev"`
	Port             string   `env:"PORT"`
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"*"`

	DataBackend string `env:"DATA_BACKEND" envDefault:"rest"`
	SupabaseURL string `env:"SUPABASE_URL"`
	SupabaseKey string `env:"SUPABASE_KEY"`
	DatabaseURL string `env:"DATABASE_URL"`
	DBPool      DBPool

	HFAPIURL        string `env:"HF_API_URL" envDefault:"https://api-inference.huggingface.co"`
	HFAPIToken      string `env:"HF_API_TOKEN"`
	SummarizerModel string `env:"SUMMARIZER_MODEL" envDefault:"facebook/bart-large-cnn"`
	ClassifierModel string `env:"CLASSIFIER_MODEL" envDefault:"facebook/bart-large-mnli"`

	EmbeddingsProvider string `env:"EMBEDDINGS_PROVIDER" envDefault:"huggingface"`
	EmbeddingsModel    string `env:"EMBEDDINGS_MODEL" envDefault:"sentence-transformers/all-MiniLM-L6-v2"`
	GeminiAPIKey       string `env:"GEMINI_API_KEY"`
	GeminiEmbedModel   string `env:"GEMINI_EMBED_MODEL" envDefault:"text-embedding-004"`

	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"120s"`
	MaxUploadMB int64         `env:"MAX_UPLOAD_MB" envDefault:"20"`
	DefaultTopN int           `env:"DEFAULT_TOP_N" envDefault:"5"`

	LogJSON  bool `env:"LOG_JSON" envDefault:"true"`
	LogDebug bool `env:"LOG_DEBUG" envDefault:"false"`
}

// DBPool holds optional database pool overrides. Zero values keep the caller's defaults.
type DBPool struct {
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME"`
	PingTimeout     time.Duration `env:"DB_PING_TIMEOUT"`
}

// Load reads configuration from .env files (best effort) and the environment.
func Load() (Config, error) {
	loadEnvFiles(".env", "cmd/.env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.DataBackend = normalizeBackend(cfg.DataBackend)
	cfg.EmbeddingsProvider = normalizeEmbeddings(cfg.EmbeddingsProvider)
	cfg.SupabaseURL = strings.TrimRight(strings.TrimSpace(cfg.SupabaseURL), "/")
	cfg.CORSAllowOrigins = splitAndTrim(cfg.CORSAllowOrigins)
	if cfg.DefaultTopN <= 0 {
		cfg.DefaultTopN = 5
	}
	return cfg, nil
}

// ValidateDatastore reports whether the credentials for the selected backend are present.
func (c Config) ValidateDatastore() error {
	switch c.DataBackend {
	case BackendPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("%w: DATABASE_URL must be set when DATA_BACKEND=postgres", ErrMissingCredentials)
		}
	default:
		if c.SupabaseURL == "" || strings.TrimSpace(c.SupabaseKey) == "" {
			return fmt.Errorf("%w: SUPABASE_URL and SUPABASE_KEY must be set", ErrMissingCredentials)
		}
	}
	return nil
}

// MaxUploadBytes returns the multipart body limit in bytes.
func (c Config) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 20 << 20
	}
	return c.MaxUploadMB << 20
}

func splitAndTrim(raw []string) []string {
	var out []string
	for _, p := range raw {
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
	case "test":
		return "test"
	default:
		return "dev"
	}
}

func normalizeBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg":
		return BackendPostgres
	default:
		return BackendREST
	}
}

func normalizeEmbeddings(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini", "google":
		return EmbeddingsGemini
	default:
		return EmbeddingsHuggingFace
	}
}
