package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Session SessionConfig
	Keys    APIKeys
	Ai      AIConfig
	Limits  LimitConfig
	Otel    OtelConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type SessionConfig struct {
	TTL       time.Duration
	JwtSecret string
}

type APIKeys struct {
	OpenAI      string
	Anthropic   string
	Gemini      string
	HuggingFace string
}

type AIConfig struct {
	LLMProvider string // "openai", "anthropic", "gemini", "ollama", "huggingface"
	LLMModel    string
	LLMBaseURL  string
	// Timeout bounds each upstream call. Zero leaves calls unbounded.
	Timeout time.Duration
}

type LimitConfig struct {
	RPS   float64
	Burst int
}

// OtelConfig controls tracing. Disabled unless OTEL_ENABLED=true.
type OtelConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3001"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Session: SessionConfig{
			TTL:       getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Keys: APIKeys{
			OpenAI:      getEnv("OPENAI_API_KEY", ""),
			Anthropic:   getEnv("ANTHROPIC_API_KEY", ""),
			Gemini:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFace: getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider: getEnv("LLM_PROVIDER", "openai"),
			LLMModel:    getEnv("LLM_MODEL", ""),
			LLMBaseURL:  getEnv("LLM_BASE_URL", ""),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", 0),
		},
		Limits: LimitConfig{
			RPS:   getEnvAsFloat("RATE_LIMIT_RPS", 5),
			Burst: getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
		Otel: OtelConfig{
			Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "eduease-backend"),
		},
	}
}

// APIKeyFor returns the credential matching the configured provider.
func (c *Config) APIKeyFor(provider string) string {
	switch provider {
	case "anthropic":
		return c.Keys.Anthropic
	case "gemini":
		return c.Keys.Gemini
	case "huggingface":
		return c.Keys.HuggingFace
	case "ollama":
		return ""
	default:
		return c.Keys.OpenAI
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Secrets lists every credential value so they can be scrubbed from output.
func (c *Config) Secrets() []string {
	var out []string
	for _, s := range []string{c.Keys.OpenAI, c.Keys.Anthropic, c.Keys.Gemini, c.Keys.HuggingFace, c.Session.JwtSecret} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// String never prints credential values.
func (c *Config) String() string {
	return fmt.Sprintf("env=%s port=%s provider=%s model=%s key=%s timeout=%s redis=%t nats=%t",
		c.App.Environment, c.App.Port, c.Ai.LLMProvider, c.Ai.LLMModel,
		mask(c.APIKeyFor(c.Ai.LLMProvider)), c.Ai.Timeout,
		c.App.RedisURL != "", c.App.NatsURL != "")
}

func mask(s string) string {
	if s == "" {
		return "<unset>"
	}
	return "<redacted>"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
