package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Valores padrão
const (
	DefaultFromEmail      = "Dombestein Data <noreply@dombesteindata.net>"
	DefaultAllowedOrigins = "https://dombesteindata.net,https://dikult105.k.uib.no"
	DefaultPort           = "8080"
	DefaultGinMode        = "release"
	DefaultLogLevel       = "info"
	devEnvironment        = "dev"
)

// Config armazena as configurações da aplicação
type Config struct {
	TurnstileSecret    string
	TurnstileVerifyURL string
	ResendAPIKey       string
	ResendAPIURL       string
	ContactToEmail     string
	FromEmail          string

	Environment    string
	AllowedOrigins []string

	Port        string
	MetricsPort string
	GinMode     string
	LogLevel    string
	LogJSON     bool
}

// Dev indica modo de desenvolvimento (localhost liberado, verificação ignorada, debug nos erros)
func (c *Config) Dev() bool {
	return strings.EqualFold(c.Environment, devEnvironment)
}

// Load carrega as configurações do ambiente.
// Segredos ausentes não impedem a inicialização: viram 500 por requisição.
func Load() (*Config, error) {
	// Tenta carregar .env de múltiplos locais
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")

	cfg := &Config{
		TurnstileSecret:    os.Getenv("TURNSTILE_SECRET_KEY"),
		TurnstileVerifyURL: os.Getenv("TURNSTILE_VERIFY_URL"),
		ResendAPIKey:       os.Getenv("RESEND_API_KEY"),
		ResendAPIURL:       os.Getenv("RESEND_API_URL"),
		ContactToEmail:     os.Getenv("CONTACT_TO_EMAIL"),
		FromEmail:          getEnv("RESEND_FROM_EMAIL", DefaultFromEmail),
		Environment:        os.Getenv("ENVIRONMENT"),
		AllowedOrigins:     splitList(getEnv("ALLOWED_ORIGINS", DefaultAllowedOrigins)),
		Port:               getEnv("PORT", DefaultPort),
		MetricsPort:        os.Getenv("METRICS_PORT"),
		GinMode:            getEnv("GIN_MODE", DefaultGinMode),
		LogLevel:           getEnv("LOG_LEVEL", DefaultLogLevel),
		LogJSON:            true,
	}

	if cfg.Environment == "" {
		cfg.Environment = os.Getenv("ENV")
	}

	if v := os.Getenv("LOG_JSON"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("LOG_JSON inválido %q: %w", v, err)
		}
		cfg.LogJSON = b
	}

	if cfg.MetricsPort != "" && cfg.MetricsPort == cfg.Port {
		return nil, fmt.Errorf("METRICS_PORT não pode ser igual a PORT (%s)", cfg.Port)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// splitList separa valores por vírgula ignorando entradas vazias
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
