package config

import (
	"time"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const DefaultProductURL = "https://www.liverpool.com.mx/tienda/pdp/aud%C3%ADfonos-over-ear-bose-quietcomfort-ultra-se-sandstone-inal%C3%A1mbricos-con-cancelaci%C3%B3n-de-ruido/1150870956"

type Config struct {
	Environment Environment `envconfig:"PROMOWATCH_ENV" default:"development"`
	ProductURL  string      `envconfig:"PRODUCT_URL"`

	// DatabaseURL is a SQLite file path, a libsql:// URL or a postgres:// URL.
	// Empty means the default SQLite file under the user's home directory.
	DatabaseURL string `envconfig:"DATABASE_URL"`
	PGDriver    string `envconfig:"PG_DRIVER" default:"pgx"`

	StagingDir    string `envconfig:"STAGING_DIR"`
	StagingPrefix string `envconfig:"STAGING_PREFIX" default:"liverpool-bose-qc-ultra-"`
	KeepArtifacts bool   `envconfig:"KEEP_ARTIFACTS"`

	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	SMTPServer   string `envconfig:"SMTP_SERVER" default:"smtp.gmail.com"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	EmailAddress string `envconfig:"GMAIL_ADDRESS"`
	Password     string `envconfig:"GMAIL_PASSWORD"`
	// AlertTo defaults to EmailAddress.
	AlertTo string `envconfig:"ALERT_TO"`

	RedisURL string        `envconfig:"REDIS_URL"`
	AlertTTL time.Duration `envconfig:"ALERT_TTL" default:"24h"`

	OpenAIKey   string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`

	PushgatewayURL string `envconfig:"PUSHGATEWAY_URL"`
}

// Load reads .env (if any) and the process environment.
func Load() (*Config, error) {
	// Carrega .env da raiz do projeto, depois do diretório atual
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.ProductURL == "" {
		cfg.ProductURL = DefaultProductURL
	}
	if cfg.AlertTo == "" {
		cfg.AlertTo = cfg.EmailAddress
	}
	return &cfg, nil
}

// Override copies every non-zero field of o onto c.
func (c *Config) Override(o Config) error {
	return mergo.Merge(c, o, mergo.WithOverride)
}

// MailEnabled reports whether alert emails can be sent.
func (c *Config) MailEnabled() bool {
	return c.EmailAddress != "" && c.Password != "" && c.AlertTo != ""
}
