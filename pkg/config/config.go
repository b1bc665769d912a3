package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Rate limit spec in ulule/limiter format, e.g. "100-M".
	RateLimit string

	// Webhook processing
	WebhookMaxRetries    int
	WebhookSweepInterval time.Duration
	WebhookSweepBatch    int
	// Shared secrets per provider, "paystack:secret1,flutterwave:secret2".
	ProviderSecrets map[string]string
	// Downstream consumer URLs for outbound event delivery.
	DispatchTargets []string
	DispatchTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("WEBHOOK_MAX_RETRIES", 5)
	viper.SetDefault("WEBHOOK_SWEEP_INTERVAL", "30s")
	viper.SetDefault("WEBHOOK_SWEEP_BATCH", 50)
	viper.SetDefault("WEBHOOK_PROVIDER_SECRETS", "")
	viper.SetDefault("DISPATCH_TARGETS", "")
	viper.SetDefault("DISPATCH_TIMEOUT", "10s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.WebhookMaxRetries = viper.GetInt("WEBHOOK_MAX_RETRIES")
	cfg.WebhookSweepInterval = viper.GetDuration("WEBHOOK_SWEEP_INTERVAL")
	cfg.WebhookSweepBatch = viper.GetInt("WEBHOOK_SWEEP_BATCH")
	cfg.ProviderSecrets = parsePairs(viper.GetString("WEBHOOK_PROVIDER_SECRETS"))
	cfg.DispatchTargets = splitNonEmpty(viper.GetString("DISPATCH_TARGETS"))
	cfg.DispatchTimeout = viper.GetDuration("DISPATCH_TIMEOUT")

	if len(cfg.ProviderSecrets) == 0 {
		log.Println("Warning: WEBHOOK_PROVIDER_SECRETS not set; inbound webhooks will fail verification.")
	}

	return cfg, nil
}

// parsePairs parses "key:value,key:value" into a map.
func parsePairs(raw string) map[string]string {
	out := make(map[string]string)
	for _, part := range splitNonEmpty(raw) {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 || kv[0] == "" {
			log.Printf("Warning: skipping malformed provider secret entry %q\n", part)
			continue
		}
		out[strings.ToLower(strings.TrimSpace(kv[0]))] = strings.TrimSpace(kv[1])
	}
	return out
}

func splitNonEmpty(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
