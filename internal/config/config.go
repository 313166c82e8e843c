package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret"`
		TTL        int    `yaml:"ttl"`         // access token lifetime, minutes
		RefreshTTL int    `yaml:"refresh_ttl"` // refresh token lifetime, hours
	} `yaml:"jwt"`

	Gemini struct {
		APIKey         string `yaml:"api_key"`
		BaseURL        string `yaml:"base_url"`
		CapableModel   string `yaml:"capable_model"`
		FastModel      string `yaml:"fast_model"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		MaxRetries     int    `yaml:"max_retries"`
	} `yaml:"gemini"`

	Credits struct {
		SignupBonus   int `yaml:"signup_bonus"`
		ReferralBonus int `yaml:"referral_bonus"`
	} `yaml:"credits"`

	RateLimit struct {
		FreeOpsPerMinute int `yaml:"free_ops_per_minute"`
	} `yaml:"ratelimit"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		OpsEmail     string `yaml:"ops_email"` // persistence incidents, ledger drift
	} `yaml:"email"`

	Billing struct {
		WebhookSecret string `yaml:"webhook_secret"`
	} `yaml:"billing"`
}

// GeminiTimeout returns the hard deadline for one provider call.
func (c *Config) GeminiTimeout() time.Duration {
	if c.Gemini.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.Gemini.TimeoutSeconds) * time.Second
}

var AppConfig *Config

// LoadConfig reads config.yaml, or falls back to environment variables when
// DATABASE_URL is set (the test/deploy mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60
	cfg.JWT.RefreshTTL = 24 * 7

	cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.Billing.WebhookSecret = os.Getenv("BILLING_WEBHOOK_SECRET")
	cfg.Email.OpsEmail = os.Getenv("OPS_EMAIL")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.JWT.RefreshTTL == 0 {
		cfg.JWT.RefreshTTL = 24 * 7
	}
	if cfg.Gemini.BaseURL == "" {
		cfg.Gemini.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Gemini.CapableModel == "" {
		cfg.Gemini.CapableModel = "gemini-1.5-pro"
	}
	if cfg.Gemini.FastModel == "" {
		cfg.Gemini.FastModel = "gemini-1.5-flash"
	}
	if cfg.Gemini.TimeoutSeconds == 0 {
		cfg.Gemini.TimeoutSeconds = 60
	}
	if cfg.Gemini.MaxRetries == 0 {
		cfg.Gemini.MaxRetries = 3
	}
	if cfg.Credits.SignupBonus == 0 {
		cfg.Credits.SignupBonus = 10
	}
	if cfg.Credits.ReferralBonus == 0 {
		cfg.Credits.ReferralBonus = 5
	}
	if cfg.RateLimit.FreeOpsPerMinute == 0 {
		cfg.RateLimit.FreeOpsPerMinute = 10
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
