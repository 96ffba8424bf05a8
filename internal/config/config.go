package config

import (
	"log"
	"os"
	"strconv"

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
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // access token lifetime in minutes
	} `yaml:"jwt"`

	Paddle struct {
		VendorID     string `yaml:"vendor_id"`
		APIKey       string `yaml:"api_key"`
		PublicKey    string `yaml:"public_key"` // PEM-encoded webhook verification key
		CreditPlanID string `yaml:"credit_plan_id"`
		Sandbox      bool   `yaml:"sandbox"`
	} `yaml:"paddle"`

	Frontend struct {
		URL string `yaml:"url"` // base for checkout success/cancel redirects
	} `yaml:"frontend"`
}

var AppConfig *Config

// LoadConfig loads configuration from config.yaml, or entirely from
// environment variables when DATABASE_URL is set (test/deploy mode).
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

		applyEnvOverrides(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60
	cfg.Frontend.URL = os.Getenv("FRONTEND_URL")
	if cfg.Frontend.URL == "" {
		cfg.Frontend.URL = "http://localhost:3000"
	}

	applyEnvOverrides(&cfg)
	AppConfig = &cfg
}

// applyEnvOverrides lets secrets come from the environment even when a
// yaml file is used, so they never need to live on disk.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("PADDLE_VENDOR_ID"); v != "" {
		cfg.Paddle.VendorID = v
	}
	if v := os.Getenv("PADDLE_API_KEY"); v != "" {
		cfg.Paddle.APIKey = v
	}
	if v := os.Getenv("PADDLE_PUBLIC_KEY"); v != "" {
		cfg.Paddle.PublicKey = v
	}
	if v := os.Getenv("PADDLE_SANDBOX"); v != "" {
		cfg.Paddle.Sandbox, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		cfg.Frontend.URL = v
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
