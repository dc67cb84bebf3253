package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"prod"`
	ErrorLog   string `yaml:"error_log" env:"ERROR_LOG" env-default:"errors.log"`
	HTTPServer `yaml:"http_server"`
	Report     Report `yaml:"report"`
	Auth       Auth   `yaml:"auth"`
	CORS       CORS   `yaml:"cors"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type Report struct {
	LogoPath     string        `yaml:"logo_path" env:"REPORT_LOGO_PATH"`
	MaxUploadMB  int64         `yaml:"max_upload_mb" env:"REPORT_MAX_UPLOAD_MB" env-default:"20"`
	BuildTimeout time.Duration `yaml:"build_timeout" env:"REPORT_BUILD_TIMEOUT" env-default:"20s"`

	// MaxSalesCount is the largest NUM DE VENTAS a workbook may carry.
	MaxSalesCount int `yaml:"max_sales_count" env:"REPORT_MAX_SALES_COUNT" env-default:"100"`
}

// Auth enables basic auth only when both fields are set.
type Auth struct {
	User     string `yaml:"user" env:"AUTH_USER"`
	Password string `yaml:"password" env:"AUTH_PASSWORD"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

func (a Auth) Enabled() bool {
	return a.User != "" && a.Password != ""
}

// MaxUploadBytes is the multipart limit for an uploaded workbook.
func (r Report) MaxUploadBytes() int64 {
	if r.MaxUploadMB <= 0 {
		return 20 << 20
	}
	return r.MaxUploadMB << 20
}

func Load(path string) (*Config, error) {
	const op = "config.Load"

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func MustConfig() *Config {
	// .env is optional
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}
