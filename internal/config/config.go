package config

import (
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
	DB         `yaml:"db"`
	Analytics  `yaml:"analytics"`
	ReportRate `yaml:"report_rate"`

	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-default:"http://localhost:5173"`
	AdminLogin     string   `yaml:"admin_login" env:"ADMIN_LOGIN"`
	AdminPass      string   `yaml:"admin_pass" env:"ADMIN_PASS"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type DB struct {
	User         string `yaml:"user" env:"DB_USER" env-required:"true"`
	Password     string `yaml:"password" env:"DB_PASSWORD"`
	Host         string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port         int    `yaml:"port" env:"DB_PORT" env-default:"3306"`
	Name         string `yaml:"name" env:"DB_NAME" env-required:"true"`
	MaxOpenConns int    `yaml:"max_open_conns" env-default:"10"`
	MaxIdleConns int    `yaml:"max_idle_conns" env-default:"5"`
}

type Analytics struct {
	DelayMultiplier   float64       `yaml:"delay_multiplier" env-default:"1.5"`
	FallbackThreshold time.Duration `yaml:"fallback_threshold" env-default:"24h"`
	TrendPeriods      int           `yaml:"trend_periods" env-default:"6"`
	MaxTrendPeriods   int           `yaml:"max_trend_periods" env-default:"36"`
	TrendConcurrency  int           `yaml:"trend_concurrency" env-default:"4"`
	QueryTimeout      time.Duration `yaml:"query_timeout" env-default:"5s"`

	// QuarterlyNextOpen возвращает старое поведение навигации: у кварталов "вперёд" не блокируется
	QuarterlyNextOpen bool `yaml:"quarterly_next_open" env:"QUARTERLY_NEXT_OPEN" env-default:"false"`
}

// ReportRate: ограничение на выгрузку excel, запросов в секунду с одного IP.
type ReportRate struct {
	RPS   float64 `yaml:"rps" env-default:"0.2"`
	Burst int     `yaml:"burst" env-default:"3"`
}

func MustConfig() *Config {
	// .env необязателен, переменные могут прийти из окружения
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	// файла нет, берём всё из окружения
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
