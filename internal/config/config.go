package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/YJ-0220/product-sub000/pkg/mq"
	"github.com/YJ-0220/product-sub000/pkg/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "MARKET"

type Config struct {
	API       API          `mapstructure:"api"`
	Database  mysql.Config `mapstructure:"database"`
	RabbitMQ  mq.Config    `mapstructure:"rabbitmq"`
	Reconcile Reconcile    `mapstructure:"reconcile"`
	Metrics   Metrics      `mapstructure:"metrics"`
}

type API struct {
	Port      string    `mapstructure:"port"`
	JWTSecret string    `mapstructure:"jwtSecret"`
	RateLimit RateLimit `mapstructure:"rateLimit"`
}

type RateLimit struct {
	RPS     float64       `mapstructure:"rps"`
	Burst   int           `mapstructure:"burst"`
	IdleTTL time.Duration `mapstructure:"idleTTL"`
}

type Reconcile struct {
	Queue     string        `mapstructure:"queue"`
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batchSize"`
	Prefetch  int           `mapstructure:"prefetch"`
}

type Metrics struct {
	Interval time.Duration `mapstructure:"interval"`
	Port     string        `mapstructure:"port"`
}

// Load reads ./config/config.yml. Values from a local .env file and from
// MARKET_* environment variables (MARKET_DATABASE_HOST, ...) override it.
func Load() (cfg *Config, err error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath("./config")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	err = v.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", ":8080")
	v.SetDefault("api.rateLimit.rps", 10)
	v.SetDefault("api.rateLimit.burst", 20)
	v.SetDefault("api.rateLimit.idleTTL", 3*time.Minute)
	v.SetDefault("database.maxRetries", 3)
	v.SetDefault("reconcile.queue", "points.reconcile")
	v.SetDefault("reconcile.interval", 30*time.Second)
	v.SetDefault("reconcile.batchSize", 100)
	v.SetDefault("reconcile.prefetch", 1)
	v.SetDefault("metrics.interval", 15*time.Second)
	v.SetDefault("metrics.port", ":9091")
	v.SetDefault("rabbitmq.appId", "market")
}
