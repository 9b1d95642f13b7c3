package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gorm.io/gorm"
)

const envPrefix = "WATCHER"

type Config struct {
	DB *gorm.DB `ignored:"true"`

	Prod_env bool `envconfig:"PROD_ENV" default:"false"`

	Api struct {
		Ipv4             string `envconfig:"ADDR" default:":5000"`
		RateLimitPerHour int    `envconfig:"RATE_LIMIT_PER_HOUR" default:"100"`
	}

	Postgres struct {
		Dsn string `envconfig:"DSN" required:"true"`
	}

	Provider struct {
		Urls    []string      `envconfig:"URLS" required:"true"`
		Timeout time.Duration `envconfig:"TIMEOUT" default:"10s"`
		Rps     float64       `envconfig:"RPS" default:"10"`
	}

	Monitor struct {
		IntervalSeconds  int  `envconfig:"INTERVAL_SECONDS" default:"60"`
		MaxTransfers     int  `envconfig:"MAX_TRANSFERS" default:"50"`
		Workers          int  `envconfig:"WORKERS" default:"4"`
		SchedulerEnabled bool `envconfig:"SCHEDULER_ENABLED" default:"true"`
	}

	Nats struct {
		Servers      string `envconfig:"SERVERS"`
		AlertSubject string `envconfig:"ALERT_SUBJECT" default:"alerts.triggered"`
	}
}

// ReadConfig loads WATCHER_* variables from the environment,
// nested sections are prefixed by their name (WATCHER_MONITOR_INTERVAL_SECONDS).
func ReadConfig() *Config {
	config, err := Load()
	if err != nil {
		panic(err)
	}
	return config
}

func Load() (*Config, error) {
	var config Config
	if err := envconfig.Process(envPrefix, &config); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Postgres.Dsn == "" {
		return fmt.Errorf("postgres dsn is required")
	}
	if c.Monitor.IntervalSeconds <= 0 {
		return fmt.Errorf("monitor interval must be positive, got %d", c.Monitor.IntervalSeconds)
	}
	if c.Monitor.MaxTransfers < 1 || c.Monitor.MaxTransfers > 1000 {
		return fmt.Errorf("monitor max transfers must be in 1..1000, got %d", c.Monitor.MaxTransfers)
	}
	if c.Monitor.Workers < 1 {
		return fmt.Errorf("monitor workers must be at least 1, got %d", c.Monitor.Workers)
	}
	if len(c.Provider.Urls) == 0 {
		return fmt.Errorf("at least one provider url is required")
	}
	if c.Provider.Timeout <= 0 {
		return fmt.Errorf("provider timeout must be positive")
	}
	return nil
}

func (c *Config) MonitorInterval() time.Duration {
	return time.Duration(c.Monitor.IntervalSeconds) * time.Second
}
