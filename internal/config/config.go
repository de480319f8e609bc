package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Europe/Moscow"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Storage struct {
		SqlitePath string `env:"STORAGE_SQLITE_PATH" envDefault:"appointments.db"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"appointment_scheduler:appointment_scheduler"`
		BasicClients       []ConfigBasicClient
	}

	RabbitMQ struct {
		Enabled bool   `env:"RABBITMQ_ENABLED"`
		URL     string `env:"RABBITMQ_URL"`
		Queue   string `env:"RABBITMQ_QUEUE" envDefault:"his.appointment-scheduler.users"`
	}

	Cache struct {
		Enabled bool `env:"CACHE_ENABLED"`
		Size    int  `env:"CACHE_SIZE" envDefault:"1000"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	// Разделение basic-клиентов вида user:pass,user2:pass2
	if cfg.Auth.BasicClients == nil {
		cfg.Auth.BasicClients = []ConfigBasicClient{}
	}
	clientPairs := strings.Split(cfg.Auth.BasicClientsString, ",")
	for _, pair := range clientPairs {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			cfg.Auth.BasicClients = append(cfg.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	return cfg, nil
}

// Location возвращает таймзону приложения, при ошибке - UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
