package config

import (
	"testing"
	"time"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := NewConfig()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.App.Env != EnvLocal {
			t.Errorf("expected local env, got %q", cfg.App.Env)
		}
		if cfg.HTTP.Port != "8080" {
			t.Errorf("expected default port 8080, got %q", cfg.HTTP.Port)
		}
		if cfg.Storage.SqlitePath != "appointments.db" {
			t.Errorf("unexpected sqlite path %q", cfg.Storage.SqlitePath)
		}
		if cfg.RabbitMQ.Enabled || cfg.Cache.Enabled {
			t.Error("rabbitmq and cache must be off by default")
		}
		if len(cfg.Auth.BasicClients) != 1 || cfg.Auth.BasicClients[0].Username != "appointment_scheduler" {
			t.Errorf("unexpected default basic clients: %+v", cfg.Auth.BasicClients)
		}
	})

	t.Run("environment is lowercased", func(t *testing.T) {
		t.Setenv("APP_ENV", "PRODUCTION")

		cfg, err := NewConfig()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.App.Env != EnvProduction {
			t.Errorf("expected production env, got %q", cfg.App.Env)
		}
		if !cfg.IsNotLocal() || cfg.IsLocal() {
			t.Error("production must not report as local")
		}
	})

	t.Run("multiple basic clients", func(t *testing.T) {
		t.Setenv("AUTH_BASIC_CLIENTS", "one:pass1,two:pass2")

		cfg, err := NewConfig()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.Auth.BasicClients) != 2 {
			t.Fatalf("expected 2 clients, got %d", len(cfg.Auth.BasicClients))
		}
		if cfg.Auth.BasicClients[1].Username != "two" || cfg.Auth.BasicClients[1].Password != "pass2" {
			t.Errorf("unexpected second client: %+v", cfg.Auth.BasicClients[1])
		}
	})

	t.Run("malformed client pairs are skipped", func(t *testing.T) {
		t.Setenv("AUTH_BASIC_CLIENTS", "broken,ok:pass")

		cfg, err := NewConfig()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.Auth.BasicClients) != 1 || cfg.Auth.BasicClients[0].Username != "ok" {
			t.Errorf("unexpected clients: %+v", cfg.Auth.BasicClients)
		}
	})
}

func TestLocation(t *testing.T) {
	cfg := &Config{}
	cfg.App.Timezone = "Europe/Moscow"
	if cfg.Location().String() != "Europe/Moscow" {
		t.Errorf("unexpected location %v", cfg.Location())
	}

	// Некорректная таймзона деградирует до UTC
	cfg.App.Timezone = "Not/AZone"
	if cfg.Location() != time.UTC {
		t.Errorf("expected UTC fallback, got %v", cfg.Location())
	}
}
