package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefaultsUnmarshal(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg, err := unmarshal(v)
	if err != nil {
		t.Fatalf("unmarshal defaults failed: %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected api addr: %s", cfg.Server.Addr())
	}
	if cfg.Storefront.Addr() != "0.0.0.0:8081" {
		t.Fatalf("unexpected storefront addr: %s", cfg.Storefront.Addr())
	}
	if cfg.Storefront.SessionTTL() != 30*time.Minute {
		t.Fatalf("unexpected session ttl: %s", cfg.Storefront.SessionTTL())
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("unexpected driver: %s", cfg.Database.Driver)
	}
	if cfg.Queue.Queues["default"] != 10 {
		t.Fatalf("unexpected queue weights: %+v", cfg.Queue.Queues)
	}
	if cfg.Storefront.FeaturedBooks != 8 || cfg.Storefront.NewBooks != 4 {
		t.Fatalf("unexpected home page sizes: %+v", cfg.Storefront)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("STOREFRONT_API_BASE_URL", "http://api:9000/api/v1")
	t.Setenv("DATABASE_DRIVER", "postgres")

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg, err := unmarshal(v)
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if cfg.Storefront.APIBaseURL != "http://api:9000/api/v1" {
		t.Fatalf("env override not applied: %s", cfg.Storefront.APIBaseURL)
	}
	if cfg.Database.Driver != "postgres" {
		t.Fatalf("env override not applied: %s", cfg.Database.Driver)
	}
}

func TestDurationFallbacks(t *testing.T) {
	var sc StorefrontConfig
	if sc.APITimeout() != 10*time.Second {
		t.Fatalf("unexpected api timeout fallback: %s", sc.APITimeout())
	}
	sc.SessionTTLMinutes = 5
	if sc.SessionTTL() != 5*time.Minute {
		t.Fatalf("unexpected session ttl: %s", sc.SessionTTL())
	}
}
