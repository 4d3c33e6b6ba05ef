package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("BCRYPT_COST", "")

	cfg := Load()
	if cfg.Port != "5000" {
		t.Fatalf("expected default port 5000, got %s", cfg.Port)
	}
	if cfg.StoreDriver != "mongo" || cfg.UseMemoryStore() {
		t.Fatalf("expected mongo store by default, got %q", cfg.StoreDriver)
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("expected bcrypt cost 12, got %d", cfg.BcryptCost)
	}
	if cfg.MongoConnectTimeout != 10*time.Second {
		t.Fatalf("expected 10s connect timeout, got %v", cfg.MongoConnectTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("MIGRATE_ON_START", "false")
	t.Setenv("MONGO_CONNECT_TIMEOUT", "3s")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")

	cfg := Load()
	if !cfg.UseMemoryStore() {
		t.Fatalf("expected memory store, got %q", cfg.StoreDriver)
	}
	if cfg.BcryptCost != 4 {
		t.Fatalf("expected bcrypt cost 4, got %d", cfg.BcryptCost)
	}
	if cfg.MigrateOnStart {
		t.Fatal("expected MIGRATE_ON_START=false to disable migrations")
	}
	if cfg.MongoConnectTimeout != 3*time.Second {
		t.Fatalf("expected 3s, got %v", cfg.MongoConnectTimeout)
	}
	if cfg.RateLimitPerMinute != 300 {
		t.Fatalf("invalid int should fall back to default, got %d", cfg.RateLimitPerMinute)
	}
}

func TestSplitLists(t *testing.T) {
	cfg := &Config{
		CORSAllowedOrigins: " http://a.test, ,http://b.test ",
		ElasticsearchAddrs: "",
	}
	if got, want := cfg.CORSOrigins(), []string{"http://a.test", "http://b.test"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("CORSOrigins() = %v, want %v", got, want)
	}
	if got := cfg.ESAddrs(); len(got) != 0 {
		t.Fatalf("expected no ES addresses, got %v", got)
	}
}
