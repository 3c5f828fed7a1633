package redis

import (
	"testing"
	"time"

	"github.com/novinbook/bookstore-backend/pkg/config"
)

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatalf("expected error when neither url nor address is set")
	}
}

func TestOptionsFromConfigAddressFallback(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		Address:      "localhost:6379",
		Password:     "secret",
		DB:           2,
		PoolSize:     5,
		MinIdleConns: 1,
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
	if opts.PoolSize != 5 {
		t.Fatalf("unexpected pool size %d", opts.PoolSize)
	}
}

func TestOptionsFromConfigParsesURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:pw@example.com:6380/3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "example.com:6380" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.DB != 3 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
}

func TestKeyBuilders(t *testing.T) {
	c := &Client{}
	if got := c.AccessSessionKey("abc"); got != "bs:session:abc" {
		t.Fatalf("unexpected session key %q", got)
	}
	if got := c.FilterKey("user-1", "search"); got != "bs:filter:user-1:search" {
		t.Fatalf("unexpected filter key %q", got)
	}
}
