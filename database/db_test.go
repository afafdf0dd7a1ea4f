package database

import (
	"testing"
	"time"
)

func TestPoolSettingsDefaults(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("DB_MAX_IDLE_CONNS", "")
	t.Setenv("DB_CONN_MAX_LIFETIME_MINUTES", "")

	pool := poolSettings()
	if pool.MaxOpen != 100 || pool.MaxIdle != 10 || pool.MaxLifetime != time.Hour {
		t.Fatalf("defaults = %+v", pool)
	}
}

func TestPoolSettingsFromEnv(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("DB_MAX_IDLE_CONNS", "5")
	t.Setenv("DB_CONN_MAX_LIFETIME_MINUTES", "30")

	pool := poolSettings()
	if pool.MaxOpen != 25 {
		t.Fatalf("MaxOpen = %d, want 25", pool.MaxOpen)
	}
	if pool.MaxIdle != 5 {
		t.Fatalf("MaxIdle = %d, want 5", pool.MaxIdle)
	}
	if pool.MaxLifetime != 30*time.Minute {
		t.Fatalf("MaxLifetime = %v, want 30m", pool.MaxLifetime)
	}
}

func TestPoolSettingsIgnoresGarbage(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "lots")
	t.Setenv("DB_MAX_IDLE_CONNS", "-3")
	t.Setenv("DB_CONN_MAX_LIFETIME_MINUTES", "0")

	pool := poolSettings()
	if pool.MaxOpen != 100 || pool.MaxIdle != 10 || pool.MaxLifetime != time.Hour {
		t.Fatalf("garbage not ignored: %+v", pool)
	}
}
