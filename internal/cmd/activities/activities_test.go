package activities

import (
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("activities", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8000 {
		t.Fatalf("expected default port 8000, got %d", cfg.Port)
	}
	if cfg.Store != StoreMemory {
		t.Fatalf("expected default store %q, got %q", StoreMemory, cfg.Store)
	}
	if cfg.SQLitePath != filepath.Join("data", "activities.db") {
		t.Fatalf("unexpected default sqlite path %q", cfg.SQLitePath)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("MERGINGTON_ACTIVITIES_PORT", "9000")
	t.Setenv("MERGINGTON_ACTIVITIES_STORE", "sqlite")

	fs := flag.NewFlagSet("activities", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-port", "9001"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9001 {
		t.Fatalf("expected port override 9001, got %d", cfg.Port)
	}
	if cfg.Store != StoreSQLite {
		t.Fatalf("expected store override %q, got %q", StoreSQLite, cfg.Store)
	}
}

func TestOpenStoreMemorySeedsCatalog(t *testing.T) {
	store, closeStore, err := openStore(Config{Store: StoreMemory})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer closeStore()

	activities, err := store.ListActivities(context.Background())
	if err != nil {
		t.Fatalf("list activities: %v", err)
	}
	if len(activities) != 3 {
		t.Fatalf("len(activities) = %d, want 3", len(activities))
	}
}

func TestOpenStoreSQLiteCreatesStorageDir(t *testing.T) {
	cfg := Config{
		Store:      StoreSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "nested", "activities.db"),
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer closeStore()

	activities, err := store.ListActivities(context.Background())
	if err != nil {
		t.Fatalf("list activities: %v", err)
	}
	if len(activities) != 3 {
		t.Fatalf("len(activities) = %d, want 3", len(activities))
	}
}

func TestOpenStoreRejectsUnknownBackend(t *testing.T) {
	_, _, err := openStore(Config{Store: "postgres"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "unknown store backend") {
		t.Fatalf("unexpected error: %v", err)
	}
}
