// Package activities parses activities service flags and launches the service.
package activities

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	entrypoint "github.com/Jafie/skills-getting-started-with-github-copilot/internal/platform/cmd"
	server "github.com/Jafie/skills-getting-started-with-github-copilot/internal/services/activities/app"
	"github.com/Jafie/skills-getting-started-with-github-copilot/internal/services/activities/domain"
	"github.com/Jafie/skills-getting-started-with-github-copilot/internal/services/activities/storage/memory"
	activitiessqlite "github.com/Jafie/skills-getting-started-with-github-copilot/internal/services/activities/storage/sqlite"
)

// Storage backend names accepted by the store setting.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds activities command configuration.
type Config struct {
	Port       int    `env:"MERGINGTON_ACTIVITIES_PORT" envDefault:"8000"`
	Store      string `env:"MERGINGTON_ACTIVITIES_STORE" envDefault:"memory"`
	SQLitePath string `env:"MERGINGTON_ACTIVITIES_SQLITE_PATH" envDefault:"data/activities.db"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The activities HTTP server port")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "Activity storage backend (memory or sqlite)")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "SQLite database path for the sqlite backend")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the activities HTTP service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceActivities, func(context.Context) error {
		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		srv, err := server.NewServer(ctx, server.Config{
			HTTPAddr: fmt.Sprintf(":%d", cfg.Port),
			Service:  domain.NewService(store),
		})
		if err != nil {
			return fmt.Errorf("init activities server: %w", err)
		}
		defer srv.Close()

		if err := srv.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve activities: %w", err)
		}
		return nil
	})
}

// openStore builds the configured storage backend and a release func.
func openStore(cfg Config) (domain.Store, func(), error) {
	switch cfg.Store {
	case StoreMemory:
		return memory.NewStore(domain.Seed()), func() {}, nil
	case StoreSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create storage dir: %w", err)
			}
		}
		store, err := activitiessqlite.Open(cfg.SQLitePath, domain.Seed())
		if err != nil {
			return nil, nil, fmt.Errorf("open activities sqlite store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}
