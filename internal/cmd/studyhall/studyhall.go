// Package studyhall parses the studyhall command flags and wires the study
// progress service to its storage and MCP transport.
package studyhall

import (
	"context"
	"flag"
	"log"
	"time"

	mcpservice "github.com/louisbranch/studyhall/internal/mcp/service"
	"github.com/louisbranch/studyhall/internal/platform/config"
	"github.com/louisbranch/studyhall/internal/platform/otel"
	"github.com/louisbranch/studyhall/internal/storage"
	"github.com/louisbranch/studyhall/internal/storage/memory"
	"github.com/louisbranch/studyhall/internal/storage/sqlite"
	"github.com/louisbranch/studyhall/internal/study/service"
	"github.com/louisbranch/studyhall/internal/telemetry"
)

// Config holds studyhall command configuration.
type Config struct {
	// DBPath is the sqlite database path. Empty selects the in-memory
	// store, where nothing persists across restarts.
	DBPath    string `env:"STUDYHALL_DB_PATH"       envDefault:""`
	Transport string `env:"STUDYHALL_MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr  string `env:"STUDYHALL_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite database path (empty for in-memory)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the study progress service and serves it over MCP until the
// context is cancelled.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "studyhall")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	var snapshots storage.SnapshotStore
	var telemetryStore storage.TelemetryStore
	if cfg.DBPath == "" {
		store := memory.New()
		snapshots, telemetryStore = store, store
	} else {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("close store: %v", err)
			}
		}()
		snapshots, telemetryStore = store, store
	}

	svc := service.New(nil, snapshots, telemetry.NewEmitter(telemetryStore))
	svc.Init(ctx)
	defer svc.Close()

	return mcpservice.Run(ctx, mcpservice.Config{
		Transport: mcpservice.TransportKind(cfg.Transport),
		HTTPAddr:  cfg.HTTPAddr,
	}, svc)
}
