package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/starford/jera/internal"
	"github.com/starford/jera/internal/docservice"
	"github.com/starford/jera/internal/journal"
	"github.com/starford/jera/internal/mcpserver"
	"github.com/starford/jera/internal/storage"
	pkgconfig "github.com/starford/jera/pkg/config"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	path := cmd.String("config")

	// An explicitly requested config file must exist; the default path is
	// optional so the tool works out of the box in a bare docs checkout.
	if cmd.IsSet("config") {
		if err := pkgconfig.Load(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		return cfg, nil
	}
	if err := pkgconfig.LoadOptional(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func newService(cfg *internal.Config) (*docservice.Service, *journal.DB, error) {
	store, err := storage.NewFS(cfg.Docs.Path)
	if err != nil {
		return nil, nil, err
	}

	db, err := journal.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, nil, err
	}

	return docservice.NewService(store, db, cfg.Docs.Manifest), db, nil
}

func runBuild(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	svc, db, err := newService(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	sum, err := svc.Rebuild(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Generated %s\n", filepath.Join(cfg.Docs.Path, cfg.Docs.Manifest))
	fmt.Printf("  Total files: %d\n", sum.Total)
	fmt.Printf("  Dated files: %d\n", sum.Dated)
	fmt.Printf("  Undated files: %d\n", sum.Undated)

	if sum.Total > 0 {
		fmt.Printf("\nNewest file: %s\n", sum.Newest())
		if sum.Total > 1 {
			fmt.Printf("Oldest file: %s\n", sum.Oldest())
		}
	}

	return nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func runHistory(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := journal.Open(cfg.SQLite.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.List(int(cmd.Int("limit")))
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No build runs recorded.")
		return nil
	}

	for _, r := range runs {
		checksum := r.ManifestChecksum
		if len(checksum) > 12 {
			checksum = checksum[:12]
		}
		fmt.Printf("#%-4d %s  total=%-3d dated=%-3d undated=%-3d %4dms  %s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime),
			r.Total, r.Dated, r.Undated, r.Duration, checksum)
	}

	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	svc, db, err := newService(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return mcpserver.New(svc).ServeStdio()
}

func main() {
	cmd := &cli.Command{
		Name:   "jera",
		Usage:  "Documentation manifest generator with date-aware ordering, preview server, and build history",
		Action: runBuild,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
				Persistent:  true,
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Scan the docs directory and regenerate the manifest",
				Action: runBuild,
			},
			{
				Name:   "serve",
				Usage:  "Serve the docs directory with live manifest rebuilds",
				Action: runServe,
			},
			{
				Name:   "history",
				Usage:  "Print recent manifest build runs",
				Action: runHistory,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of runs to print",
						Value:   20,
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve manifest tools over MCP on stdin/stdout",
				Action: runMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
