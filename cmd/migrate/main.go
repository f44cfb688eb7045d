package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/marcheplus/marcheplus-backend/internal/seed"
	"github.com/marcheplus/marcheplus-backend/pkg/config"
	"github.com/marcheplus/marcheplus-backend/pkg/db"
	"github.com/marcheplus/marcheplus-backend/pkg/logger"
	"github.com/marcheplus/marcheplus-backend/pkg/migrate"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|redo|reset|version|create|validate")
	dir := flag.String("dir", migrate.SourceDir, "migrations directory on disk (create and validate)")
	name := flag.String("name", "", "migration name (for create)")
	version := flag.String("version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	withSeed := flag.Bool("seed", false, "load the demo catalog after a successful up (non-prod only)")
	flag.Parse()

	// create and validate only touch the filesystem
	switch *cmd {
	case "create":
		if *name == "" {
			fail("missing -name for create")
		}
		path, err := migrate.CreateSQLMigration(*dir, *name)
		if err != nil {
			fail("failed to create migration: %v", err)
		}
		fmt.Println("created migration:", path)
		return
	case "validate":
		if err := migrate.ValidateDir(*dir); err != nil {
			fail("migration validation failed: %v", err)
		}
		fmt.Println("migration validation passed")
		return
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Environment: cfg.App.Env,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithField(ctx, "cmd", *cmd)

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	sqlDB, err := dbClient.DB().DB()
	requireResource(ctx, logg, "sql database", err)

	runner, err := migrate.NewRunner(sqlDB, migrate.Migrations(), logg)
	requireResource(ctx, logg, "migration runner", err)

	if err := runCommand(ctx, runner, *cmd, *version); err != nil {
		fail("%s failed: %v", *cmd, err)
	}

	if *withSeed && *cmd == "up" {
		if cfg.App.IsProd() {
			fail("refusing to seed a production database")
		}
		result, err := seed.New(dbClient, "", cfg.Password, logg).Run(ctx)
		if err != nil {
			fail("seed failed: %v", err)
		}
		if !result.Skipped {
			fmt.Printf("seeded %d products\n", result.Products)
		}
	}
}

func runCommand(ctx context.Context, runner *migrate.Runner, cmd, version string) error {
	switch cmd {
	case "up":
		return runner.Up(ctx)
	case "down":
		return runner.Down(ctx)
	case "redo":
		return runner.Redo(ctx)
	case "reset":
		return runner.Reset(ctx)
	case "status":
		return runner.Status(ctx)
	case "version":
		if version == "" {
			return fmt.Errorf("missing -version")
		}
		target, err := strconv.ParseInt(version, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid -version %q (want YYYYMMDDHHMMSS): %w", version, err)
		}
		return runner.To(ctx, target)
	}
	return fmt.Errorf("unknown -cmd value %q", cmd)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
