package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/marcheplus/marcheplus-backend/internal/seed"
	"github.com/marcheplus/marcheplus-backend/pkg/config"
	"github.com/marcheplus/marcheplus-backend/pkg/db"
	"github.com/marcheplus/marcheplus-backend/pkg/logger"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	password := flag.String("password", seed.DefaultPassword, "password for every demo account")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	if cfg.App.IsProd() {
		fmt.Fprintln(os.Stderr, "refusing to seed a production database")
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Environment: cfg.App.Env,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})
	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	result, err := seed.New(dbClient, *password, cfg.Password, logg).Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
	if result.Skipped {
		fmt.Println("catalog already present, nothing seeded")
		return
	}
	fmt.Printf("seeded %d categories, %d users, %d products, %d market summaries\n",
		result.Categories, result.Users, result.Products, result.Summaries)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
