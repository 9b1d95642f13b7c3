// Command keygen creates an API key for the wallet monitoring API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"walletwatch/api/internal/infra/postgres"
	"walletwatch/api/internal/repository"
	"walletwatch/api/internal/service"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type keygenConfig struct {
	Postgres struct {
		Dsn string `envconfig:"DSN" required:"true"`
	}
}

func main() {
	name := flag.String("name", "Development Key", "key name shown in the api_keys table")
	flag.Parse()

	if err := run(*name); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("keygen: %v", err))
		os.Exit(1)
	}
}

func run(name string) error {
	err := godotenv.Load(envPath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	var cfg keygenConfig
	if err := envconfig.Process("WATCHER", &cfg); err != nil {
		return fmt.Errorf("process env: %w", err)
	}

	db, err := postgres.Open(cfg.Postgres.Dsn)
	if err != nil {
		return err
	}
	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	apiKey, err := service.NewApiKeysService(db, repository.InitApiKeysRepo()).Generate(ctx, name)
	if err != nil {
		return err
	}

	line := strings.Repeat("=", 60)
	fmt.Println(color.YellowString(line))
	fmt.Println(color.GreenString("API Key created successfully!"))
	fmt.Println(color.YellowString(line))
	fmt.Println(color.CyanString("API Key: "), color.GreenString(apiKey.Key))
	fmt.Println(color.CyanString("Name:    "), apiKey.Name)
	fmt.Println(color.YellowString(line))
	fmt.Println(color.MagentaString("Save this key, requests need it in the X-API-Key header."))
	return nil
}

func envPath() string {
	if path := os.Getenv("ENVPATH"); path != "" {
		return path
	}
	return ".env"
}
