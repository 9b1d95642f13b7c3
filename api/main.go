package main

import (
	"errors"
	"io/fs"
	"os"

	"walletwatch/api/internal/app"
	"walletwatch/api/internal/config"
	"walletwatch/api/internal/infra/eth"
	"walletwatch/api/internal/infra/nats"
	"walletwatch/api/internal/infra/postgres"
	"walletwatch/api/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load(envPath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic("Can't load .env file: " + err.Error())
	}

	config := config.ReadConfig()
	config.DB = postgres.Init(config)

	unixLogger := logger.Init(config)

	natsinfra := nats.Init(config, unixLogger)

	app := &app.App{
		Config:    config,
		Db:        config.DB,
		Chain:     eth.Init(config, unixLogger),
		NatsInfra: natsinfra,
		Log:       unixLogger,
	}

	app.Start()
}

func envPath() string {
	if path := os.Getenv("ENVPATH"); path != "" {
		return path
	}
	return ".env"
}
