package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/go-chi/chi"
	"github.com/joho/godotenv"

	"github.com/diwise/aqi-bot/internal/pkg/application"
	"github.com/diwise/aqi-bot/internal/pkg/application/purpleair"
	"github.com/diwise/aqi-bot/internal/pkg/infrastructure/discord"
	"github.com/diwise/aqi-bot/internal/pkg/infrastructure/router"
)

const serviceName string = "aqi-bot"

func main() {
	// a local .env is optional, the environment takes precedence
	dotenvErr := godotenv.Load()

	serviceVersion := buildinfo.SourceVersion()

	ctx, logger, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion)
	defer cleanup()

	if dotenvErr == nil {
		logger.Info().Msg("loaded environment from .env")
	}

	discordToken := env.GetVariableOrDie(logger, "DISCORD_TOKEN", "discord bot token")
	baseUrl := env.GetVariableOrDefault(logger, "PURPLEAIR_BASEURL", purpleair.DefaultBaseURL)
	timeout := env.GetVariableOrDefault(logger, "PURPLEAIR_TIMEOUT", "0s")
	servicePort := env.GetVariableOrDefault(logger, "SERVICE_PORT", "8080")

	requestTimeout, err := time.ParseDuration(timeout)
	if err != nil {
		logger.Fatal().Err(err).Str("timeout", timeout).Msg("invalid PURPLEAIR_TIMEOUT")
	}

	client := purpleair.New(baseUrl, purpleair.WithTimeout(requestTimeout))
	app := application.New(client)

	r := router.SetupRouter(chi.NewRouter(), app, logger)
	go func() {
		if err := r.Start(servicePort); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	bot, err := discord.New(ctx, discordToken, app)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create discord bot")
	}

	if err = bot.Open(); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to discord")
	}
	defer bot.Close()

	logger.Info().Msg("bot is now running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("shutting down")
}
