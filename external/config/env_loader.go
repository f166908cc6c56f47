package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	internalconfig "github.com/rentlab/lotclone/internal/config"
)

type envConfig struct {
	Env              string `env:"ENV" envDefault:"production"`
	DiscordToken     string `env:"DISCORD_TOKEN,required"`
	DiscordGuildID   string `env:"DISCORD_GUILD_ID,required"`
	MarketBaseURL    string `env:"MARKET_BASE_URL,required"`
	MarketAuthToken  string `env:"MARKET_AUTH_TOKEN,required"`
	MarketTimeoutSec int    `env:"MARKET_TIMEOUT_SEC" envDefault:"20"`
	SaveDelayMS      int    `env:"SAVE_DELAY_MS" envDefault:"700"`
}

func Load() (*internalconfig.Config, error) {
	// A local .env is optional, deployments set the environment directly.
	_ = godotenv.Load()

	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:              raw.Env,
		DiscordToken:     raw.DiscordToken,
		DiscordGuildID:   raw.DiscordGuildID,
		MarketBaseURL:    raw.MarketBaseURL,
		MarketAuthToken:  raw.MarketAuthToken,
		MarketTimeoutSec: raw.MarketTimeoutSec,
		SaveDelayMS:      raw.SaveDelayMS,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
