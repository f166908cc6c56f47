package config

import (
	"fmt"
	"strings"
)

type Config struct {
	Env              string
	DiscordToken     string
	DiscordGuildID   string
	MarketBaseURL    string
	MarketAuthToken  string
	MarketTimeoutSec int
	SaveDelayMS      int
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	if !strings.HasPrefix(c.MarketBaseURL, "http://") && !strings.HasPrefix(c.MarketBaseURL, "https://") {
		return fmt.Errorf("MARKET_BASE_URL must start with http:// or https://, got %q", c.MarketBaseURL)
	}
	if c.MarketTimeoutSec <= 0 {
		return fmt.Errorf("MARKET_TIMEOUT_SEC must be positive, got %d", c.MarketTimeoutSec)
	}
	if c.SaveDelayMS < 0 {
		return fmt.Errorf("SAVE_DELAY_MS must not be negative, got %d", c.SaveDelayMS)
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "DISCORD_TOKEN", value: c.DiscordToken},
		{name: "DISCORD_GUILD_ID", value: c.DiscordGuildID},
		{name: "MARKET_BASE_URL", value: c.MarketBaseURL},
		{name: "MARKET_AUTH_TOKEN", value: c.MarketAuthToken},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
