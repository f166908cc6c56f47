package config

import "testing"

func validConfig() *Config {
	return &Config{
		Env:              "development",
		DiscordToken:     "token",
		DiscordGuildID:   "guild",
		MarketBaseURL:    "https://market.example.com",
		MarketAuthToken:  "golden_key",
		MarketTimeoutSec: 20,
		SaveDelayMS:      700,
	}
}

func TestValidate_Valid(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when required fields are missing")
	}
}

func TestValidate_BadBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.MarketBaseURL = "market.example.com"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for base url without scheme")
	}
}

func TestValidate_InvalidTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.MarketTimeoutSec = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive timeout")
	}
}

func TestValidate_NegativeSaveDelay(t *testing.T) {
	cfg := validConfig()
	cfg.SaveDelayMS = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative save delay")
	}
}

func TestIsDevelopment(t *testing.T) {
	cfg := &Config{Env: "development"}
	if !cfg.IsDevelopment() {
		t.Fatal("expected development mode")
	}
	cfg.Env = "production"
	if cfg.IsDevelopment() {
		t.Fatal("expected non-development mode")
	}
}
