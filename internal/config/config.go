// Package config holds the credential bundle and the moderation policy
// constants. Credentials come from the environment (optionally via a .env
// file loaded in cmd/main.go); policy values are compile-time constants.
package config

import (
	"fmt"
	"os"
)

// Config is the credential bundle required to start the bot.
type Config struct {
	DiscordToken   string
	PerspectiveKey string
	ClaimBusterKey string
	SummaryKey     string // optional; summaries are skipped when empty

	// GroupName is the base name of the monitored channel; the moderation
	// channel is expected to be named "<GroupName>-mod".
	GroupName string

	// Admin API
	APIAddr   string
	AdminKey  string
	JWTSecret string
}

// Load reads the configuration from the environment. A missing platform
// token or signal-service key is a fatal configuration error.
func Load() (*Config, error) {
	cfg := &Config{
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		PerspectiveKey: os.Getenv("PERSPECTIVE_API_KEY"),
		ClaimBusterKey: os.Getenv("CLAIMBUSTER_API_KEY"),
		SummaryKey:     os.Getenv("SMMRY_API_KEY"),
		GroupName:      os.Getenv("GROUP_NAME"),
		APIAddr:        os.Getenv("API_ADDR"),
		AdminKey:       os.Getenv("ADMIN_KEY"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
	}

	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is not set")
	}
	if cfg.PerspectiveKey == "" {
		return nil, fmt.Errorf("PERSPECTIVE_API_KEY is not set")
	}
	if cfg.ClaimBusterKey == "" {
		return nil, fmt.Errorf("CLAIMBUSTER_API_KEY is not set")
	}
	if cfg.GroupName == "" {
		return nil, fmt.Errorf("GROUP_NAME is not set")
	}
	if cfg.APIAddr == "" {
		cfg.APIAddr = ":8080"
	}
	if cfg.AdminKey == "" {
		return nil, fmt.Errorf("ADMIN_KEY is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	return cfg, nil
}

// ModChannelName returns the moderation channel name for the configured group.
func (c *Config) ModChannelName() string {
	return c.GroupName + "-mod"
}
