package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

type DiscordConfig struct {
	Token         string   `json:"token" env:"MUSCLERHB_DISCORD_TOKEN"`
	AnnouncerRole string   `json:"announcer_role" env:"MUSCLERHB_DISCORD_ANNOUNCER_ROLE"`
	VerifyLink    string   `json:"verify_link" env:"MUSCLERHB_DISCORD_VERIFY_LINK"`
	LevelsLink    string   `json:"levels_link" env:"MUSCLERHB_DISCORD_LEVELS_LINK"`
	AllowFrom     []string `json:"allow_from" env:"MUSCLERHB_DISCORD_ALLOW_FROM"`
}

type MoralisConfig struct {
	APIKey         string `json:"api_key" env:"MUSCLERHB_MORALIS_API_KEY"`
	BaseURL        string `json:"base_url" env:"MUSCLERHB_MORALIS_BASE_URL"`
	Chain          string `json:"chain" env:"MUSCLERHB_MORALIS_CHAIN"`
	PageSize       int    `json:"page_size" env:"MUSCLERHB_MORALIS_PAGE_SIZE"`
	TimeoutSeconds int    `json:"timeout_seconds" env:"MUSCLERHB_MORALIS_TIMEOUT_SECONDS"`
}

type CollectionConfig struct {
	Contract         string `json:"contract" env:"MUSCLERHB_COLLECTION_CONTRACT"`
	Name             string `json:"name" env:"MUSCLERHB_COLLECTION_NAME"`
	IPFSGateway      string `json:"ipfs_gateway" env:"MUSCLERHB_COLLECTION_IPFS_GATEWAY"`
	PlaceholderImage string `json:"placeholder_image" env:"MUSCLERHB_COLLECTION_PLACEHOLDER_IMAGE"`
	OpenSeaBaseURL   string `json:"opensea_base_url" env:"MUSCLERHB_COLLECTION_OPENSEA_BASE_URL"`
}

type StorageConfig struct {
	Path string `json:"path" env:"MUSCLERHB_STORAGE_PATH"`
}

type RateLimitsConfig struct {
	CommandsPerMinute int `json:"commands_per_minute" env:"MUSCLERHB_RATE_LIMITS_COMMANDS_PER_MINUTE"` // 0 = unlimited
}

type LoggingConfig struct {
	Level string `json:"level" env:"MUSCLERHB_LOG_LEVEL"`
	File  string `json:"file" env:"MUSCLERHB_LOG_FILE"`
}

type Config struct {
	Discord    DiscordConfig    `json:"discord"`
	Moralis    MoralisConfig    `json:"moralis"`
	Collection CollectionConfig `json:"collection"`
	Storage    StorageConfig    `json:"storage"`
	RateLimits RateLimitsConfig `json:"rate_limits"`
	Logging    LoggingConfig    `json:"logging"`
}

func DefaultConfig() *Config {
	return &Config{
		Discord: DiscordConfig{
			AnnouncerRole: "ann",
		},
		Moralis: MoralisConfig{
			BaseURL:        "https://deep-index.moralis.io/api/v2.2",
			Chain:          "base",
			PageSize:       40,
			TimeoutSeconds: 15,
		},
		Collection: CollectionConfig{
			Contract:         "0xc38e2ae060440c9269cceb8c0ea8019a66ce8927",
			Name:             "CryptoPimps",
			IPFSGateway:      "https://ipfs.io/ipfs/",
			PlaceholderImage: "https://via.placeholder.com/300x300",
			OpenSeaBaseURL:   "https://opensea.io/assets/base",
		},
		Storage: StorageConfig{
			Path: "musclerhb.db",
		},
		RateLimits: RateLimitsConfig{
			CommandsPerMinute: 0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads path as JSON and applies environment overrides.
// A missing file is not an error; defaults plus environment apply.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate fails fast on options the bot cannot run without. Called once
// at startup; a command must never be the first place a missing secret
// is discovered.
func (c *Config) Validate() error {
	var errs []error
	if c.Discord.Token == "" {
		errs = append(errs, errors.New("discord token is required (MUSCLERHB_DISCORD_TOKEN)"))
	}
	if c.Moralis.APIKey == "" {
		errs = append(errs, errors.New("moralis api key is required (MUSCLERHB_MORALIS_API_KEY)"))
	}
	if c.Storage.Path == "" {
		errs = append(errs, errors.New("storage path is required (MUSCLERHB_STORAGE_PATH)"))
	}
	if c.Collection.Contract == "" {
		errs = append(errs, errors.New("collection contract is required"))
	}
	return errors.Join(errs...)
}

func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}
