package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all ghrecap configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	GitHub GitHubConfig `yaml:"github"`
	Cache  CacheConfig  `yaml:"cache"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type GitHubConfig struct {
	RestURL    string `yaml:"rest_url"`
	GraphQLURL string `yaml:"graphql_url"`
	Token      string `yaml:"token"`
}

type CacheConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		GitHub: GitHubConfig{
			RestURL:    "https://api.github.com",
			GraphQLURL: "https://api.github.com/graphql",
		},
		Cache: CacheConfig{TTLSeconds: 60},
	}
}

// Load reads config from path, falling back to defaults when path is empty
// or the file does not exist. Environment variables win over file values.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GHRECAP_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("GITHUB_TOKEN")); v != "" {
		c.GitHub.Token = v
	}
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}
