// Package config loads benchmark configuration from HCL files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/edenlum/PokerLLM/internal/session"
)

// Config is the full contents of a configuration file: match settings
// plus the competitors (models and baseline bots) to seat.
type Config struct {
	Match  MatchSettings  `hcl:"match,block"`
	Store  *StoreSettings `hcl:"store,block"`
	Models []ModelConfig  `hcl:"model,block"`
	Bots   []BotConfig    `hcl:"bot,block"`
}

// MatchSettings contains the session-level parameters.
type MatchSettings struct {
	MaxHands      int    `hcl:"max_hands,optional"`
	StartingStack int    `hcl:"starting_stack,optional"`
	SmallBlind    int    `hcl:"small_blind,optional"`
	BigBlind      int    `hcl:"big_blind,optional"`
	Seed          int64  `hcl:"seed,optional"`
	Parallelism   int    `hcl:"parallelism,optional"`
	LogLevel      string `hcl:"log_level,optional"`
}

// StoreSettings configures result persistence.
type StoreSettings struct {
	Path string `hcl:"path"`
}

// ModelConfig defines one model-backed competitor.
type ModelConfig struct {
	Name           string  `hcl:"name,label"`
	BaseURL        string  `hcl:"base_url"`
	Model          string  `hcl:"model"`
	APIKeyEnv      string  `hcl:"api_key_env,optional"`
	Temperature    float64 `hcl:"temperature,optional"`
	MaxTokens      int     `hcl:"max_tokens,optional"`
	TimeoutSeconds int     `hcl:"timeout_seconds,optional"`
}

// APIKey resolves the model's API key from the environment.
func (m ModelConfig) APIKey() string {
	env := m.APIKeyEnv
	if env == "" {
		env = "OPENAI_API_KEY"
	}
	return os.Getenv(env)
}

// Timeout returns the per-request timeout.
func (m ModelConfig) Timeout() time.Duration {
	if m.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// BotConfig defines one baseline bot competitor.
type BotConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy"`
	Seed     int64  `hcl:"seed,optional"`
}

// Default returns the configuration used when no file is present: a
// standard match with two baseline bots and no persistence.
func Default() *Config {
	return &Config{
		Match: MatchSettings{
			MaxHands:      100,
			StartingStack: 1000,
			SmallBlind:    5,
			BigBlind:      10,
			Parallelism:   4,
			LogLevel:      "info",
		},
		Bots: []BotConfig{
			{Name: "caller", Strategy: "call"},
			{Name: "random", Strategy: "rand", Seed: 1},
		},
	}
}

// Load reads an HCL configuration file. A missing file yields the
// defaults rather than an error.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Match.MaxHands == 0 {
		cfg.Match.MaxHands = def.Match.MaxHands
	}
	if cfg.Match.StartingStack == 0 {
		cfg.Match.StartingStack = def.Match.StartingStack
	}
	if cfg.Match.SmallBlind == 0 {
		cfg.Match.SmallBlind = def.Match.SmallBlind
	}
	if cfg.Match.BigBlind == 0 {
		cfg.Match.BigBlind = def.Match.BigBlind
	}
	if cfg.Match.Parallelism == 0 {
		cfg.Match.Parallelism = def.Match.Parallelism
	}
	if cfg.Match.LogLevel == "" {
		cfg.Match.LogLevel = def.Match.LogLevel
	}
}

// Validate checks the loaded configuration for contradictions.
func (c *Config) Validate() error {
	if c.Match.MaxHands <= 0 {
		return fmt.Errorf("max_hands must be positive")
	}
	if c.Match.SmallBlind <= 0 {
		return fmt.Errorf("small_blind must be positive")
	}
	if c.Match.BigBlind <= c.Match.SmallBlind {
		return fmt.Errorf("big_blind must be greater than small_blind")
	}
	if c.Match.StartingStack < c.Match.BigBlind {
		return fmt.Errorf("starting_stack must cover at least one big blind")
	}

	names := make(map[string]bool)
	for _, m := range c.Models {
		if m.BaseURL == "" {
			return fmt.Errorf("model %s: base_url is required", m.Name)
		}
		if m.Model == "" {
			return fmt.Errorf("model %s: model is required", m.Name)
		}
		if names[m.Name] {
			return fmt.Errorf("duplicate competitor name %s", m.Name)
		}
		names[m.Name] = true
	}

	validStrategies := map[string]bool{
		"call": true,
		"rand": true,
	}
	for _, b := range c.Bots {
		if !validStrategies[b.Strategy] {
			return fmt.Errorf("bot %s: invalid strategy %s", b.Name, b.Strategy)
		}
		if names[b.Name] {
			return fmt.Errorf("duplicate competitor name %s", b.Name)
		}
		names[b.Name] = true
	}

	if c.Store != nil && c.Store.Path == "" {
		return fmt.Errorf("store: path is required")
	}
	return nil
}

// SessionConfig converts the match settings into a session
// configuration.
func (c *Config) SessionConfig() session.Config {
	return session.Config{
		MaxHands:      c.Match.MaxHands,
		StartingStack: c.Match.StartingStack,
		SmallBlind:    c.Match.SmallBlind,
		BigBlind:      c.Match.BigBlind,
		Seed:          c.Match.Seed,
	}
}
