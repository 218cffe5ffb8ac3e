package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Gemini     GeminiConfig     `koanf:"gemini"`
	Generation GenerationConfig `koanf:"generation"`
	Storage    StorageConfig    `koanf:"storage"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

// GeminiConfig selects the backend credential and model identities. The
// API key supports ${VAR} substitution so config files never carry secrets.
type GeminiConfig struct {
	APIKey      string `koanf:"api_key"`
	TextModel   string `koanf:"text_model"`
	ImageModel  string `koanf:"image_model"`
	VideoModel  string `koanf:"video_model"`
	SpeechModel string `koanf:"speech_model"`
	Voice       string `koanf:"voice"`
}

// GenerationConfig tunes the strategies.
type GenerationConfig struct {
	Temperature float32 `koanf:"temperature"`
	// PollInterval is the delay between video job status checks.
	PollInterval time.Duration `koanf:"poll_interval"`
	// MaxPolls bounds the video poll loop; exceeding it yields a
	// timeout-classified error envelope.
	MaxPolls int `koanf:"max_polls"`
	// PromptTokenBudget rejects oversized prompts before dispatch.
	// Zero disables the guard.
	PromptTokenBudget int `koanf:"prompt_token_budget"`
}

type StorageConfig struct {
	Type   string       `koanf:"type"` // memory, sqlite
	SQLite SQLiteConfig `koanf:"sqlite"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads config.yaml when present, then lets NEXUS_ environment
// variables override it (NEXUS_SERVER__PORT -> server.port).
func Load() (*Config, error) {
	return LoadFile("config.yaml")
}

// LoadFile loads configuration from the given yaml file path.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		// File not found is OK, we'll use env vars
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if err := k.Load(env.Provider("NEXUS_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "NEXUS_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	applyDefaults(k)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	cfg.Gemini.APIKey = substituteEnvVars(cfg.Gemini.APIKey)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(k *koanf.Koanf) {
	defaults := map[string]any{
		"server.port":                   8080,
		"gemini.text_model":             "gemini-2.5-flash",
		"gemini.image_model":            "imagen-3.0-generate-001",
		"gemini.video_model":            "veo-3.1-fast-generate-preview",
		"gemini.speech_model":           "gemini-2.5-flash-preview-tts",
		"gemini.voice":                  "Kore",
		"generation.temperature":        0.7,
		"generation.poll_interval":      "5s",
		"generation.max_polls":          60,
		"generation.prompt_token_budget": 0,
		"storage.type":                  "memory",
		"storage.sqlite.path":           "./data/nexus.db",
	}
	for key, val := range defaults {
		if !k.Exists(key) {
			k.Set(key, val)
		}
	}
}

func (c *Config) validate() error {
	switch c.Storage.Type {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	if c.Generation.PollInterval <= 0 {
		return fmt.Errorf("generation.poll_interval must be positive, got %s", c.Generation.PollInterval)
	}
	if c.Generation.MaxPolls <= 0 {
		return fmt.Errorf("generation.max_polls must be positive, got %d", c.Generation.MaxPolls)
	}
	return nil
}

func substituteEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
