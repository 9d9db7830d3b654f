package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the faqdex service configuration.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Corpus      CorpusConfig      `yaml:"corpus"`
	Matcher     MatcherConfig     `yaml:"matcher"`
	Normalizer  NormalizerConfig  `yaml:"normalizer"`
	History     HistoryConfig     `yaml:"history"`
	Suggestions SuggestionsConfig `yaml:"suggestions"`
	Auth        AuthConfig        `yaml:"auth"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CorpusConfig holds FAQ corpus settings.
type CorpusConfig struct {
	Path string `yaml:"path"`
}

// MatcherConfig holds similarity matching settings.
type MatcherConfig struct {
	Threshold         float64 `yaml:"threshold"`
	TopK              int     `yaml:"top_k"`
	MaxVocabularySize int     `yaml:"max_vocabulary_size"`
	MinDocFreq        int     `yaml:"min_doc_freq"`
	MaxDocFreqRatio   float64 `yaml:"max_doc_freq_ratio"`
}

// NormalizerConfig holds text normalization settings.
type NormalizerConfig struct {
	Strategy string `yaml:"strategy"` // auto, lemma, rules (default: auto)
}

// HistoryConfig holds conversation history settings.
type HistoryConfig struct {
	Backend          string   `yaml:"backend"` // memory, valkey, redis (default: memory)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	Key              string   `yaml:"key"`
	Cap              int      `yaml:"cap"`
	TTLSec           int      `yaml:"ttl_sec"` // 0 = no expiry
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SuggestionsConfig holds reply texts and popular-question weighting.
type SuggestionsConfig struct {
	EmptyPrompt string         `yaml:"empty_prompt"`
	Fallbacks   []string       `yaml:"fallbacks"`
	Popular     []WeightConfig `yaml:"popular"`
}

// WeightConfig is one category's share of the popular-question pick.
type WeightConfig struct {
	Category string `yaml:"category"`
	Count    int    `yaml:"count"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Matcher.Threshold <= 0 {
		c.Matcher.Threshold = 0.15
	}
	if c.Matcher.TopK <= 0 {
		c.Matcher.TopK = 3
	}
	if c.Matcher.MaxVocabularySize <= 0 {
		c.Matcher.MaxVocabularySize = 5000
	}
	if c.Matcher.MinDocFreq <= 0 {
		c.Matcher.MinDocFreq = 1
	}
	if c.Matcher.MaxDocFreqRatio <= 0 {
		c.Matcher.MaxDocFreqRatio = 0.95
	}
	if c.Normalizer.Strategy == "" {
		c.Normalizer.Strategy = "auto"
	}
	if c.History.Backend == "" {
		c.History.Backend = "memory"
	}
	if c.History.Key == "" {
		c.History.Key = "faqdex:history"
	}
	if c.History.Cap <= 0 {
		c.History.Cap = 1000
	}
	if c.History.ReadinessTimeout <= 0 {
		c.History.ReadinessTimeout = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Corpus.Path == "" {
		return fmt.Errorf("corpus.path is required")
	}
	if c.Matcher.Threshold > 1 {
		return fmt.Errorf("matcher.threshold must not exceed 1, got %v", c.Matcher.Threshold)
	}
	if c.Matcher.MaxDocFreqRatio > 1 {
		return fmt.Errorf("matcher.max_doc_freq_ratio must not exceed 1, got %v", c.Matcher.MaxDocFreqRatio)
	}
	switch c.Normalizer.Strategy {
	case "auto", "lemma", "rules":
		// ok
	default:
		return fmt.Errorf(
			"normalizer.strategy must be \"auto\", \"lemma\" or \"rules\", got %q",
			c.Normalizer.Strategy,
		)
	}
	switch c.History.Backend {
	case "memory":
		// ok
	case "valkey", "redis":
		if len(c.History.Addrs) == 0 {
			return fmt.Errorf("history.addrs is required for backend %q", c.History.Backend)
		}
	default:
		return fmt.Errorf(
			"history.backend must be \"memory\", \"valkey\" or \"redis\", got %q",
			c.History.Backend,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
