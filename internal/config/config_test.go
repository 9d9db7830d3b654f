package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:   HTTPConfig{Port: 8080},
		Corpus: CorpusConfig{Path: "data/faqs.json"},
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingCorpusPath(t *testing.T) {
	cfg := validConfig()
	cfg.Corpus.Path = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing corpus path")
	}
}

func TestValidate_InvalidNormalizerStrategy(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()
	cfg.Normalizer.Strategy = "porter"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid normalizer strategy")
	}
	expected := `normalizer.strategy must be "auto", "lemma" or "rules", got "porter"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_ValidNormalizerStrategies(t *testing.T) {
	for _, strategy := range []string{"auto", "lemma", "rules"} {
		t.Run("strategy="+strategy, func(t *testing.T) {
			cfg := validConfig()
			cfg.ApplyDefaults()
			cfg.Normalizer.Strategy = strategy

			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for valid strategy %q: %v", strategy, err)
			}
		})
	}
}

func TestValidate_HistoryBackendNeedsAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()
	cfg.History.Backend = "valkey"
	cfg.History.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for valkey backend without addrs")
	}

	cfg.History.Addrs = []string{"localhost:6379"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error with addrs set: %v", err)
	}
}

func TestValidate_UnknownHistoryBackend(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()
	cfg.History.Backend = "postgres"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown history backend")
	}
}

func TestValidate_ThresholdAboveOne(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()
	cfg.Matcher.Threshold = 1.5

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for threshold above 1")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Matcher.Threshold != 0.15 {
		t.Errorf("expected Threshold=0.15, got %v", cfg.Matcher.Threshold)
	}
	if cfg.Matcher.TopK != 3 {
		t.Errorf("expected TopK=3, got %d", cfg.Matcher.TopK)
	}
	if cfg.Matcher.MaxVocabularySize != 5000 {
		t.Errorf("expected MaxVocabularySize=5000, got %d", cfg.Matcher.MaxVocabularySize)
	}
	if cfg.Matcher.MinDocFreq != 1 {
		t.Errorf("expected MinDocFreq=1, got %d", cfg.Matcher.MinDocFreq)
	}
	if cfg.Matcher.MaxDocFreqRatio != 0.95 {
		t.Errorf("expected MaxDocFreqRatio=0.95, got %v", cfg.Matcher.MaxDocFreqRatio)
	}
	if cfg.Normalizer.Strategy != "auto" {
		t.Errorf("expected Strategy=auto, got %q", cfg.Normalizer.Strategy)
	}
	if cfg.History.Backend != "memory" {
		t.Errorf("expected Backend=memory, got %q", cfg.History.Backend)
	}
	if cfg.History.Key != "faqdex:history" {
		t.Errorf("expected Key='faqdex:history', got %q", cfg.History.Key)
	}
	if cfg.History.Cap != 1000 {
		t.Errorf("expected Cap=1000, got %d", cfg.History.Cap)
	}
	if cfg.History.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.History.ReadinessTimeout)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Matcher: MatcherConfig{Threshold: 0.4, TopK: 10, MaxVocabularySize: 100},
		History: HistoryConfig{Backend: "valkey", Cap: 50, Key: "custom:log"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Matcher.Threshold != 0.4 {
		t.Errorf("expected Threshold=0.4, got %v", cfg.Matcher.Threshold)
	}
	if cfg.Matcher.TopK != 10 {
		t.Errorf("expected TopK=10, got %d", cfg.Matcher.TopK)
	}
	if cfg.History.Backend != "valkey" {
		t.Errorf("expected Backend=valkey, got %q", cfg.History.Backend)
	}
	if cfg.History.Cap != 50 {
		t.Errorf("expected Cap=50, got %d", cfg.History.Cap)
	}
	if cfg.History.Key != "custom:log" {
		t.Errorf("expected Key='custom:log', got %q", cfg.History.Key)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("FAQDEX_TEST_PORT", "9090")

	in := []byte("port: ${FAQDEX_TEST_PORT}\npath: ${FAQDEX_TEST_MISSING:-data/faqs.json}\nkey: ${FAQDEX_TEST_UNSET}")
	out := string(expandEnvVars(in))

	if !strings.Contains(out, "port: 9090") {
		t.Errorf("expected env substitution, got %q", out)
	}
	if !strings.Contains(out, "path: data/faqs.json") {
		t.Errorf("expected default substitution, got %q", out)
	}
	if !strings.Contains(out, "key: \n") && !strings.HasSuffix(out, "key: ") {
		t.Errorf("expected empty substitution for unset var, got %q", out)
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port == 0 {
		t.Error("expected port to be set")
	}
	if cfg.Corpus.Path == "" {
		t.Error("expected corpus path to be set")
	}
	if cfg.History.Backend == "" {
		t.Error("expected history backend default")
	}
}

func TestLoad_MissingEnv(t *testing.T) {
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
