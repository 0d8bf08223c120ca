package cmd_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rohmanhakim/atcoder-cli/internal/build"
	cmd "github.com/rohmanhakim/atcoder-cli/internal/cli"
	"github.com/rohmanhakim/atcoder-cli/internal/client"
	"github.com/rohmanhakim/atcoder-cli/internal/config"
)

// TestInitConfigNoFlags tests that InitConfigWithError returns the defaults when no flag is set
func TestInitConfigNoFlags(t *testing.T) {
	cmd.ResetFlags()

	cfg, err := cmd.InitConfigWithError()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	defaultCfg, err := config.WithDefault().Build()
	if err != nil {
		t.Fatalf("should not have any error, got %v", err)
	}
	if cfg.AtCoderURL() != defaultCfg.AtCoderURL() {
		t.Errorf("Expected AtCoderURL %s, got %s", defaultCfg.AtCoderURL(), cfg.AtCoderURL())
	}
	if cfg.ProblemsURL() != defaultCfg.ProblemsURL() {
		t.Errorf("Expected ProblemsURL %s, got %s", defaultCfg.ProblemsURL(), cfg.ProblemsURL())
	}
	if cfg.Timeout() != defaultCfg.Timeout() {
		t.Errorf("Expected Timeout %v, got %v", defaultCfg.Timeout(), cfg.Timeout())
	}
	if cfg.MaxMemoryEntries() == nil || *cfg.MaxMemoryEntries() != 0 {
		t.Errorf("Expected an unbounded memory tier, got %v", cfg.MaxMemoryEntries())
	}
	if cfg.UserAgent() != build.UserAgent() {
		t.Errorf("Expected UserAgent %s, got %s", build.UserAgent(), cfg.UserAgent())
	}
}

// TestInitConfigWithFlags tests that every flag overrides its default
func TestInitConfigWithFlags(t *testing.T) {
	cmd.ResetFlags()
	cmd.SetAtCoderURLForTest("http://localhost:8080/")
	cmd.SetProblemsURLForTest("http://localhost:9090")
	cmd.SetLanguagesForTest([]string{"ja", "en"})
	cmd.SetMaxMemoryEntriesForTest(16)
	cmd.SetCacheDirectoryForTest("/tmp/atcoder-cache")
	cmd.SetLevelDBDirectoryForTest("/tmp/atcoder-db")
	cmd.SetUserAgentForTest("test-agent")
	cmd.SetTimeoutForTest(5 * time.Second)
	cmd.SetSessionFileForTest("/tmp/session.json")

	cfg, err := cmd.InitConfigWithError()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.AtCoderURL() != "http://localhost:8080" {
		t.Errorf("Expected AtCoderURL without trailing slash, got %s", cfg.AtCoderURL())
	}
	if cfg.ProblemsURL() != "http://localhost:9090" {
		t.Errorf("Expected ProblemsURL http://localhost:9090, got %s", cfg.ProblemsURL())
	}
	if got := cfg.Languages(); len(got) != 2 || got[0] != "ja" || got[1] != "en" {
		t.Errorf("Expected Languages [ja en], got %v", got)
	}
	if cfg.MaxMemoryEntries() == nil || *cfg.MaxMemoryEntries() != 16 {
		t.Errorf("Expected MaxMemoryEntries 16, got %v", cfg.MaxMemoryEntries())
	}
	if cfg.CacheDirectory() != "/tmp/atcoder-cache" {
		t.Errorf("Expected CacheDirectory /tmp/atcoder-cache, got %s", cfg.CacheDirectory())
	}
	if cfg.LevelDBDirectory() != "/tmp/atcoder-db" {
		t.Errorf("Expected LevelDBDirectory /tmp/atcoder-db, got %s", cfg.LevelDBDirectory())
	}
	if cfg.UserAgent() != "test-agent" {
		t.Errorf("Expected UserAgent test-agent, got %s", cfg.UserAgent())
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("Expected Timeout 5s, got %v", cfg.Timeout())
	}
	if cfg.SessionFile() != "/tmp/session.json" {
		t.Errorf("Expected SessionFile /tmp/session.json, got %s", cfg.SessionFile())
	}
}

// TestInitConfigWithMaxMemoryEntries tests the memory tier flags
func TestInitConfigWithMaxMemoryEntries(t *testing.T) {
	tests := []struct {
		name     string
		entries  int
		disabled bool
		want     *int
	}{
		{"Unset keeps the default", -1, false, intPtr(0)},
		{"Zero is unbounded", 0, false, intPtr(0)},
		{"Positive bound", 100, false, intPtr(100)},
		{"Disabled", -1, true, nil},
		{"Disabled wins over a bound", 100, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd.ResetFlags()
			cmd.SetMaxMemoryEntriesForTest(tt.entries)
			cmd.SetNoMemoryCacheForTest(tt.disabled)

			cfg, err := cmd.InitConfigWithError()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			got := cfg.MaxMemoryEntries()
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("Expected no memory tier, got %d", *got)
			case tt.want != nil && got == nil:
				t.Errorf("Expected MaxMemoryEntries %d, got nil", *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("Expected MaxMemoryEntries %d, got %d", *tt.want, *got)
			}
		})
	}
}

// TestInitConfigWithInvalidLanguage tests that unsupported languages are rejected
func TestInitConfigWithInvalidLanguage(t *testing.T) {
	cmd.ResetFlags()
	cmd.SetLanguagesForTest([]string{"fr"})

	_, err := cmd.InitConfigWithError()
	if err == nil {
		t.Fatal("Expected error for unsupported language, got nil")
	}
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got: %v", err)
	}
}

// TestInitConfigWithInvalidURL tests that a relative site URL is rejected
func TestInitConfigWithInvalidURL(t *testing.T) {
	cmd.ResetFlags()
	cmd.SetAtCoderURLForTest("atcoder.jp")

	_, err := cmd.InitConfigWithError()
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got: %v", err)
	}
}

// TestInitConfigWithConfigFile tests loading JSON and YAML files
func TestInitConfigWithConfigFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "JSON",
			file:    "config.json",
			content: `{"atcoderUrl": "http://localhost:1234", "languages": ["ja"], "timeout": "10s", "cacheDirectory": "/tmp/pages"}`,
		},
		{
			name: "YAML",
			file: "config.yaml",
			content: "atcoderUrl: http://localhost:1234\n" +
				"languages:\n  - ja\n" +
				"timeout: 10s\n" +
				"cacheDirectory: /tmp/pages\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd.ResetFlags()
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write config file: %v", err)
			}
			cmd.SetConfigFileForTest(path)

			cfg, err := cmd.InitConfigWithError()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if cfg.AtCoderURL() != "http://localhost:1234" {
				t.Errorf("Expected AtCoderURL from file, got %s", cfg.AtCoderURL())
			}
			if got := cfg.Languages(); len(got) != 1 || got[0] != "ja" {
				t.Errorf("Expected Languages [ja], got %v", got)
			}
			if cfg.Timeout() != 10*time.Second {
				t.Errorf("Expected Timeout 10s, got %v", cfg.Timeout())
			}
			if cfg.CacheDirectory() != "/tmp/pages" {
				t.Errorf("Expected CacheDirectory /tmp/pages, got %s", cfg.CacheDirectory())
			}
			if cfg.ProblemsURL() != config.DefaultProblemsURL {
				t.Errorf("Expected the default ProblemsURL, got %s", cfg.ProblemsURL())
			}
		})
	}
}

// TestInitConfigFlagsOverrideConfigFile tests that flags win over file values
func TestInitConfigFlagsOverrideConfigFile(t *testing.T) {
	cmd.ResetFlags()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"atcoderUrl": "http://localhost:1234", "timeout": "10s"}`), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	cmd.SetConfigFileForTest(path)
	cmd.SetTimeoutForTest(3 * time.Second)

	cfg, err := cmd.InitConfigWithError()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.AtCoderURL() != "http://localhost:1234" {
		t.Errorf("Expected AtCoderURL from file, got %s", cfg.AtCoderURL())
	}
	if cfg.Timeout() != 3*time.Second {
		t.Errorf("Expected Timeout from flag, got %v", cfg.Timeout())
	}
}

// TestInitConfigWithMissingConfigFile tests the error of a missing file
func TestInitConfigWithMissingConfigFile(t *testing.T) {
	cmd.ResetFlags()
	cmd.SetConfigFileForTest(filepath.Join(t.TempDir(), "missing.json"))

	_, err := cmd.InitConfigWithError()
	if !errors.Is(err, config.ErrFileDoesNotExist) {
		t.Errorf("Expected ErrFileDoesNotExist, got: %v", err)
	}
}

func intPtr(v int) *int {
	return &v
}

// TestExitCode tests that retryable failures exit with 2
func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"plain error", errors.New("boom"), 1},
		{"fatal transport error", &client.TransportError{Message: "bad url", Retryable: false}, 1},
		{"retryable transport error", &client.TransportError{Message: "timeout", Retryable: true}, 2},
		{"joined retryable error", errors.Join(&client.TransportError{Message: "timeout", Retryable: true}, nil), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cmd.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
