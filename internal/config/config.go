package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/rohmanhakim/atcoder-cli/pkg/fileutil"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAtCoderURL  = "https://atcoder.jp"
	DefaultProblemsURL = "https://kenkoooo.com/atcoder"
)

var supportedLanguages = map[string]struct{}{
	"en": {},
	"ja": {},
}

type Config struct {
	//===============
	// Endpoints
	//===============
	// Root of the contest site; login, contest and submission pages hang off it
	atcoderURL string
	// Root of the mirror serving resources/contests.json
	problemsURL string

	//===============
	// Statements
	//===============
	// Accepted statement languages in order of preference ("en", "ja")
	languages []string

	//===============
	// Cache
	//===============
	// Bound of the in-memory tier; nil disables the tier, 0 means unbounded
	maxMemoryEntries *int
	// Directory of the filesystem tier; empty disables the tier
	cacheDirectory string
	// Directory of the LevelDB tier; empty disables the tier
	levelDBDirectory string

	//===============
	// Fetch
	//===============
	// Maximum time of a single request including redirects
	timeout time.Duration
	// User agent that will be used in the request header. In raw string
	userAgent string

	//===============
	// Session
	//===============
	// File holding the persisted cookie jar; empty lets the CLI pick its default
	sessionFile string
}

type configDTO struct {
	AtCoderURL         string   `json:"atcoderUrl,omitempty" yaml:"atcoderUrl,omitempty"`
	ProblemsURL        string   `json:"problemsUrl,omitempty" yaml:"problemsUrl,omitempty"`
	Languages          []string `json:"languages,omitempty" yaml:"languages,omitempty"`
	MaxMemoryEntries   *int     `json:"maxMemoryEntries,omitempty" yaml:"maxMemoryEntries,omitempty"`
	DisableMemoryCache bool     `json:"disableMemoryCache,omitempty" yaml:"disableMemoryCache,omitempty"`
	CacheDirectory     string   `json:"cacheDirectory,omitempty" yaml:"cacheDirectory,omitempty"`
	LevelDBDirectory   string   `json:"leveldbDirectory,omitempty" yaml:"leveldbDirectory,omitempty"`
	Timeout            string   `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	UserAgent          string   `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	SessionFile        string   `json:"sessionFile,omitempty" yaml:"sessionFile,omitempty"`
}

func defaultDTO() configDTO {
	entries := 0
	return configDTO{
		AtCoderURL:       DefaultAtCoderURL,
		ProblemsURL:      DefaultProblemsURL,
		Languages:        []string{"en"},
		MaxMemoryEntries: &entries,
		Timeout:          "30s",
		UserAgent:        "atcoder-cli/1.0",
	}
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	// Fill every field the file left empty from the defaults
	if err := mergo.Merge(&dto, defaultDTO()); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}

	timeout, err := time.ParseDuration(dto.Timeout)
	if err != nil {
		return Config{}, fmt.Errorf("%w: timeout: %s", ErrInvalidConfig, err.Error())
	}

	cfg := WithDefault().
		WithAtCoderURL(dto.AtCoderURL).
		WithProblemsURL(dto.ProblemsURL).
		WithLanguages(dto.Languages).
		WithMaxMemoryEntries(*dto.MaxMemoryEntries).
		WithCacheDirectory(dto.CacheDirectory).
		WithLevelDBDirectory(dto.LevelDBDirectory).
		WithTimeout(timeout).
		WithUserAgent(dto.UserAgent).
		WithSessionFile(dto.SessionFile)
	if dto.DisableMemoryCache {
		cfg.WithoutMemoryCache()
	}
	return cfg.Build()
}

// WithConfigFile reads a JSON or YAML file, chosen by extension, over the defaults.
func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	cfgDTO := configDTO{}

	switch strings.ToLower(fileutil.GetFileExtension(path)) {
	case "json":
		err = json.Unmarshal(configContent, &cfgDTO)
	case "yaml", "yml":
		err = yaml.Unmarshal(configContent, &cfgDTO)
	default:
		err = fmt.Errorf("unsupported config format %q", path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// WithDefault creates a new Config with default values for all fields.
func WithDefault() *Config {
	dto := defaultDTO()
	defaultConfig := Config{
		atcoderURL:       dto.AtCoderURL,
		problemsURL:      dto.ProblemsURL,
		languages:        dto.Languages,
		maxMemoryEntries: dto.MaxMemoryEntries,
		timeout:          30 * time.Second,
		userAgent:        dto.UserAgent,
	}
	return &defaultConfig
}

func (c *Config) WithAtCoderURL(rawURL string) *Config {
	c.atcoderURL = strings.TrimRight(rawURL, "/")
	return c
}

func (c *Config) WithProblemsURL(rawURL string) *Config {
	c.problemsURL = strings.TrimRight(rawURL, "/")
	return c
}

func (c *Config) WithLanguages(languages []string) *Config {
	c.languages = languages
	return c
}

func (c *Config) WithMaxMemoryEntries(entries int) *Config {
	c.maxMemoryEntries = &entries
	return c
}

func (c *Config) WithoutMemoryCache() *Config {
	c.maxMemoryEntries = nil
	return c
}

func (c *Config) WithCacheDirectory(dir string) *Config {
	c.cacheDirectory = dir
	return c
}

func (c *Config) WithLevelDBDirectory(dir string) *Config {
	c.levelDBDirectory = dir
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithSessionFile(path string) *Config {
	c.sessionFile = path
	return c
}

func (c *Config) Build() (Config, error) {
	for name, raw := range map[string]string{"atcoderUrl": c.atcoderURL, "problemsUrl": c.problemsURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return Config{}, fmt.Errorf("%w: %s must be an absolute URL, got %q", ErrInvalidConfig, name, raw)
		}
	}
	if len(c.languages) == 0 {
		return Config{}, fmt.Errorf("%w: languages cannot be empty", ErrInvalidConfig)
	}
	for _, lang := range c.languages {
		if _, ok := supportedLanguages[lang]; !ok {
			return Config{}, fmt.Errorf("%w: unsupported language %q", ErrInvalidConfig, lang)
		}
	}
	if c.maxMemoryEntries != nil && *c.maxMemoryEntries < 0 {
		return Config{}, fmt.Errorf("%w: maxMemoryEntries cannot be negative", ErrInvalidConfig)
	}
	if c.timeout < 0 {
		return Config{}, fmt.Errorf("%w: timeout cannot be negative", ErrInvalidConfig)
	}
	return *c, nil
}

func (c Config) AtCoderURL() string {
	return c.atcoderURL
}

func (c Config) ProblemsURL() string {
	return c.problemsURL
}

func (c Config) Languages() []string {
	languages := make([]string, len(c.languages))
	copy(languages, c.languages)
	return languages
}

// MaxMemoryEntries returns nil when the memory tier is disabled.
func (c Config) MaxMemoryEntries() *int {
	if c.maxMemoryEntries == nil {
		return nil
	}
	entries := *c.maxMemoryEntries
	return &entries
}

func (c Config) CacheDirectory() string {
	return c.cacheDirectory
}

func (c Config) LevelDBDirectory() string {
	return c.levelDBDirectory
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) SessionFile() string {
	return c.sessionFile
}
