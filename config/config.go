package config

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/viant/nxscript/lexer"
	"gopkg.in/yaml.v3"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. NXSCRIPT_WORKERS
	EnvPrefix = "NXSCRIPT_"
	// DefaultEnvFile is read when present and no env files are given
	DefaultEnvFile = ".env"

	FormatYAML   = "yaml"
	FormatSQLite = "sqlite"

	maxIndent = 16
)

type (
	// Config holds analysis settings
	Config struct {
		Workers    int              `yaml:"workers" toml:"workers"` // 0 selects number of CPUs
		Indent     int              `yaml:"indent" toml:"indent"`
		CacheSize  int              `yaml:"cacheSize" toml:"cache_size"`
		RefPattern RefPatternConfig `yaml:"refPattern" toml:"ref_pattern"`
		Output     OutputConfig     `yaml:"output" toml:"output"`
	}

	// RefPatternConfig overrides the raw table/field reference rule
	RefPatternConfig struct {
		Version string `yaml:"version" toml:"version"`
		Expr    string `yaml:"expr" toml:"expr"`
	}

	// OutputConfig selects where results are written
	OutputConfig struct {
		Format string `yaml:"format" toml:"format"` // yaml|sqlite
		URL    string `yaml:"url" toml:"url"`       // YAML destination base URL
		DSN    string `yaml:"dsn" toml:"dsn"`       // SQLite data source
	}
)

// Default returns default configuration
func Default() *Config {
	return &Config{
		Indent:     4,
		CacheSize:  1024,
		RefPattern: RefPatternConfig{Version: "v1", Expr: lexer.RefPatternV1},
		Output:     OutputConfig{Format: FormatYAML, URL: "output", DSN: "nxscript.db"},
	}
}

// Load reads configuration from path (YAML or TOML by extension, empty path for defaults),
// applies NXSCRIPT_* overrides from the environment and env files, then validates it
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err = cfg.decode(path, data); err != nil {
			return nil, err
		}
	}
	env, err := readEnv(envFiles)
	if err != nil {
		return nil, err
	}
	if err = cfg.applyEnv(env); err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(path string, data []byte) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to parse config %v: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return fmt.Errorf("failed to parse config %v: %w", path, err)
		}
		if unknown := md.Undecoded(); len(unknown) > 0 {
			keys := make([]string, len(unknown))
			for i, k := range unknown {
				keys[i] = k.String()
			}
			return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
		}
	default:
		return fmt.Errorf("unsupported config format: %q", ext)
	}
	return nil
}

// readEnv reads env files; the default .env file is optional
func readEnv(files []string) (map[string]string, error) {
	if len(files) == 0 {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			return map[string]string{}, nil
		}
		files = []string{DefaultEnvFile}
	}
	env, err := godotenv.Read(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to read env files: %w", err)
	}
	return env, nil
}

func (c *Config) applyEnv(files map[string]string) error {
	lookup := func(name string) (string, bool) {
		if value, ok := os.LookupEnv(EnvPrefix + name); ok {
			return value, true
		}
		value, ok := files[EnvPrefix+name]
		return value, ok
	}
	for name, target := range map[string]*int{"WORKERS": &c.Workers, "INDENT": &c.Indent, "CACHE_SIZE": &c.CacheSize} {
		value, ok := lookup(name)
		if !ok {
			continue
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid %v%v: %w", EnvPrefix, name, err)
		}
		*target = parsed
	}
	for name, target := range map[string]*string{
		"REF_PATTERN":         &c.RefPattern.Expr,
		"REF_PATTERN_VERSION": &c.RefPattern.Version,
		"OUTPUT_FORMAT":       &c.Output.Format,
		"OUTPUT_URL":          &c.Output.URL,
		"STORE_DSN":           &c.Output.DSN,
	} {
		if value, ok := lookup(name); ok {
			*target = strings.TrimSpace(value)
		}
	}
	return nil
}

// Validate checks configuration values
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative: %v", c.Workers)
	}
	if c.Indent < 0 || c.Indent > maxIndent {
		return fmt.Errorf("indent must be between 0 and %v: %v", maxIndent, c.Indent)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cacheSize must not be negative: %v", c.CacheSize)
	}
	if _, err := c.Pattern(); err != nil {
		return err
	}
	switch c.Output.Format {
	case FormatYAML, FormatSQLite:
	default:
		return fmt.Errorf("output format must be one of: %v, %v", FormatYAML, FormatSQLite)
	}
	return nil
}

// Pattern returns the configured raw reference rule, the v1 rule when no expression is set
func (c *Config) Pattern() (lexer.RefPattern, error) {
	if c.RefPattern.Expr == "" {
		return lexer.DefaultRefPattern(), nil
	}
	version := c.RefPattern.Version
	if version == "" {
		version = "custom"
	}
	return lexer.NewRefPattern(version, c.RefPattern.Expr)
}
