package cli

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/orizon-lang/csfront/internal/errors"
)

// DefaultConfigFile is the configuration file looked up in the working
// directory when no path is given.
const DefaultConfigFile = ".csfront.toml"

// Config is the csfront tool configuration. Command line flags override
// the values loaded from file.
type Config struct {
	LanguageVersion string      `toml:"language_version"`
	MaxErrors       int         `toml:"max_errors"`
	Color           string      `toml:"color"` // auto, always or never
	Verbose         bool        `toml:"verbose"`
	Debug           bool        `toml:"debug"`
	Watch           WatchConfig `toml:"watch"`
}

// WatchConfig holds the settings of the watch command.
type WatchConfig struct {
	Debounce   Duration `toml:"debounce"`
	Extensions []string `toml:"extensions"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig loads configuration from path. An empty path means
// DefaultConfigFile; a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}
	path = os.ExpandEnv(path)

	cfg := &Config{}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.InvalidConfig(path, "cannot decode", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.InvalidConfig(path, "unknown keys "+strings.Join(keys, ", "), nil)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.InvalidConfig(path, err.Error(), nil)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LanguageVersion == "" {
		c.LanguageVersion = "2.0"
	}
	if c.MaxErrors == 0 {
		c.MaxErrors = 100
	}
	if c.Color == "" {
		c.Color = "auto"
	}
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 200 * time.Millisecond
	}
	if len(c.Watch.Extensions) == 0 {
		c.Watch.Extensions = []string{".cs"}
	}
}

// Validate checks values that TOML decoding cannot.
func (c *Config) Validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return errors.InvalidOption("color", c.Color, nil)
	}
	if c.MaxErrors < 0 {
		return errors.InvalidOption("max_errors", c.MaxErrors, nil)
	}
	for _, ext := range c.Watch.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return errors.InvalidOption("watch.extensions", ext, nil)
		}
	}
	return nil
}

// UseColor resolves the color setting for the output file f.
func (c *Config) UseColor(f *os.File) bool {
	switch c.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return os.Getenv("NO_COLOR") == "" && IsTerminal(f.Fd())
}

// Matches reports whether path has one of the watched extensions.
func (c *Config) Matches(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Watch.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// SaveConfig writes the configuration as TOML.
func (c *Config) SaveConfig(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.InvalidConfig(path, "cannot create", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return errors.InvalidConfig(path, "cannot encode", err)
	}
	return f.Close()
}
