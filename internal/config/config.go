package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/R167/a11ycheck/checkers/common"
	"github.com/R167/a11ycheck/internal/browser/engines"
	"github.com/R167/a11ycheck/internal/logging"
	"github.com/R167/a11ycheck/internal/security"
)

// DefaultConfigFile is read from the working directory when no --config is given.
const DefaultConfigFile = ".a11ycheck.yaml"

// Config holds everything a run needs. Precedence, lowest first: DefaultConfig,
// the YAML file, A11YCHECK_* environment variables, explicitly set flags.
type Config struct {
	// TargetURL is the page under test.
	TargetURL string `yaml:"target_url" env:"A11YCHECK_TARGET_URL"`

	// ScreenshotPath is overwritten on every successful run.
	ScreenshotPath string `yaml:"screenshot_path" env:"A11YCHECK_SCREENSHOT_PATH"`

	// Engine names the browser driver (playwright or chromedp).
	Engine string `yaml:"engine" env:"A11YCHECK_ENGINE"`

	Headless bool `yaml:"headless" env:"A11YCHECK_HEADLESS"`

	// Timeout bounds the whole run.
	Timeout time.Duration `yaml:"timeout" env:"A11YCHECK_TIMEOUT"`

	// AssertTimeout bounds the polling of each assertion.
	AssertTimeout time.Duration `yaml:"assert_timeout" env:"A11YCHECK_ASSERT_TIMEOUT"`

	NavigationTimeout time.Duration `yaml:"navigation_timeout" env:"A11YCHECK_NAVIGATION_TIMEOUT"`

	// Preflight checks the target over HTTP before launching a browser.
	Preflight bool `yaml:"preflight" env:"A11YCHECK_PREFLIGHT"`

	// AllowRemote lifts the local-host restriction on TargetURL.
	AllowRemote bool `yaml:"allow_remote" env:"A11YCHECK_ALLOW_REMOTE"`

	LogLevel  string `yaml:"log_level" env:"A11YCHECK_LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"A11YCHECK_LOG_FORMAT"`
	NoColor   bool   `yaml:"no_color" env:"A11YCHECK_NO_COLOR"`
}

func DefaultConfig() *Config {
	return &Config{
		TargetURL:         common.DefaultTargetURL,
		ScreenshotPath:    common.DefaultScreenshotPath,
		Engine:            engines.Default,
		Headless:          true,
		Timeout:           2 * time.Minute,
		AssertTimeout:     common.AssertTimeout,
		NavigationTimeout: common.NavigationTimeout,
		Preflight:         true,
		LogLevel:          "warn",
		LogFormat:         "text",
	}
}

// Load builds a Config from defaults, the YAML file at path and the environment.
// An empty path reads DefaultConfigFile if it exists.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.applyYAML(data); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseEnv overlays A11YCHECK_* variables onto target. Unset variables leave
// fields untouched.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) applyYAML(data []byte) error {
	// Pointers and strings tell "absent" apart from zero values.
	type yamlConfig struct {
		TargetURL         string `yaml:"target_url"`
		ScreenshotPath    string `yaml:"screenshot_path"`
		Engine            string `yaml:"engine"`
		Headless          *bool  `yaml:"headless"`
		Timeout           string `yaml:"timeout"`
		AssertTimeout     string `yaml:"assert_timeout"`
		NavigationTimeout string `yaml:"navigation_timeout"`
		Preflight         *bool  `yaml:"preflight"`
		AllowRemote       *bool  `yaml:"allow_remote"`
		LogLevel          string `yaml:"log_level"`
		LogFormat         string `yaml:"log_format"`
		NoColor           *bool  `yaml:"no_color"`
	}

	var y yamlConfig
	if err := yaml.Unmarshal(data, &y); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	setString(&c.TargetURL, y.TargetURL)
	setString(&c.ScreenshotPath, y.ScreenshotPath)
	setString(&c.Engine, y.Engine)
	setString(&c.LogLevel, y.LogLevel)
	setString(&c.LogFormat, y.LogFormat)
	setBool(&c.Headless, y.Headless)
	setBool(&c.Preflight, y.Preflight)
	setBool(&c.AllowRemote, y.AllowRemote)
	setBool(&c.NoColor, y.NoColor)

	durations := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"timeout", y.Timeout, &c.Timeout},
		{"assert_timeout", y.AssertTimeout, &c.AssertTimeout},
		{"navigation_timeout", y.NavigationTimeout, &c.NavigationTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("invalid %s format %q: %w", d.name, d.raw, err)
		}
		*d.dst = v
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Overrides carries flag values; nil fields were not set on the command line.
type Overrides struct {
	TargetURL         *string
	ScreenshotPath    *string
	Engine            *string
	Headless          *bool
	Timeout           *time.Duration
	AssertTimeout     *time.Duration
	NavigationTimeout *time.Duration
	Preflight         *bool
	AllowRemote       *bool
	LogLevel          *string
	LogFormat         *string
	NoColor           *bool
}

// MergeWithFlags applies explicitly set flags on top of the loaded config.
func (c *Config) MergeWithFlags(o Overrides) {
	if o.TargetURL != nil {
		c.TargetURL = *o.TargetURL
	}
	if o.ScreenshotPath != nil {
		c.ScreenshotPath = *o.ScreenshotPath
	}
	if o.Engine != nil {
		c.Engine = *o.Engine
	}
	if o.Headless != nil {
		c.Headless = *o.Headless
	}
	if o.Timeout != nil {
		c.Timeout = *o.Timeout
	}
	if o.AssertTimeout != nil {
		c.AssertTimeout = *o.AssertTimeout
	}
	if o.NavigationTimeout != nil {
		c.NavigationTimeout = *o.NavigationTimeout
	}
	if o.Preflight != nil {
		c.Preflight = *o.Preflight
	}
	if o.AllowRemote != nil {
		c.AllowRemote = *o.AllowRemote
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.LogFormat != nil {
		c.LogFormat = *o.LogFormat
	}
	if o.NoColor != nil {
		c.NoColor = *o.NoColor
	}
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if _, err := security.ValidateTargetURL(c.TargetURL, c.AllowRemote); err != nil {
		return err
	}
	if err := security.ValidateScreenshotPath(c.ScreenshotPath); err != nil {
		return err
	}
	if !engines.Valid(c.Engine) {
		return fmt.Errorf("engine must be one of %s, got %q", strings.Join(engines.Names(), ", "), c.Engine)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.AssertTimeout < 0 {
		return fmt.Errorf("assert_timeout cannot be negative, got %v", c.AssertTimeout)
	}
	if c.NavigationTimeout <= 0 {
		return fmt.Errorf("navigation_timeout must be positive, got %v", c.NavigationTimeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if !logging.ValidFormat(c.LogFormat) {
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}
