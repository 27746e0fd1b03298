package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// FileName is looked up relative to the XDG config directories.
const FileName = "skillchess/config.yaml"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr            string        `yaml:"addr"`
	WebDir          string        `yaml:"web_dir"`
	MobileWebDir    string        `yaml:"mobile_web_dir,omitempty"`
	LogLevel        string        `yaml:"log_level"`
	LogFormat       string        `yaml:"log_format"`
	Revival         bool          `yaml:"revival"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

func Default() Config {
	return Config{
		Addr:            ":8080",
		WebDir:          "web",
		LogLevel:        "info",
		LogFormat:       "text",
		ShutdownTimeout: 5 * time.Second,
	}
}

// Path returns the config file found in the XDG config directories, or ""
// when there is none.
func Path() string {
	p, err := xdg.SearchConfigFile(FileName)
	if err != nil {
		return ""
	}
	return p
}

// Load reads path over the defaults. An empty path falls back to the XDG
// lookup, and to plain defaults when no file exists there either.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = Path()
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	logrus.WithField("path", path).Debug("config loaded")
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: empty addr", ErrInvalidConfig)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: negative shutdown_timeout", ErrInvalidConfig)
	}
	return nil
}

// ConfigureLogging points the standard logrus logger at the configured
// level and format.
func (c Config) ConfigureLogging() error {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	// --trace wins over the file
	if logrus.GetLevel() != logrus.TraceLevel {
		logrus.SetLevel(lvl)
	}
	if c.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	return nil
}

func (c Config) Dump() ([]byte, error) {
	return yaml.Marshal(c)
}
