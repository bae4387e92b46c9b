// Package config handles keylight paths and the user configuration file.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/d2verb/keylight/internal/pathutil"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultHost       = "127.0.0.1"
	DefaultPort       = 6742
	DefaultTimeout    = 750 * time.Millisecond
	DefaultClientName = "keylight"
	DefaultVendorHint = "corsair"
	DefaultTick       = 33 * time.Millisecond
	DefaultLogLevel   = "info"
	DefaultLogFile    = "logs/keylight.log"
)

// Environment variables that override the daemon endpoint.
const (
	EnvHost = "OPENRGB_HOST"
	EnvPort = "OPENRGB_PORT"
)

// Paths holds common paths used by keylight.
type Paths struct {
	Home   string
	Config string
	Logs   string
	Log    string
}

// GetPaths returns the paths for the current user.
func GetPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	keylightHome := filepath.Join(home, ".keylight")
	logsDir := filepath.Join(keylightHome, "logs")
	return &Paths{
		Home:   keylightHome,
		Config: filepath.Join(keylightHome, "config.yaml"),
		Logs:   logsDir,
		Log:    filepath.Join(logsDir, "keylight.log"),
	}, nil
}

// Config is the user configuration, read from config.yaml.
type Config struct {
	Host       string        `yaml:"host"`
	Port       int           `yaml:"port"`
	Timeout    time.Duration `yaml:"timeout"`
	ClientName string        `yaml:"client_name"`
	VendorHint string        `yaml:"vendor_hint"`
	Tick       time.Duration `yaml:"tick"`
	LogLevel   string        `yaml:"log_level"`
	// LogFile is resolved against the config file's directory when relative.
	LogFile string `yaml:"log_file"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Host:       DefaultHost,
		Port:       DefaultPort,
		Timeout:    DefaultTimeout,
		ClientName: DefaultClientName,
		VendorHint: DefaultVendorHint,
		Tick:       DefaultTick,
		LogLevel:   DefaultLogLevel,
		LogFile:    DefaultLogFile,
	}
}

// ParseError indicates the config file exists but could not be read.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConfigError indicates an invalid configuration value.
type ConfigError struct {
	Field string
	Value string
	Msg   string
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Msg)
}

// IsConfigError reports whether err is an invalid-value or unreadable-file
// error.
func IsConfigError(err error) bool {
	var ce *ConfigError
	var pe *ParseError
	return errors.As(err, &ce) || errors.As(err, &pe)
}

// LoadConfig reads the config file at path over the defaults. A missing
// file yields the defaults. The log file path is resolved against the
// directory holding the config file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, &ParseError{Path: path, Err: err}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, &ParseError{Path: path, Err: err}
		}
	}

	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile
	}
	logFile, err := pathutil.ResolvePath(cfg.LogFile, filepath.Dir(path))
	if err != nil {
		return cfg, &ParseError{Path: path, Err: err}
	}
	cfg.LogFile = logFile
	return cfg, nil
}

// ApplyEnv overrides the daemon endpoint from the environment. lookup is
// normally os.LookupEnv.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if host, ok := lookup(EnvHost); ok {
		cfg.Host = strings.TrimSpace(host)
	}
	if raw, ok := lookup(EnvPort); ok {
		port, err := parsePort(raw)
		if err != nil {
			return &ConfigError{Field: EnvPort, Value: raw, Msg: err.Error()}
		}
		cfg.Port = port
	}
	return nil
}

func parsePort(s string) (int, error) {
	p, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return 0, errors.New("must be a number between 1 and 65535")
	}
	if p == 0 {
		return 0, errors.New("must be a number between 1 and 65535")
	}
	return int(p), nil
}

// Validate checks the configuration before any connection is attempted.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return &ConfigError{Field: "host", Msg: "must not be empty"}
	}
	if c.Port < 1 || c.Port > 65535 {
		return &ConfigError{Field: "port", Value: strconv.Itoa(c.Port), Msg: "must be between 1 and 65535"}
	}
	if c.Timeout <= 0 {
		return &ConfigError{Field: "timeout", Value: c.Timeout.String(), Msg: "must be positive"}
	}
	if c.Tick <= 0 {
		return &ConfigError{Field: "tick", Value: c.Tick.String(), Msg: "must be positive"}
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigError{Field: "log_level", Value: c.LogLevel, Msg: "must be debug, info, warn or error"}
	}
	return nil
}

// Address returns host:port of the daemon.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DefaultFile returns the contents of a config file spelling out every
// default.
func DefaultFile() []byte {
	d := DefaultConfig()
	return fmt.Appendf(nil, `# keylight configuration
# OpenRGB SDK server. OPENRGB_HOST and OPENRGB_PORT override these.
host: %s
port: %d
timeout: %s
client_name: %s

# Keyboard to drive when several are reported. Empty picks the first.
vendor_hint: %s

tick: %s
log_level: %s
# Relative paths are resolved against this file's directory.
log_file: %s
`, d.Host, d.Port, d.Timeout, d.ClientName, d.VendorHint, d.Tick, d.LogLevel, d.LogFile)
}

// Init writes DefaultFile to path unless a file already exists there. It
// reports whether the file was created.
func Init(path string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, os.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if _, err := f.Write(DefaultFile()); err != nil {
		f.Close()
		return false, err
	}
	return true, f.Close()
}
