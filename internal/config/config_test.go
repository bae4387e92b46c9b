package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGetPaths(t *testing.T) {
	paths, err := GetPaths()
	if err != nil {
		t.Fatalf("GetPaths() error = %v", err)
	}

	home, _ := os.UserHomeDir()
	keylightHome := filepath.Join(home, ".keylight")
	logsDir := filepath.Join(keylightHome, "logs")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"Home", paths.Home, keylightHome},
		{"Config", paths.Config, filepath.Join(keylightHome, "config.yaml")},
		{"Logs", paths.Logs, logsDir},
		{"Log", paths.Log, filepath.Join(logsDir, "keylight.log")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
			}
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		dir := t.TempDir()
		cfg, err := LoadConfig(filepath.Join(dir, "config.yaml"))
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		want := DefaultConfig()
		want.LogFile = filepath.Join(dir, "logs", "keylight.log")
		if cfg != want {
			t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
		}
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
host: 192.168.1.20
port: 6800
timeout: 250ms
vendor_hint: logitech
tick: 50ms
log_level: debug
log_file: /var/log/keylight.log
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Host != "192.168.1.20" || cfg.Port != 6800 {
			t.Errorf("endpoint = %s:%d", cfg.Host, cfg.Port)
		}
		if cfg.Timeout != 250*time.Millisecond || cfg.Tick != 50*time.Millisecond {
			t.Errorf("timeout = %v, tick = %v", cfg.Timeout, cfg.Tick)
		}
		if cfg.VendorHint != "logitech" || cfg.LogLevel != "debug" {
			t.Errorf("vendor_hint = %q, log_level = %q", cfg.VendorHint, cfg.LogLevel)
		}
		if cfg.ClientName != DefaultClientName {
			t.Errorf("ClientName = %q, want default", cfg.ClientName)
		}
		if cfg.LogFile != "/var/log/keylight.log" {
			t.Errorf("LogFile = %q", cfg.LogFile)
		}
	})

	t.Run("relative log file resolves against config dir", func(t *testing.T) {
		path := writeConfig(t, "log_file: ./debug.log\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if want := filepath.Join(filepath.Dir(path), "debug.log"); cfg.LogFile != want {
			t.Errorf("LogFile = %q, want %q", cfg.LogFile, want)
		}
	})

	t.Run("empty vendor hint is kept", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, "vendor_hint: \"\"\n"))
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.VendorHint != "" {
			t.Errorf("VendorHint = %q, want empty", cfg.VendorHint)
		}
	})

	t.Run("invalid yaml is a parse error", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "port: [not a port\n"))
		if err == nil {
			t.Fatal("LoadConfig() expected error")
		}
		if !IsConfigError(err) {
			t.Errorf("error = %v, want config error", err)
		}
	})

	t.Run("invalid duration is a parse error", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "timeout: soon\n"))
		if !IsConfigError(err) {
			t.Errorf("error = %v, want config error", err)
		}
	})
}

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name     string
		vars     map[string]string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{"no overrides", nil, DefaultHost, DefaultPort, false},
		{"host only", map[string]string{EnvHost: "10.0.0.5"}, "10.0.0.5", DefaultPort, false},
		{"port only", map[string]string{EnvPort: "6800"}, DefaultHost, 6800, false},
		{"both", map[string]string{EnvHost: "rgb.local", EnvPort: " 7000 "}, "rgb.local", 7000, false},
		{"port not a number", map[string]string{EnvPort: "abc"}, DefaultHost, DefaultPort, true},
		{"port out of range", map[string]string{EnvPort: "70000"}, DefaultHost, DefaultPort, true},
		{"port zero", map[string]string{EnvPort: "0"}, DefaultHost, DefaultPort, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := ApplyEnv(&cfg, env(tt.vars))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnv() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !IsConfigError(err) || !strings.Contains(err.Error(), EnvPort) {
					t.Errorf("error = %v, want config error naming %s", err, EnvPort)
				}
				return
			}
			if cfg.Host != tt.wantHost || cfg.Port != tt.wantPort {
				t.Errorf("endpoint = %s:%d, want %s:%d", cfg.Host, cfg.Port, tt.wantHost, tt.wantPort)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"empty host", func(c *Config) { c.Host = " " }, "host"},
		{"port too high", func(c *Config) { c.Port = 65536 }, "port"},
		{"port zero", func(c *Config) { c.Port = 0 }, "port"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout"},
		{"negative tick", func(c *Config) { c.Tick = -time.Millisecond }, "tick"},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
		{"upper-case log level", func(c *Config) { c.LogLevel = "DEBUG" }, ""},
		{"padded log level", func(c *Config) { c.LogLevel = " info\n" }, ""},
		{"blank log level", func(c *Config) { c.LogLevel = "  " }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			ce, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("Validate() error = %v, want *ConfigError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestAddress(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Address(); got != "127.0.0.1:6742" {
		t.Errorf("Address() = %q", got)
	}
	cfg.Host = "::1"
	if got := cfg.Address(); got != "[::1]:6742" {
		t.Errorf("Address() = %q", got)
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".keylight", "config.yaml")

	created, err := Init(path)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if !created {
		t.Fatal("Init() created = false on a fresh path")
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	want := DefaultConfig()
	want.LogFile = filepath.Join(filepath.Dir(path), DefaultLogFile)
	if cfg != want {
		t.Errorf("written defaults load as %+v, want %+v", cfg, want)
	}

	if err := os.WriteFile(path, []byte("port: 7000\n"), 0644); err != nil {
		t.Fatal(err)
	}
	created, err = Init(path)
	if err != nil || created {
		t.Fatalf("Init() on existing file = %v, %v; want false, nil", created, err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "port: 7000\n" {
		t.Errorf("existing file overwritten: %q", data)
	}
}
