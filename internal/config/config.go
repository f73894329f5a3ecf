// Package config loads pipeline settings from config.json with
// JOBWATCH_* environment fallbacks.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "jobwatch"
	ConfigFileName  = "config.json"
	ProxiesFileName = "proxies.txt"
	DBFileName      = "jobwatch.db"
)

// Config contains the pipeline's settings.
type Config struct {
	DBPath           string `json:"db_path"`
	DefaultLocation  string `json:"default_location"`
	DetailFetchLimit int    `json:"detail_fetch_limit"`
	WatchInterval    int    `json:"watch_interval_hours"`
	Concurrency      int    `json:"concurrency"`
}

func DefaultConfig() Config {
	return Config{
		DBPath:           envString("JOBWATCH_DB_PATH", ""),
		DefaultLocation:  envString("JOBWATCH_DEFAULT_LOCATION", "Dhaka, Bangladesh"),
		DetailFetchLimit: envInt("JOBWATCH_DETAIL_FETCH_LIMIT", 5),
		WatchInterval:    envInt("JOBWATCH_WATCH_INTERVAL", 6),
		Concurrency:      envInt("JOBWATCH_CONCURRENCY", 4),
	}
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func pathIn(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func ConfigPath() (string, error) { return pathIn(ConfigFileName) }

func ProxiesPath() (string, error) { return pathIn(ProxiesFileName) }

// ResolveDBPath picks the database location: explicit config value first,
// then the default file under the config dir.
func (c Config) ResolveDBPath() (string, error) {
	if strings.TrimSpace(c.DBPath) != "" {
		return c.DBPath, nil
	}
	return pathIn(DBFileName)
}

// Load reads config.json (JSON5 accepted) on top of the env defaults.
// A missing or empty file is not an error.
func Load() (Config, error) {
	cfg := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if strings.TrimSpace(string(data)) == "" {
		return cfg, nil
	}

	err = json5.Unmarshal(data, &cfg)
	return cfg, err
}

// Init seeds config.json and proxies.txt, skipping files that already
// exist, and reports what it created.
func Init() ([]string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	defaults, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return nil, err
	}

	seeds := []struct {
		name string
		data []byte
	}{
		{ConfigFileName, append(defaults, '\n')},
		{ProxiesFileName, nil},
	}

	var created []string
	for _, seed := range seeds {
		path := filepath.Join(dir, seed.name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return created, err
		}
		if err := os.WriteFile(path, seed.data, 0o644); err != nil {
			return created, err
		}
		created = append(created, path)
	}
	return created, nil
}

// LoadProxies resolves the proxy list: --proxies flag, then
// JOBWATCH_PROXIES, then proxies.txt. Lines starting with # are comments.
func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}
	if env := strings.TrimSpace(os.Getenv("JOBWATCH_PROXIES")); env != "" {
		return splitCSV(env), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
