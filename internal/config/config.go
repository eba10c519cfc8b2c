package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jimezsa/jobhunt/internal/models"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "jobhunt"
	ConfigFileName  = "config.json"
	ProxiesFileName = "proxies.txt"
	StateFileName   = "state.json"
	SeenFileName    = "seen.json"

	DefaultAPIURL       = "http://localhost:5000"
	DefaultPollInterval = 15 * time.Second
	DefaultTimeout      = 30
)

// Config holds the backend address and listing defaults.
type Config struct {
	APIURL         string `json:"api_url"`
	PageSize       int    `json:"page_size"`
	Sort           string `json:"sort"`
	CertifiedOnly  bool   `json:"certified_only"`
	DemoFallback   bool   `json:"demo_fallback"`
	PollInterval   string `json:"poll_interval"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	StoreURL       string `json:"store_url"`
}

func DefaultConfig() Config {
	return Config{
		APIURL:         DefaultAPIURL,
		PageSize:       models.DefaultPageSize,
		Sort:           string(models.SortRecent),
		CertifiedOnly:  true,
		PollInterval:   DefaultPollInterval.String(),
		TimeoutSeconds: DefaultTimeout,
	}
}

// applyEnv lets JOBHUNT_* variables override the file.
func (c *Config) applyEnv() {
	c.APIURL = envString("JOBHUNT_API_URL", c.APIURL)
	c.PageSize = envInt("JOBHUNT_PAGE_SIZE", c.PageSize)
	c.Sort = envString("JOBHUNT_SORT", c.Sort)
	c.CertifiedOnly = envBool("JOBHUNT_CERTIFIED_ONLY", c.CertifiedOnly)
	c.DemoFallback = envBool("JOBHUNT_DEMO_FALLBACK", c.DemoFallback)
	c.PollInterval = envString("JOBHUNT_POLL_INTERVAL", c.PollInterval)
	c.TimeoutSeconds = envInt("JOBHUNT_TIMEOUT", c.TimeoutSeconds)
	c.StoreURL = envString("JOBHUNT_STORE_URL", c.StoreURL)
}

// Query returns the listing query the config starts from.
func (c Config) Query() models.Query {
	q := models.DefaultQuery()
	q.CertifiedOnly = c.CertifiedOnly
	q.Sort = models.ParseSortKey(c.Sort)
	if c.PageSize > 0 {
		q.PageSize = c.PageSize
	}
	return q.Normalize()
}

// Poll parses poll_interval, falling back to DefaultPollInterval.
func (c Config) Poll() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.PollInterval))
	if err != nil || d <= 0 {
		return DefaultPollInterval
	}
	return d
}

func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ConfigDir is $JOBHUNT_CONFIG_DIR or <user config dir>/jobhunt.
func ConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("JOBHUNT_CONFIG_DIR")); dir != "" {
		return dir, nil
	}
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

func ConfigPath() (string, error)  { return pathIn(ConfigFileName) }
func ProxiesPath() (string, error) { return pathIn(ProxiesFileName) }
func StatePath() (string, error)   { return pathIn(StateFileName) }
func SeenPath() (string, error)    { return pathIn(SeenFileName) }

func Load() (Config, error) {
	cfg := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json5.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// Init writes default config.json and proxies.txt if they don't already exist.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	proxiesPath := filepath.Join(dir, ProxiesFileName)
	if _, err := os.Stat(proxiesPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(proxiesPath, []byte("# one proxy URL per line\n"), 0o644); err != nil {
			return created, err
		}
		created = append(created, proxiesPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// LoadProxies reads proxies from the flag, then JOBHUNT_PROXIES, then proxies.txt.
func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}

	if env := strings.TrimSpace(os.Getenv("JOBHUNT_PROXIES")); env != "" {
		return splitCSV(env), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
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

func envBool(key string, fallback bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
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
