package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/jimezsa/jobhunt/internal/models"
)

func useDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("JOBHUNT_CONFIG_DIR", dir)
	for _, key := range []string{
		"JOBHUNT_API_URL", "JOBHUNT_PAGE_SIZE", "JOBHUNT_SORT", "JOBHUNT_CERTIFIED_ONLY",
		"JOBHUNT_DEMO_FALLBACK", "JOBHUNT_POLL_INTERVAL", "JOBHUNT_TIMEOUT", "JOBHUNT_STORE_URL",
		"JOBHUNT_PROXIES",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	useDir(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Fatalf("Load() = %+v, want defaults", cfg)
	}
	q := cfg.Query()
	if !q.CertifiedOnly || q.Sort != models.SortRecent || q.PageSize != 25 || q.Page != 1 {
		t.Fatalf("unexpected default query: %+v", q)
	}
	if cfg.Poll() != 15*time.Second || cfg.Timeout() != 30*time.Second {
		t.Fatalf("Poll()=%s Timeout()=%s", cfg.Poll(), cfg.Timeout())
	}
}

func TestLoadJSON5AndEnvOverride(t *testing.T) {
	dir := useDir(t)
	body := `{
  // local backend
  api_url: "http://api.test:8080",
  page_size: 50,
  sort: "score",
  certified_only: false,
  poll_interval: "1m",
}`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("JOBHUNT_API_URL", "http://env.test")
	t.Setenv("JOBHUNT_DEMO_FALLBACK", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIURL != "http://env.test" || !cfg.DemoFallback {
		t.Fatalf("env did not override: %+v", cfg)
	}
	if cfg.PageSize != 50 || cfg.Sort != "score" || cfg.CertifiedOnly {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Poll() != time.Minute {
		t.Fatalf("Poll() = %s, want 1m", cfg.Poll())
	}
	if q := cfg.Query(); q.Sort != models.SortScore || q.PageSize != 50 {
		t.Fatalf("unexpected query: %+v", q)
	}
}

func TestPollFallsBackOnGarbage(t *testing.T) {
	cfg := Config{PollInterval: "soon"}
	if cfg.Poll() != DefaultPollInterval {
		t.Fatalf("Poll() = %s", cfg.Poll())
	}
}

func TestInitCreatesFilesOnce(t *testing.T) {
	dir := useDir(t)
	created, err := Init()
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("created = %v, want 2 files", created)
	}
	if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	again, err := Init()
	if err != nil || len(again) != 0 {
		t.Fatalf("second Init() = %v, %v", again, err)
	}
}

func TestLoadProxiesPrecedence(t *testing.T) {
	dir := useDir(t)
	if err := os.WriteFile(filepath.Join(dir, ProxiesFileName), []byte("# comment\nhttp://file:1\n\nhttp://file:2\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := LoadProxies("")
	if err != nil || !reflect.DeepEqual(got, []string{"http://file:1", "http://file:2"}) {
		t.Fatalf("LoadProxies(file) = %v, %v", got, err)
	}

	t.Setenv("JOBHUNT_PROXIES", "http://env:1, ")
	if got, _ := LoadProxies(""); !reflect.DeepEqual(got, []string{"http://env:1"}) {
		t.Fatalf("LoadProxies(env) = %v", got)
	}
	if got, _ := LoadProxies("http://flag:1,http://flag:2"); len(got) != 2 || got[0] != "http://flag:1" {
		t.Fatalf("LoadProxies(flag) = %v", got)
	}
}
