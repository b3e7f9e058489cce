package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// chdirTemp switches the working directory to a fresh temp dir for the test
// and restores it afterwards. Load resolves config/ relative to cwd.
func chdirTemp(t *testing.T) string {
	t.Helper()
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	return dir
}

func writeConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	confDir := filepath.Join(dir, "config")
	if err := os.MkdirAll(confDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(confDir, "dev.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	chdirTemp(t)
	os.Unsetenv("STORE_BACKEND")
	os.Unsetenv("MEMCACHED_ADDRS")
	os.Unsetenv("ENV_NAME")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.StoreBackend != "in_memory" {
		t.Errorf("StoreBackend = %q, want in_memory", cfg.StoreBackend)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
	if cfg.RateLimitRPS != 100 || cfg.RateLimitBurst != 250 {
		t.Errorf("rate limit = %d/%d, want 100/250", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.NameMaxLength != 100 {
		t.Errorf("NameMaxLength = %d, want 100", cfg.NameMaxLength)
	}
	if len(cfg.SeedVehicles) != 0 {
		t.Errorf("SeedVehicles = %d records, want none", len(cfg.SeedVehicles))
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := chdirTemp(t)
	os.Unsetenv("STORE_BACKEND")
	os.Unsetenv("ENV_NAME")
	writeConfigFile(t, dir, `
server:
  port: "9090"
request:
  timeout: 2s
store:
  backend: memcached
  memcached:
    addrs: "mc1:11211,mc2:11211"
    timeout: 250ms
    max_idle_conns: 4
reliability:
  rate_limit_rps: 10
  rate_limit_burst: 20
shutdown:
  timeout: 5s
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want 9090", cfg.ServerPort)
	}
	if cfg.RequestTimeout != 2*time.Second {
		t.Errorf("RequestTimeout = %v, want 2s", cfg.RequestTimeout)
	}
	if cfg.StoreBackend != "memcached" {
		t.Errorf("StoreBackend = %q, want memcached", cfg.StoreBackend)
	}
	if cfg.MemcachedAddrs != "mc1:11211,mc2:11211" {
		t.Errorf("MemcachedAddrs = %q", cfg.MemcachedAddrs)
	}
	if cfg.MemcachedTimeout != 250*time.Millisecond || cfg.MemcachedMaxIdleConns != 4 {
		t.Errorf("memcached tuning = %v/%d, want 250ms/4", cfg.MemcachedTimeout, cfg.MemcachedMaxIdleConns)
	}
	if cfg.RateLimitRPS != 10 || cfg.RateLimitBurst != 20 {
		t.Errorf("rate limit = %d/%d, want 10/20", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", cfg.ShutdownTimeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	writeConfigFile(t, dir, "store:\n  backend: in_memory\n")
	os.Setenv("STORE_BACKEND", "memcached")
	os.Setenv("MEMCACHED_ADDRS", "envhost:11211")
	defer os.Unsetenv("STORE_BACKEND")
	defer os.Unsetenv("MEMCACHED_ADDRS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StoreBackend != "memcached" {
		t.Errorf("StoreBackend = %q, want env override memcached", cfg.StoreBackend)
	}
	if cfg.MemcachedAddrs != "envhost:11211" {
		t.Errorf("MemcachedAddrs = %q, want envhost:11211", cfg.MemcachedAddrs)
	}
}

func TestLoad_SeedVehicles(t *testing.T) {
	dir := chdirTemp(t)
	os.Unsetenv("STORE_BACKEND")
	writeConfigFile(t, dir, `
fleet:
  seed:
    - kind: car
      brand: Toyota
      model: Corolla
      year: 2023
      number_of_doors: 4
      engine_size: 1.8
    - kind: motorcycle
      brand: Honda
      model: CBR
      year: 2023
      has_sidecar: false
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.SeedVehicles) != 2 {
		t.Fatalf("SeedVehicles = %d records, want 2", len(cfg.SeedVehicles))
	}
	car := cfg.SeedVehicles[0]
	if car.Kind != "car" || car.Brand != "Toyota" || car.EngineSize != 1.8 || car.NumberOfDoors != 4 {
		t.Errorf("seed car = %+v", car)
	}
	moto := cfg.SeedVehicles[1]
	if moto.Kind != "motorcycle" || moto.Model != "CBR" || moto.HasSidecar {
		t.Errorf("seed motorcycle = %+v", moto)
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	dir := chdirTemp(t)
	os.Unsetenv("STORE_BACKEND")
	writeConfigFile(t, dir, "store:\n  backend: redis\n")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for unknown backend, got nil")
	}
	if !strings.Contains(err.Error(), "store.backend") {
		t.Errorf("Load() error = %v, want message naming store.backend", err)
	}
}

func TestLoad_RejectsBadSeedKind(t *testing.T) {
	dir := chdirTemp(t)
	os.Unsetenv("STORE_BACKEND")
	writeConfigFile(t, dir, `
fleet:
  seed:
    - kind: hovercraft
      brand: X
      model: Y
      year: 2020
`)

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for unknown seed kind, got nil")
	}
	if !strings.Contains(err.Error(), "fleet.seed[0]") {
		t.Errorf("Load() error = %v, want message naming fleet.seed[0]", err)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name string
		in   string
		def  time.Duration
		want time.Duration
	}{
		{name: "valid", in: "2s", def: time.Second, want: 2 * time.Second},
		{name: "empty uses default", in: "", def: time.Second, want: time.Second},
		{name: "garbage uses default", in: "soon", def: time.Second, want: time.Second},
		{name: "negative uses default", in: "-5s", def: time.Second, want: time.Second},
		{name: "whitespace trimmed", in: " 3s ", def: time.Second, want: 3 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseDuration(tt.in, tt.def); got != tt.want {
				t.Errorf("parseDuration(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
