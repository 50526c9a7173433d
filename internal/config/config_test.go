package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mkcdda/internal/config"
)

func TestLoadDefaultConfigWithoutFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	want := filepath.Join(tempHome, ".config", "mkcdda", "config.toml")
	if resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if cfg.Assembly.BufferKiB != 8 {
		t.Fatalf("unexpected buffer size: %d", cfg.Assembly.BufferKiB)
	}
	if cfg.BufferSize() != 8192 {
		t.Fatalf("unexpected buffer bytes: %d", cfg.BufferSize())
	}
	if !cfg.Assembly.LockOutput || !cfg.Assembly.CheckFreeSpace || !cfg.Assembly.ShowProgress {
		t.Fatalf("expected assembly toggles enabled by default: %+v", cfg.Assembly)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Metrics.Textfile != "" {
		t.Fatalf("expected metrics disabled by default, got %q", cfg.Metrics.Textfile)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile(filepath.Join(dir, "mkcdda.toml"), []byte("[assembly]\nbuffer_kib = 64\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected project config to be found")
	}
	if filepath.Base(resolved) != "mkcdda.toml" {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.Assembly.BufferKiB != 64 {
		t.Fatalf("expected buffer_kib 64, got %d", cfg.Assembly.BufferKiB)
	}
	if !cfg.Assembly.LockOutput {
		t.Fatal("expected unspecified fields to keep defaults")
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	configPath := filepath.Join(tempDir, "custom.toml")

	type payload struct {
		Assembly struct {
			BufferKiB  int  `toml:"buffer_kib"`
			LockOutput bool `toml:"lock_output"`
		} `toml:"assembly"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
			File   string `toml:"file"`
		} `toml:"logging"`
		Metrics struct {
			Textfile string `toml:"textfile"`
		} `toml:"metrics"`
	}
	custom := payload{}
	custom.Assembly.BufferKiB = 128
	custom.Assembly.LockOutput = false
	custom.Logging.Format = " JSON "
	custom.Logging.Level = "Debug"
	custom.Logging.File = "~/logs/mkcdda.log"
	custom.Metrics.Textfile = "~/metrics/mkcdda.prom"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Assembly.BufferKiB != 128 || cfg.Assembly.LockOutput {
		t.Fatalf("unexpected assembly: %+v", cfg.Assembly)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging, got %+v", cfg.Logging)
	}
	if cfg.Logging.File != filepath.Join(tempDir, "logs", "mkcdda.log") {
		t.Fatalf("expected expanded log file, got %q", cfg.Logging.File)
	}
	if cfg.Metrics.Textfile != filepath.Join(tempDir, "metrics", "mkcdda.prom") {
		t.Fatalf("expected expanded textfile, got %q", cfg.Metrics.Textfile)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(configPath, []byte("[assembly]\nimage_name = \"x.bin\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("MKCDDA_LOG_LEVEL", "WARN")
	t.Setenv("MKCDDA_LOG_FORMAT", "json")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "json" {
		t.Fatalf("expected env overrides, got %+v", cfg.Logging)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Assembly.BufferKiB = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero buffer")
	}

	cfg = config.Default()
	cfg.Assembly.BufferKiB = 5000
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for oversized buffer")
	}

	cfg = config.Default()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for log format")
	}

	cfg = config.Default()
	cfg.Logging.Level = "trace"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for log level")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Assembly.BufferKiB != 8 {
		t.Fatalf("expected sample buffer_kib 8, got %d", cfg.Assembly.BufferKiB)
	}
	if err := config.CreateSample(path); err == nil {
		t.Fatal("expected CreateSample to refuse overwriting")
	}
}

func TestEncodeRoundTrips(t *testing.T) {
	cfg := config.Default()
	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), "buffer_kib = 8") {
		t.Fatalf("expected buffer_kib in output, got %s", buf.String())
	}
	var decoded config.Config
	if err := toml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode encoded config: %v", err)
	}
	if decoded != cfg {
		t.Fatalf("round trip mismatch: %+v vs %+v", decoded, cfg)
	}
}
