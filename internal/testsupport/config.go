package testsupport

import (
	"path/filepath"
	"testing"

	"mkcdda/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a default config whose file outputs live under a unique
// temp directory. Progress output is disabled.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfgVal := config.Default()
	cfgVal.Assembly.ShowProgress = false

	builder := &configBuilder{
		baseDir: t.TempDir(),
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithMetricsTextfile enables the metrics textfile inside the config's temp
// directory.
func WithMetricsTextfile() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Metrics.Textfile = filepath.Join(b.baseDir, "mkcdda.prom")
	}
}

// WithBufferKiB overrides the copy buffer size.
func WithBufferKiB(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Assembly.BufferKiB = n
	}
}
