package config

const (
	defaultConfigPath     = "~/.config/mkcdda/config.toml"
	projectConfigName     = "mkcdda.toml"
	defaultBufferKiB      = 8
	maxBufferKiB          = 4096
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	envLogLevel           = "MKCDDA_LOG_LEVEL"
	envLogFormat          = "MKCDDA_LOG_FORMAT"
	envMetricsTextfile    = "MKCDDA_METRICS_TEXTFILE"
	defaultLockOutput     = true
	defaultCheckFreeSpace = true
	defaultShowProgress   = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Assembly: Assembly{
			BufferKiB:      defaultBufferKiB,
			LockOutput:     defaultLockOutput,
			CheckFreeSpace: defaultCheckFreeSpace,
			ShowProgress:   defaultShowProgress,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
