package config

// EnvPrefix is prepended to every configuration key when read from the
// environment.
const EnvPrefix = "highlights"

const (
	DefaultHost                     = "0.0.0.0"
	DefaultPort                     = 8188
	DefaultMaxUploadMB              = 100
	DefaultShutdownTimeoutInSeconds = 2

	// DefaultStyle is the glamour style used for --pretty output.
	DefaultStyle    = "dark"
	DefaultWordWrap = 80

	DefaultLogLevel = "info"
)
