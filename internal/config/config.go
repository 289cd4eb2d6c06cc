package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Configuration keys. Each one can be set with a HIGHLIGHTS_ prefixed
// environment variable, e.g. HIGHLIGHTS_LOG_LEVEL=debug.
const (
	KeyInputType       = "input_type"
	KeyFile            = "file"
	KeyOutputDir       = "output_dir"
	KeyPretty          = "pretty"
	KeyStyle           = "style"
	KeyWordWrap        = "word_wrap"
	KeyHost            = "host"
	KeyPort            = "port"
	KeyMaxUploadMB     = "max_upload_mb"
	KeyLogLevel        = "log_level"
	KeyLogJSON         = "log_json"
	KeyShutdownTimeout = "shutdown_timeout_in_seconds"
)

type (
	Config struct {
		Input
		Output
		HTTP
		Log
		Global
	}

	Input struct {
		Type string `validate:"omitempty,oneof=kobo oreilly"`
		Path string
	}
	Output struct {
		Dir      string // Write one file per book here instead of stdout
		Pretty   bool   // Render for the terminal
		Style    string `validate:"required"`
		WordWrap int    `validate:"gte=0"`
	}
	HTTP struct {
		Host        string
		Port        int32 `validate:"gte=1,lte=65535"`
		MaxUploadMB int64 `validate:"gte=1,lte=1024"`
	}
	Log struct {
		Level string `validate:"oneof=debug info warn error"`
		JSON  bool
	}
	Global struct {
		ShutdownTimeoutInSeconds int `validate:"gte=0"`
	}
)

// NewViper returns a viper instance with defaults and environment lookup set
// up. Callers may bind flags or set a config file before passing it to Load.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyInputType, "")
	v.SetDefault(KeyFile, "")
	v.SetDefault(KeyOutputDir, "")
	v.SetDefault(KeyPretty, false)
	v.SetDefault(KeyStyle, DefaultStyle)
	v.SetDefault(KeyWordWrap, DefaultWordWrap)
	v.SetDefault(KeyHost, DefaultHost)
	v.SetDefault(KeyPort, DefaultPort)
	v.SetDefault(KeyMaxUploadMB, DefaultMaxUploadMB)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogJSON, false)
	v.SetDefault(KeyShutdownTimeout, DefaultShutdownTimeoutInSeconds)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load resolves configuration with precedence: defaults < file < env < flags.
// A config file is only read when one was set with SetConfigFile.
func Load(v *viper.Viper) (*Config, error) {
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	cfg := &Config{
		Input: Input{
			Type: strings.ToLower(strings.TrimSpace(v.GetString(KeyInputType))),
			Path: v.GetString(KeyFile),
		},
		Output: Output{
			Dir:      v.GetString(KeyOutputDir),
			Pretty:   v.GetBool(KeyPretty),
			Style:    v.GetString(KeyStyle),
			WordWrap: v.GetInt(KeyWordWrap),
		},
		HTTP: HTTP{
			Host:        v.GetString(KeyHost),
			Port:        v.GetInt32(KeyPort),
			MaxUploadMB: v.GetInt64(KeyMaxUploadMB),
		},
		Log: Log{
			Level: strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
			JSON:  v.GetBool(KeyLogJSON),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt(KeyShutdownTimeout),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewConfig loads configuration from defaults and the environment only.
func NewConfig() (*Config, error) {
	return Load(NewViper())
}

func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validation failed: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s: must satisfy %s (got %v)", fe.Namespace(), describeTag(fe), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func describeTag(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
}

// Addr returns the listen address of the HTTP server.
func (h HTTP) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// MaxUploadBytes returns the upload size limit in bytes.
func (h HTTP) MaxUploadBytes() int64 {
	return h.MaxUploadMB << 20
}
