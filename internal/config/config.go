package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/bnema/subs-cli/internal/domain"
)

const (
	EnvPrefix = "SUBS"

	KeyAPIBaseURL          = "api.base_url"
	KeyAPITimeout          = "api.timeout"
	KeySessionPath         = "session.path"
	KeySecretsBackend      = "secrets.backend"
	KeySecretsDir          = "secrets.dir"
	KeySecretsPassBinary   = "secrets.pass_binary"
	KeyRenewalCycleDays    = "renewal.cycle_days"
	KeyRenewalCalendarDays = "renewal.calendar_days"
	KeyRenewalDateZone     = "renewal.date_zone"
	KeyLogLevel            = "log.level"
	KeyLogFormat           = "log.format"
)

const (
	SecretsBackendChain = "chain"
	SecretsBackendFile  = "file"
	SecretsBackendPass  = "pass"

	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Secrets SecretsConfig `mapstructure:"secrets"`
	Renewal RenewalConfig `mapstructure:"renewal"`
	Log     LogConfig     `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SessionConfig struct {
	Path string `mapstructure:"path"`
}

type SecretsConfig struct {
	Backend    string `mapstructure:"backend"`
	Dir        string `mapstructure:"dir"`
	PassBinary string `mapstructure:"pass_binary"`
}

type RenewalConfig struct {
	CycleDays    int    `mapstructure:"cycle_days"`
	CalendarDays bool   `mapstructure:"calendar_days"`
	DateZone     string `mapstructure:"date_zone"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Dir returns ~/.config/subs.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "subs"), nil
}

// Load merges defaults, the TOML config file and SUBS_* environment variables,
// env winning. An explicit path must exist; the default file is optional. The
// returned viper instance is shared with adapters that read their own keys.
func Load(path string) (*Config, *viper.Viper, error) {
	dir, err := Dir()
	if err != nil {
		return nil, nil, err
	}

	v := viper.New()
	setDefaults(v, dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return &cfg, v, nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault(KeyAPIBaseURL, "http://localhost:8090/api")
	v.SetDefault(KeyAPITimeout, 30*time.Second)
	v.SetDefault(KeySessionPath, filepath.Join(dir, "session.toml"))
	v.SetDefault(KeySecretsBackend, SecretsBackendChain)
	v.SetDefault(KeySecretsDir, filepath.Join(dir, "secrets"))
	v.SetDefault(KeySecretsPassBinary, "pass")
	v.SetDefault(KeyRenewalCycleDays, domain.DefaultCycleDays)
	v.SetDefault(KeyRenewalCalendarDays, false)
	v.SetDefault(KeyRenewalDateZone, "")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, LogFormatConsole)
}

func (c *Config) normalize() {
	c.API.BaseURL = strings.TrimSpace(c.API.BaseURL)
	c.Secrets.Backend = strings.ToLower(strings.TrimSpace(c.Secrets.Backend))
	c.Renewal.DateZone = strings.TrimSpace(c.Renewal.DateZone)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

func (c *Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyAPIBaseURL))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyAPITimeout))
	}

	switch c.Secrets.Backend {
	case SecretsBackendChain, SecretsBackendFile, SecretsBackendPass:
	default:
		errs = append(errs, fmt.Errorf("%s must be one of chain, file, pass: got %q", KeySecretsBackend, c.Secrets.Backend))
	}

	if c.Renewal.CycleDays <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyRenewalCycleDays))
	}
	if _, err := c.dateLocation(); err != nil {
		errs = append(errs, err)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyLogLevel, err))
	}
	switch c.Log.Format {
	case LogFormatConsole, LogFormatJSON:
	default:
		errs = append(errs, fmt.Errorf("%s must be console or json: got %q", KeyLogFormat, c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Evaluator builds the renewal evaluator described by the renewal.* keys.
func (c *Config) Evaluator() (domain.RenewalEvaluator, error) {
	loc, err := c.dateLocation()
	if err != nil {
		return domain.RenewalEvaluator{}, err
	}

	return domain.RenewalEvaluator{
		CycleDays:    c.Renewal.CycleDays,
		DateLocation: loc,
		CalendarDays: c.Renewal.CalendarDays,
	}, nil
}

func (c *Config) dateLocation() (*time.Location, error) {
	if c.Renewal.DateZone == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(c.Renewal.DateZone)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyRenewalDateZone, err)
	}
	return loc, nil
}
