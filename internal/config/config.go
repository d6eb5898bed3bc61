package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/mutker/zbxreport/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "ZBXREPORT"
	EnvConfig  = EnvPrefix + "_CONFIG"
	configName = "zbxreport"
	configType = "toml"

	DefaultOutput   = "metrics.xlsx"
	DefaultFormat   = "xlsx"
	DefaultTimeout  = 30
	DefaultLogLevel = string(LogLevelWarning)
)

type Config struct {
	URL        string `mapstructure:"url"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	GroupID    string `mapstructure:"group_id"`
	Output     string `mapstructure:"output"`
	Format     string `mapstructure:"format"`
	Timeout    int    `mapstructure:"timeout"`
	Insecure   bool   `mapstructure:"insecure"`
	LegacyAuth bool   `mapstructure:"legacy_auth"`
	LogLevel   string `mapstructure:"log_level"`
}

// flagKeys maps configuration keys onto their command line flags
var flagKeys = map[string]string{
	"url":         "url",
	"user":        "user",
	"password":    "password",
	"group_id":    "group-id",
	"output":      "output",
	"format":      "format",
	"timeout":     "timeout",
	"insecure":    "insecure",
	"legacy_auth": "legacy-auth",
	"log_level":   "log-level",
}

// RegisterFlags defines the command line flags understood by Load
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Path to a TOML config file (env "+EnvConfig+")")
	flags.String("url", "", "Zabbix frontend or API URL")
	flags.String("user", "", "Zabbix user name")
	flags.String("password", "", "Zabbix password (prefer env "+EnvPrefix+"_PASSWORD)")
	flags.StringP("group-id", "g", "", "Host group ID to report on")
	flags.StringP("output", "o", DefaultOutput, "Report file name")
	flags.StringP("format", "f", DefaultFormat, "Report format: csv, parquet, sqlite or xlsx")
	flags.Int("timeout", DefaultTimeout, "API request timeout in seconds")
	flags.Bool("insecure", false, "Skip TLS certificate verification")
	flags.Bool("legacy-auth", false, "Send the session token in the request body (Zabbix < 6.4)")
	flags.String("log-level", DefaultLogLevel, "Log level: debug, info, warning or error")
}

// Load reads the configuration from defaults, the config file, environment
// variables and flags, in increasing order of precedence.
func Load(flags *pflag.FlagSet) (*Config, error) {
	errFactory := errors.New()
	v := viper.New()

	v.SetDefault("url", "")
	v.SetDefault("user", "")
	v.SetDefault("password", "")
	v.SetDefault("group_id", "")
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("insecure", false)
	v.SetDefault("legacy_auth", false)
	v.SetDefault("log_level", DefaultLogLevel)

	v.SetConfigType(configType)
	if path := configPath(flags); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath("/etc")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errFactory.Wrap(errors.ErrBindFlags, err).WithData(name)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}
	cfg.trim()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func configPath(flags *pflag.FlagSet) string {
	if flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Changed {
			return f.Value.String()
		}
	}

	return os.Getenv(EnvConfig)
}

func (c *Config) trim() {
	c.URL = strings.TrimSpace(c.URL)
	c.User = strings.TrimSpace(c.User)
	c.Password = strings.TrimSpace(c.Password)
	c.GroupID = strings.TrimSpace(c.GroupID)
	c.Output = strings.TrimSpace(c.Output)
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

// Validate reports the first missing or invalid setting
func (c *Config) Validate() error {
	errFactory := errors.New()

	required := []struct {
		key   string
		value string
	}{
		{"url", c.URL},
		{"user", c.User},
		{"password", c.Password},
		{"group_id", c.GroupID},
		{"output", c.Output},
	}
	for _, r := range required {
		if r.value == "" {
			return errFactory.WithData(errors.ErrMissingConfig, r.key)
		}
	}

	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	if c.Timeout <= 0 {
		return errFactory.WithData(errors.ErrInvalidConfig, struct {
			Field string
			Value int
		}{
			Field: "timeout",
			Value: c.Timeout,
		})
	}

	return nil
}

// RequestTimeout returns the API timeout as a duration
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
