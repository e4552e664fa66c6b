// Package config loads Parse connection settings.
//
// Sources, lowest precedence first: built-in defaults, parse.yaml in the
// config directory, a .env file in the same directory, and PARSE_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/roach88/parsemapper/internal/parse"
)

const (
	FileName  = "parse"
	EnvPrefix = "PARSE"
)

// Config is the resolved connection configuration.
type Config struct {
	AppID   string        `validate:"required"`
	APIKey  string        `validate:"required"`
	Master  bool
	Host    string        `validate:"required,url"`
	Version string        `validate:"required,numeric"`
	Timeout time.Duration `validate:"gte=0"`

	// Journal is the SQLite path calls are journaled to. Empty disables it.
	Journal string
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Host:    parse.DefaultHost,
		Version: parse.DefaultVersion,
		Timeout: 30 * time.Second,
	}
}

var keys = []string{"app_id", "api_key", "master", "host", "version", "timeout", "journal"}

// Load resolves the configuration from dir. An empty dir means the working
// directory. Missing parse.yaml and .env files are not errors.
func Load(dir string) (Config, error) {
	if dir == "" {
		dir = "."
	}
	if err := loadDotEnv(filepath.Join(dir, ".env")); err != nil {
		return Config{}, err
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if v.IsSet("app_id") {
		cfg.AppID = v.GetString("app_id")
	}
	if v.IsSet("api_key") {
		cfg.APIKey = v.GetString("api_key")
	}
	if v.IsSet("master") {
		cfg.Master = v.GetBool("master")
	}
	if v.IsSet("host") {
		cfg.Host = v.GetString("host")
	}
	if v.IsSet("version") {
		cfg.Version = v.GetString("version")
	}
	if v.IsSet("timeout") {
		cfg.Timeout = v.GetDuration("timeout")
	}
	if v.IsSet("journal") {
		cfg.Journal = v.GetString("journal")
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

var validate = validator.New()

// Validate checks that the configuration can reach a Parse server.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Parse returns the client configuration.
func (c Config) Parse() parse.Config {
	return parse.Config{
		AppID:   c.AppID,
		APIKey:  c.APIKey,
		Master:  c.Master,
		Host:    c.Host,
		Version: c.Version,
		Timeout: c.Timeout,
	}
}
