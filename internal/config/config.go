package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ytcatalog/internal/dirs"
)

// Viper keys.
const (
	KeyAPIKey  = "api_key"
	KeyDataDir = "data_dir"
	KeyMaxQPS  = "max_qps"
	KeyVerbose = "verbose"
)

// DotEnvFile is read from the working directory when present.
const DotEnvFile = ".env"

// PlaceholderKey is the sample value shipped in .env templates.
const PlaceholderKey = "your_api_key_here"

// ErrMissingCredential is returned when no usable API key is configured.
var ErrMissingCredential = errors.New("YouTube API key not found or not configured")

const remediation = "set YOUTUBE_API_KEY in the environment or in a .env file " +
	"(create a key at https://console.cloud.google.com/apis/credentials)"

// Config is the effective runtime configuration.
type Config struct {
	APIKey  string
	DataDir string
	MaxQPS  float64
	Verbose bool
}

// Init wires Viper with config paths, env, the working-directory .env file,
// defaults and flag bindings. A missing config file is not an error.
func Init(root *cobra.Command) error {
	return setup(viper.GetViper(), root.PersistentFlags(), ".")
}

// Load returns the configuration resolved by Init.
func Load() Config {
	return fromViper(viper.GetViper())
}

func setup(v *viper.Viper, flags *pflag.FlagSet, workDir string) error {
	v.SetDefault(KeyDataDir, "data")
	v.SetDefault(KeyMaxQPS, 0.0)

	if cfgDir, err := dirs.ConfigDir(); err == nil {
		v.AddConfigPath(cfgDir)
	}
	v.SetConfigName("config") // supports config.{yaml|yml|json|toml}

	// Environment variables: YTCATALOG_*, plus the conventional YOUTUBE_API_KEY
	v.SetEnvPrefix("YTCATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyAPIKey, "YOUTUBE_API_KEY", "YTCATALOG_API_KEY")

	if flags != nil {
		_ = v.BindPFlag(KeyAPIKey, flags.Lookup("api-key"))
		_ = v.BindPFlag(KeyDataDir, flags.Lookup("data-dir"))
		_ = v.BindPFlag(KeyMaxQPS, flags.Lookup("max-qps"))
		_ = v.BindPFlag(KeyVerbose, flags.Lookup("verbose"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return mergeDotEnv(v, filepath.Join(workDir, DotEnvFile))
}

// mergeDotEnv layers a dotenv file above the config file and below real
// environment variables and flags.
func mergeDotEnv(v *viper.Viper, path string) error {
	env := viper.New()
	env.SetConfigFile(path)
	env.SetConfigType("env")
	if err := env.ReadInConfig(); err != nil {
		// absent .env is the common case
		return nil
	}

	values := map[string]any{}
	for _, k := range env.AllKeys() {
		switch {
		case k == "youtube_api_key":
			values[KeyAPIKey] = env.GetString(k)
		case strings.HasPrefix(k, "ytcatalog_"):
			values[strings.TrimPrefix(k, "ytcatalog_")] = env.Get(k)
		}
	}
	if len(values) == 0 {
		return nil
	}
	if err := v.MergeConfigMap(values); err != nil {
		return fmt.Errorf("merge %s: %w", path, err)
	}
	return nil
}

func fromViper(v *viper.Viper) Config {
	return Config{
		APIKey:  strings.TrimSpace(v.GetString(KeyAPIKey)),
		DataDir: v.GetString(KeyDataDir),
		MaxQPS:  v.GetFloat64(KeyMaxQPS),
		Verbose: v.GetBool(KeyVerbose),
	}
}

// Credential returns the API key or ErrMissingCredential with remediation text.
func (c Config) Credential() (string, error) {
	switch c.APIKey {
	case "":
		return "", fmt.Errorf("%w; %s", ErrMissingCredential, remediation)
	case PlaceholderKey:
		return "", fmt.Errorf("%w (placeholder %q still set); %s", ErrMissingCredential, PlaceholderKey, remediation)
	}
	return c.APIKey, nil
}
