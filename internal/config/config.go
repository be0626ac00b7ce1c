package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// AppConfig holds fleet-specific configuration.
type AppConfig struct {
	// Image is the tag given to the built image and the image every
	// container is started from.
	Image string `mapstructure:"image"`
	// User and Password are the test credentials baked into the image.
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	// Containerfile is the path to the build definition. Empty means
	// "Dockerfile in the same directory as the executable".
	Containerfile string `mapstructure:"containerfile"`
}

// RuntimeConfig describes how the container runtime CLI is invoked.
type RuntimeConfig struct {
	Binary string `mapstructure:"binary"`
	Sudo   bool   `mapstructure:"sudo"`
}

// LoggingConfig holds the logging-related configuration.
type LoggingConfig struct {
	Level string `mapstructure:"log_level"`
}

// Config is the top-level configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Runtime RuntimeConfig `mapstructure:"runtime"`
	Logging LoggingConfig `mapstructure:"log"`
}

// InitConfig performs the initial configuration: setting defaults, specifying the config file, and reading it.
func InitConfig() error {
	// Set defaults for each sub-configuration.
	viper.SetDefault("app.image", "ubuntu-ssh")
	viper.SetDefault("app.user", "test_user")
	viper.SetDefault("app.password", "1234")
	viper.SetDefault("app.containerfile", "")
	viper.SetDefault("runtime.binary", "podman")
	viper.SetDefault("runtime.sudo", true)
	viper.SetDefault("log.log_level", "INFO")

	// Specify the config file details.
	viper.SetConfigName("config") // Looks for config.yaml
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".") // current directory

	// Read the config file if available.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// If the file is not found, just continue with defaults and env vars.
	}

	// Enable automatic environment variable binding.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return nil
}

// Load unmarshals the configuration into the Config struct.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &config, nil
}
