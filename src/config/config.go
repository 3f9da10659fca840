package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	aws_handler "server/src/utils/aws"
)

type Config struct {
	Service   ServiceConfig   `mapstructure:"service"`
	Databases DatabasesConfig `mapstructure:"databases"`
	Auth      AuthConfig      `mapstructure:"auth"`
}

type ServiceConfig struct {
	Port         string  `mapstructure:"port"`
	StartingCash float64 `mapstructure:"startingCash"`
}

type DatabasesConfig struct {
	SQL SQLConfig `mapstructure:"sql"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Driver           string `mapstructure:"driver"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

// AuthConfig carries the token signing secret. It is resolved once at load
// time; nothing else in the process reads secret material from the
// environment after this.
type AuthConfig struct {
	Secret     string `mapstructure:"secret"`
	SecretName string `mapstructure:"secretName"`
	AWSRegion  string `mapstructure:"awsRegion"`
}

func LoadConfig(path, env string) (*Config, error) {
	var cfg Config

	// Optional .env overlay for local development
	_ = godotenv.Load()

	viper.AddConfigPath(path)
	if env != "" {
		viper.SetConfigName("appsettings." + env)
	} else {
		viper.SetConfigName("appsettings")
	}
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if err := resolveAuthSecret(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveAuthSecret fills cfg.Auth.Secret from AWS Secrets Manager when a
// secret name is configured instead of an inline value.
func resolveAuthSecret(cfg *Config) error {
	if cfg.Auth.Secret != "" {
		return nil
	}
	if cfg.Auth.SecretName == "" {
		if secret := viper.GetString("AUTH_SECRET"); secret != "" {
			cfg.Auth.Secret = secret
			return nil
		}
		return fmt.Errorf("no auth secret configured: set auth.secret or auth.secretName")
	}

	awsHandler, err := aws_handler.NewAWSHandler(cfg.Auth.AWSRegion)
	if err != nil {
		return err
	}
	secret, err := awsHandler.SecretManager.GetSecretValue(cfg.Auth.SecretName)
	if err != nil {
		return fmt.Errorf("failed to fetch auth secret %s: %w", cfg.Auth.SecretName, err)
	}
	cfg.Auth.Secret = secret
	return nil
}
