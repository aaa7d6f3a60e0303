package cli

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/gads/pkg/types"
)

const (
	configFileName = ".gads"
	configFileType = "yaml"
	envPrefix      = "GADS"

	cfgKeyURI      = "uri"
	cfgKeyUsername = "username"
	cfgKeyPassword = "password"
	cfgKeyDatabase = "database"
)

// loadConfig reads the store configuration from the given file (or
// .gads.yaml in the working directory) merged with GADS_* environment
// variables. The environment wins over the file. A missing config file is
// not an error; a missing URI is.
func loadConfig(configFile string) (types.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault(cfgKeyUsername, "neo4j")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configFile != "" {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	config := types.Config{
		URI:      v.GetString(cfgKeyURI),
		Username: v.GetString(cfgKeyUsername),
		Password: v.GetString(cfgKeyPassword),
		Database: v.GetString(cfgKeyDatabase),
	}
	if err := config.Validate(); err != nil {
		return types.Config{}, err
	}
	return config, nil
}
