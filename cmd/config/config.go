// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/xataio/clinnorm/pkg/cleanup"
	"github.com/xataio/clinnorm/pkg/otel"
)

var errUnsupportedConfigFormat = errors.New("config file must have an .env, .yaml or .yml extension")

func Load() error {
	return LoadFile(viper.GetString("config"))
}

func LoadFile(file string) error {
	if file == "" {
		return nil
	}
	ext := filepath.Ext(file)
	if ext == "" {
		return fmt.Errorf("reading config %s: %w", file, errUnsupportedConfigFormat)
	}
	viper.SetConfigFile(file)
	viper.SetConfigType(ext[1:])
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// LogLevel returns the log level, set by the --log-level flag or the
// CLINNORM_LOG_LEVEL variable.
func LogLevel() string {
	return viper.GetString("CLINNORM_LOG_LEVEL")
}

func ParseCleanupConfig() (*cleanup.Config, error) {
	if isYAMLConfig() {
		yamlCfg := YAMLConfig{}
		if err := viper.Unmarshal(&yamlCfg); err != nil {
			return nil, err
		}
		return yamlCfg.toCleanupConfig()
	}
	return envConfigToCleanupConfig()
}

func ParseInstrumentationConfig() (*otel.Config, error) {
	if isYAMLConfig() {
		yamlCfg := YAMLConfig{}
		if err := viper.Unmarshal(&yamlCfg); err != nil {
			return nil, err
		}
		return yamlCfg.toOtelConfig()
	}
	return envToOtelConfig()
}

func isYAMLConfig() bool {
	switch filepath.Ext(viper.GetViper().ConfigFileUsed()) {
	case ".yml", ".yaml":
		return true
	default:
		return false
	}
}
