// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"strings"

	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config layers flags over RAIDEN_DEPLOY_* environment variables over the
// config file over flag defaults.
type Config struct {
	v *viper.Viper
}

func New() *Config {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &Config{v: v}
}

// ReadFile loads path as the config file.
func (c *Config) ReadFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// ReadDefault loads <dir>/config.json when it exists.
func (c *Config) ReadDefault(dir string) error {
	c.v.AddConfigPath(dir)
	c.v.SetConfigName(constants.DefaultConfigFileName)
	c.v.SetConfigType(constants.DefaultConfigFileType)
	err := c.v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return err
	}
	return nil
}

// BindFlags makes the values of flags resolvable by name.
func (c *Config) BindFlags(flags *pflag.FlagSet) error {
	return c.v.BindPFlags(flags)
}

func (c *Config) GetConfigStringValue(key string) string {
	return c.v.GetString(key)
}

func (c *Config) GetConfigUint64Value(key string) uint64 {
	return c.v.GetUint64(key)
}

func (c *Config) ConfigFileExists() bool {
	return c.v.ConfigFileUsed() != ""
}

// GetConfigPath returns the path to the configuration file
func (c *Config) GetConfigPath() string {
	return c.v.ConfigFileUsed()
}
