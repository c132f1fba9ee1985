// Package config defines the application settings and wires them into viper.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"github.com/zapp-cli/zapp/constant"
	"github.com/zapp-cli/zapp/filesystem"
	"github.com/zapp-cli/zapp/where"
)

// EnvKeyReplacer maps config key separators to their environment form.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup wires defaults, environment bindings and the config file into
// the global viper state. A missing config file is not an error.
func Setup() error {
	viper.SetConfigName(constant.Zapp)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Zapp)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.MustBindEnv(name)
		viper.SetDefault(name, field.Value)
	}

	err := viper.ReadInConfig()

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}

	return err
}
