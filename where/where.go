// Package where resolves the filesystem locations the application owns.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/zapp-cli/zapp/constant"
	"github.com/zapp-cli/zapp/filesystem"
)

// EnvConfigPath overrides the configuration directory when set.
const EnvConfigPath = "ZAPP_CONFIG_PATH"

// mkdir creates the directory when missing and hands the path back.
func mkdir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config returns the configuration directory. The platform convention
// decides the base (XDG on Linux, Library/Application Support on Darwin,
// AppData on Windows) unless ZAPP_CONFIG_PATH points somewhere else.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return mkdir(custom)
	}

	return mkdir(filepath.Join(lo.Must(os.UserConfigDir()), constant.Zapp))
}

// Cache returns the cache directory. When the platform reports no user
// cache location the directory nests under Config instead.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return mkdir(filepath.Join(Config(), "cache"))
	}

	return mkdir(filepath.Join(base, constant.Zapp))
}

// Logs returns the directory the daily log files are written to.
func Logs() string {
	return mkdir(filepath.Join(Config(), "logs"))
}

// History returns the playback position store.
func History() string {
	return filepath.Join(Config(), "positions.json")
}

// Recents returns the channel watch frequency store.
func Recents() string {
	return filepath.Join(Cache(), "recents.json")
}
