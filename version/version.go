// Package version compares the running build against the latest published release.
package version

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/metafates/gache"

	"github.com/zapp-cli/zapp/filesystem"
	"github.com/zapp-cli/zapp/network"
	"github.com/zapp-cli/zapp/util"
	"github.com/zapp-cli/zapp/where"
)

const releasesAPI = "https://api.github.com/repos/zapp-cli/zapp/releases/latest"

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest returns the version of the newest published release.
// Lookups are cached for two days.
func Latest() (string, error) {
	cached, expired, err := versionCacher.Get()
	if err == nil && !expired && cached != "" {
		return cached, nil
	}

	version, err := fetchLatest()
	if err != nil {
		return "", err
	}

	_ = versionCacher.Set(version)
	return version, nil
}

// fetchLatest asks the GitHub releases API for the newest release tag.
func fetchLatest() (string, error) {
	resp, err := network.Client.Get(releasesAPI)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	var release struct {
		TagName string `json:"tag_name"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("release has no tag name")
	}

	return strings.TrimPrefix(release.TagName, "v"), nil
}
