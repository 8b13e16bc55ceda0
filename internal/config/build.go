package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// BuildConfig is the subset of the app build configuration the client reads.
// JSON files parse as well since JSON is valid YAML.
type BuildConfig struct {
	ExpoConfig struct {
		Extra struct {
			EAS struct {
				ProjectID string `yaml:"projectId"`
			} `yaml:"eas"`
		} `yaml:"extra"`
	} `yaml:"expoConfig"`
	EASConfig struct {
		ProjectID string `yaml:"projectId"`
	} `yaml:"easConfig"`
}

// LoadBuildConfig reads the build configuration at path. A missing file
// yields an empty config.
func LoadBuildConfig(path string) (*BuildConfig, error) {
	bc := &BuildConfig{}
	if path == "" {
		return bc, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return bc, nil
		}
		return nil, fmt.Errorf("read build config: %w", err)
	}
	if err := yaml.Unmarshal(raw, bc); err != nil {
		return nil, fmt.Errorf("parse build config %s: %w", path, err)
	}
	return bc, nil
}

// WithFallbackProjectID fills the fallback location when the file left it empty.
func (b *BuildConfig) WithFallbackProjectID(projectID string) *BuildConfig {
	if b.EASConfig.ProjectID == "" {
		b.EASConfig.ProjectID = strings.TrimSpace(projectID)
	}
	return b
}

// ResolveProjectID returns the primary project id, then the fallback one.
func (b *BuildConfig) ResolveProjectID() (string, bool) {
	if b == nil {
		return "", false
	}
	if id := strings.TrimSpace(b.ExpoConfig.Extra.EAS.ProjectID); id != "" {
		return id, true
	}
	if id := strings.TrimSpace(b.EASConfig.ProjectID); id != "" {
		return id, true
	}
	return "", false
}
