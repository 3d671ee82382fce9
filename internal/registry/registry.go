// Package registry loads the declarative resort list from resorts.yaml.
package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/tahoe-conditions/internal/logger"
)

// Resort is one registry entry. Entries are immutable once loaded.
type Resort struct {
	Slug      string  `yaml:"slug"`
	Name      string  `yaml:"name"`
	Kind      string  `yaml:"kind"`
	SourceURL string  `yaml:"source_url"`
	Lat       float64 `yaml:"lat"`
	Lon       float64 `yaml:"lon"`
	Enabled   bool    `yaml:"-"`
	Note      string  `yaml:"note"`
}

type rawResort struct {
	Resort  `yaml:",inline"`
	Enabled *bool `yaml:"enabled"`
}

type registryFile struct {
	Resorts []rawResort `yaml:"resorts"`
}

// Load reads and validates the registry file. A missing or malformed file
// is an error; individual invalid entries are logged and skipped.
func Load(path string) ([]Resort, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry %s: %w", path, err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing registry %s: %w", path, err)
	}

	resorts := make([]Resort, 0, len(file.Resorts))
	for _, raw := range file.Resorts {
		if err := validate(raw.Resort); err != nil {
			logger.Warn("Skipping invalid registry entry", logger.Fields{
				"slug":  raw.Slug,
				"error": err.Error(),
			})
			continue
		}
		r := raw.Resort
		// enabled defaults to true when omitted
		r.Enabled = raw.Enabled == nil || *raw.Enabled
		resorts = append(resorts, r)
	}

	logger.Info("Loaded registry", logger.Fields{
		"path":    path,
		"resorts": len(resorts),
	})

	return resorts, nil
}

// LoadEnabled returns only the enabled registry entries.
func LoadEnabled(path string) ([]Resort, error) {
	all, err := Load(path)
	if err != nil {
		return nil, err
	}

	enabled := make([]Resort, 0, len(all))
	for _, r := range all {
		if r.Enabled {
			enabled = append(enabled, r)
		}
	}
	return enabled, nil
}

func validate(r Resort) error {
	switch {
	case r.Slug == "":
		return fmt.Errorf("missing slug")
	case r.Name == "":
		return fmt.Errorf("missing name")
	case r.Kind == "":
		return fmt.Errorf("missing kind")
	case r.SourceURL == "":
		return fmt.Errorf("missing source_url")
	case r.Lat < -90 || r.Lat > 90:
		return fmt.Errorf("latitude %v out of range", r.Lat)
	case r.Lon < -180 || r.Lon > 180:
		return fmt.Errorf("longitude %v out of range", r.Lon)
	}
	return nil
}
