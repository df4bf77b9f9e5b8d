// Package config loads the tracker connection settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fogz-io/fogz/src/internal/fields"
)

// Config models fogz.yml.
type Config struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	// Remote column names of the optional custom case fields. Leave a name
	// empty to disable the field.
	CustomFields struct {
		FeatureBranch    string `yaml:"feature_branch"`
		OriginalBranch   string `yaml:"original_branch"`
		TargetBranch     string `yaml:"target_branch"`
		ApprovedRevision string `yaml:"approved_revision"`
		CIProject        string `yaml:"ci_project"`
	} `yaml:"custom_fields"`

	// User ids of the automated role accounts.
	Roles struct {
		Mergekeeper int `yaml:"mergekeeper"`
		Gatekeeper  int `yaml:"gatekeeper"`
	} `yaml:"roles"`
}

// Load reads and validates config from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config %s not found", path)
		}
		return nil, err
	}
	return FromYAML(data)
}

// FromYAML parses and validates raw config bytes.
func FromYAML(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("config.url is required")
	}
	if c.Token == "" {
		return fmt.Errorf("config.token is required")
	}
	if c.Roles.Mergekeeper < 0 || c.Roles.Gatekeeper < 0 {
		return fmt.Errorf("config.roles ids must not be negative")
	}
	return nil
}

// Catalog maps the configured custom field names onto the field catalog.
func (c *Config) Catalog() fields.Catalog {
	return fields.Catalog{
		FeatureBranch:    c.CustomFields.FeatureBranch,
		OriginalBranch:   c.CustomFields.OriginalBranch,
		TargetBranch:     c.CustomFields.TargetBranch,
		ApprovedRevision: c.CustomFields.ApprovedRevision,
		CIProject:        c.CustomFields.CIProject,
	}
}
