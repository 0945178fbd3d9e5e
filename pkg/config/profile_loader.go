package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DeploymentProfile selects the regulatory posture of a deployment: which
// standards are mandatory on dashboards and whether analyses default to
// LOPA being in use.
type DeploymentProfile struct {
	Name        string   `yaml:"name" json:"name"`
	Code        string   `yaml:"code" json:"code"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Standards   []string `yaml:"standards" json:"standards"`
	DefaultLOPA bool     `yaml:"default_lopa" json:"default_lopa"`
	CatalogDir  string   `yaml:"catalog_dir,omitempty" json:"catalog_dir,omitempty"`
}

// LoadProfile loads a deployment profile YAML by code. It searches the
// profile directory for profile_<code>.yaml.
func LoadProfile(profileDir, code string) (*DeploymentProfile, error) {
	code = strings.ToLower(code)
	path := filepath.Join(profileDir, fmt.Sprintf("profile_%s.yaml", code))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", code, err)
	}

	var profile DeploymentProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse profile %q: %w", code, err)
	}

	if profile.Code == "" {
		profile.Code = code
	}
	if len(profile.Standards) == 0 {
		return nil, fmt.Errorf("profile %q names no standards", code)
	}
	return &profile, nil
}

// LoadAllProfiles loads every profile_*.yaml in the profile directory,
// keyed by code.
func LoadAllProfiles(profileDir string) (map[string]*DeploymentProfile, error) {
	matches, err := filepath.Glob(filepath.Join(profileDir, "profile_*.yaml"))
	if err != nil {
		return nil, err
	}

	profiles := make(map[string]*DeploymentProfile, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		var profile DeploymentProfile
		if err := yaml.Unmarshal(data, &profile); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}

		if profile.Code == "" {
			// profile_us.yaml -> us
			base := filepath.Base(path)
			profile.Code = strings.TrimSuffix(strings.TrimPrefix(base, "profile_"), ".yaml")
		}
		profiles[profile.Code] = &profile
	}
	return profiles, nil
}

// HasStandard reports whether the profile makes a standard mandatory.
func (p *DeploymentProfile) HasStandard(id string) bool {
	for _, s := range p.Standards {
		if s == id {
			return true
		}
	}
	return false
}
