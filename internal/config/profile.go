package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile is a named bundle of scan settings, loaded from a YAML file and
// applied over the base configuration.
type Profile struct {
	Name          string `yaml:"name"`
	YearThreshold int    `yaml:"year_threshold"`
	Placeholder   string `yaml:"placeholder"`
	ReportDir     string `yaml:"report_dir"`
	ReportPrefix  string `yaml:"report_prefix"`
}

// LoadProfile reads a scan profile from path.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	profile := &Profile{}
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return profile, nil
}

// Apply overlays the profile's non-zero settings onto cfg.
func (p *Profile) Apply(cfg *Config) {
	if p == nil || cfg == nil {
		return
	}
	if p.YearThreshold > 0 {
		cfg.Scan.YearThreshold = p.YearThreshold
	}
	if strings.TrimSpace(p.Placeholder) != "" {
		cfg.Scan.Placeholder = p.Placeholder
	}
	if strings.TrimSpace(p.ReportDir) != "" {
		cfg.Report.Dir = p.ReportDir
	}
	if strings.TrimSpace(p.ReportPrefix) != "" {
		cfg.Report.Prefix = p.ReportPrefix
	}
}
