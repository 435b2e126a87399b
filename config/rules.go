package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules controls how organisational fields are bucketed.
type Rules struct {
	// BranchMarkers truncate a value at their first occurrence.
	BranchMarkers []string `yaml:"branch_markers"`
	// Separators truncate a value at their first occurrence.
	Separators []string `yaml:"separators"`

	HeadOffice  string `yaml:"head_office"`
	Branch      string `yaml:"branch"`
	OthersLabel string `yaml:"others_label"`
}

// DefaultRules returns the built-in bucketing rules.
func DefaultRules() Rules {
	return Rules{
		BranchMarkers: []string{"CABANG"},
		Separators:    []string{"-"},
		HeadOffice:    "HO",
		Branch:        "Branch",
		OthersLabel:   "Others",
	}
}

// LoadRules reads a YAML rules file. Fields the file leaves out keep their defaults.
// An empty path returns DefaultRules.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("rules: read %q: %w", path, err)
	}

	var file Rules
	if err := yaml.Unmarshal(data, &file); err != nil {
		return rules, fmt.Errorf("rules: parse %q: %w", path, err)
	}

	if file.BranchMarkers != nil {
		rules.BranchMarkers = file.BranchMarkers
	}
	if file.Separators != nil {
		rules.Separators = file.Separators
	}
	if file.HeadOffice != "" {
		rules.HeadOffice = file.HeadOffice
	}
	if file.Branch != "" {
		rules.Branch = file.Branch
	}
	if file.OthersLabel != "" {
		rules.OthersLabel = file.OthersLabel
	}
	return rules, nil
}
