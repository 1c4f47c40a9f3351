package services

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"gopkg.in/yaml.v3"
)

// identRegex constrains project and assay identifiers to characters that are
// safe inside sheet and file names.
var identRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// RunConfig selects what one generated workbook contains. The yaml tags match
// the config file layout used by the CLI.
type RunConfig struct {
	ProjectID            string   `yaml:"project_id"`
	AssayType            string   `yaml:"assay_type"`
	AssayNames           []string `yaml:"assay_name"`
	RequirementLevels    []string `yaml:"req_lev"`
	SampleTypes          []string `yaml:"sample_type"`
	ProjectUserFields    []string `yaml:"projectMetadata_user"`
	SampleUserFields     []string `yaml:"sampleMetadata_user"`
	ExperimentUserFields []string `yaml:"experimentRunMetadata_user"`
}

// LoadRunConfig reads a YAML run configuration. A missing req_lev key keeps
// every requirement level.
func LoadRunConfig(path string) (RunConfig, error) {
	var cfg RunConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read run config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse run config: %w", err)
	}
	if cfg.RequirementLevels == nil {
		cfg.RequirementLevels = append([]string(nil), RequirementLevelCodes...)
	}
	return cfg, nil
}

// ConfigFromRecord maps a projects record onto a RunConfig.
func ConfigFromRecord(record *core.Record) RunConfig {
	cfg := RunConfig{
		ProjectID:            record.GetString("project_id"),
		AssayType:            record.GetString("assay_type"),
		AssayNames:           record.GetStringSlice("assay_names"),
		RequirementLevels:    record.GetStringSlice("req_levels"),
		SampleTypes:          record.GetStringSlice("sample_types"),
		ProjectUserFields:    record.GetStringSlice("project_user_fields"),
		SampleUserFields:     record.GetStringSlice("sample_user_fields"),
		ExperimentUserFields: record.GetStringSlice("experiment_user_fields"),
	}
	if len(cfg.RequirementLevels) == 0 {
		cfg.RequirementLevels = append([]string(nil), RequirementLevelCodes...)
	}
	return cfg
}

// Validate checks the configuration and canonicalizes requirement levels and
// sample types to their checklist casing. It reports the first problem found.
func (cfg *RunConfig) Validate() error {
	// 1. Identifiers
	if cfg.ProjectID == "" {
		return fmt.Errorf("project_id is required")
	}
	if !identRegex.MatchString(cfg.ProjectID) {
		return fmt.Errorf("project_id %q may only contain letters, digits, '_' and '-'", cfg.ProjectID)
	}

	// 2. Assay type and names
	if cfg.AssayType != AssayMetabarcoding && cfg.AssayType != AssayTargeted {
		return fmt.Errorf("assay_type must be %q or %q, got %q", AssayMetabarcoding, AssayTargeted, cfg.AssayType)
	}
	if len(cfg.AssayNames) == 0 {
		return fmt.Errorf("at least one assay_name is required")
	}
	seen := make(map[string]bool, len(cfg.AssayNames))
	for _, name := range cfg.AssayNames {
		if !identRegex.MatchString(name) {
			return fmt.Errorf("assay_name %q may only contain letters, digits, '_' and '-'", name)
		}
		if seen[name] {
			return fmt.Errorf("assay_name %q is listed twice", name)
		}
		seen[name] = true
	}

	// 3. Requirement levels
	if len(cfg.RequirementLevels) == 0 {
		return fmt.Errorf("at least one requirement level is required")
	}
	canonLevels, err := canonicalize(cfg.RequirementLevels, RequirementLevelCodes, "requirement level")
	if err != nil {
		return err
	}
	cfg.RequirementLevels = canonLevels

	// 4. Sample types
	if len(cfg.SampleTypes) == 0 {
		return fmt.Errorf("at least one sample_type is required")
	}
	canonTypes, err := canonicalize(cfg.SampleTypes, SampleTypes, "sample_type")
	if err != nil {
		return err
	}
	cfg.SampleTypes = canonTypes

	return nil
}

// HasOtherSampleType reports whether the sentinel "other" sample type is
// selected, which disables sample-type filtering.
func (cfg *RunConfig) HasOtherSampleType() bool {
	for _, st := range cfg.SampleTypes {
		if strings.EqualFold(st, "other") {
			return true
		}
	}
	return false
}

// ExpandsPerAssay reports whether detected_notDetected fields split into one
// field per assay name.
func (cfg *RunConfig) ExpandsPerAssay() bool {
	return cfg.AssayType == AssayTargeted && len(cfg.AssayNames) > 1
}

// HasLevel reports whether a requirement level code is selected.
func (cfg *RunConfig) HasLevel(code string) bool {
	for _, lev := range cfg.RequirementLevels {
		if lev == code {
			return true
		}
	}
	return false
}

// canonicalize maps values case-insensitively onto the allowed list, keeping
// the allowed casing and dropping duplicates.
func canonicalize(values, allowed []string, what string) ([]string, error) {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		matched := ""
		for _, a := range allowed {
			if strings.EqualFold(v, a) {
				matched = a
				break
			}
		}
		if matched == "" {
			return nil, fmt.Errorf("unknown %s %q (allowed: %s)", what, v, strings.Join(allowed, ", "))
		}
		if !seen[matched] {
			seen[matched] = true
			out = append(out, matched)
		}
	}
	return out, nil
}
