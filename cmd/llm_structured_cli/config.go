package main

import (
	"os"

	"gopkg.in/yaml.v2"
)

// cliDefaults mirrors the teacher's cmd/api/main.go config/models.yaml
// loading: a small YAML file supplying default values for flags the caller
// would otherwise have to repeat on every invocation.
type cliDefaults struct {
	Schema     string `yaml:"schema"`
	RepairOnly bool   `yaml:"repairOnly"`
	Verbose    bool   `yaml:"verbose"`
}

// applyConfigDefaults loads path as YAML and fills any flag the caller left
// at its zero value. Flags explicitly set on the command line always win;
// cobra has already parsed them into the package vars by the time
// PersistentPreRun calls this, so "left at zero value" is a reasonable
// proxy for "not given" for this CLI's flag set.
func applyConfigDefaults(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return usageErrorf("read config %s: %w", path, err)
	}
	var cfg cliDefaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return usageErrorf("config %s is not valid YAML: %w", path, err)
	}
	if schemaPath == "" {
		schemaPath = cfg.Schema
	}
	if !repairOnly {
		repairOnly = cfg.RepairOnly
	}
	if !verbose {
		verbose = cfg.Verbose
	}
	return nil
}
