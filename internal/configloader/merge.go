package configloader

import "github.com/yaklabco/reindent/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	// Start with a shallow copy of base
	result := *base

	// Scalars: override overwrites base if set (non-zero value)
	if override.MarginPrefix != "" {
		result.MarginPrefix = override.MarginPrefix
	}
	if override.FenceLevel != 0 {
		result.FenceLevel = override.FenceLevel
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Booleans: these are tricky because false is the zero value.
	// For Write, Check, List, Diff, NoBackups - we check if they're true in
	// override. This means CLI --write will override, but config file cannot
	// unset.
	if override.Write {
		result.Write = override.Write
	}
	if override.Check {
		result.Check = override.Check
	}
	if override.List {
		result.List = override.List
	}
	if override.Diff {
		result.Diff = override.Diff
	}
	if override.NoBackups {
		result.NoBackups = override.NoBackups
	}

	// Backups: merge individual fields
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	// For Enabled, we need to handle it specially since false is meaningful.
	// The BackupsConfig struct uses bool directly, so we can only detect
	// "true" being set. Use backups.mode: none to switch backups off.
	if override.Backups.Enabled {
		result.Backups.Enabled = override.Backups.Enabled
	}

	// Slices: override replaces base entirely if non-nil
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
