// Package config defines the configuration types for reindent.
// These are pure data structures; discovery, merging, and validation live in
// internal/configloader.
package config

// BackupsConfig controls backup behavior for in-place rewrites.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// Config is the root configuration structure for reindent.
type Config struct {
	// MarginPrefix is the margin delimiter used by the margin command when
	// no --prefix flag is given.
	MarginPrefix string `yaml:"margin_prefix"`

	// FenceLevel is the default body level for the fences command.
	FenceLevel int `yaml:"fence_level"`

	// Extensions limits directory discovery to files with these extensions,
	// with or without the leading dot. Empty means all files.
	Extensions []string `yaml:"extensions"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	// Backups configures backups for in-place rewrites.
	Backups BackupsConfig `yaml:"backups"`

	// Jobs is the number of parallel workers. 0 means one per CPU.
	Jobs int `yaml:"jobs"`

	// CLI-level options (not persisted to config files).

	// Write rewrites files in place.
	Write bool `yaml:"-"`

	// Check reports whether any file would change, without writing.
	Check bool `yaml:"-"`

	// List prints only the paths of files that would change.
	List bool `yaml:"-"`

	// Diff prints unified diffs instead of transformed content.
	Diff bool `yaml:"-"`

	// Format is the output format name, validated by the reporter.
	Format string `yaml:"-"`

	// NoBackups disables backup creation for this run.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with the documented defaults.
func NewConfig() *Config {
	return &Config{
		MarginPrefix: "|",
		FenceLevel:   0,
		Extensions:   nil,
		Ignore:       nil,
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Jobs:   0, // 0 means one worker per CPU
		Format: "text",
	}
}
