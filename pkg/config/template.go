package config

// Template returns the starter configuration written by reindent init.
func Template() []byte {
	return []byte(`# reindent configuration
# See: https://github.com/yaklabco/reindent

# Margin delimiter for the margin command
margin_prefix: "|"

# Default body level for the fences command
# fence_level: 0

# File extensions to process when walking directories (empty = all files)
# extensions:
#   - .txt
#   - .md

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# Backups for in-place rewrites
backups:
  enabled: true
  mode: sidecar

# Number of parallel workers (0 = one per CPU)
# jobs: 0
`)
}

// FullTemplate renders the complete default configuration with every field
// spelled out.
func FullTemplate() ([]byte, error) {
	return NewConfig().ToYAMLWithHeader(DefaultTemplateHeader())
}

// DefaultTemplateHeader returns the comment header for generated configs.
func DefaultTemplateHeader() string {
	return `# reindent configuration
# See: https://github.com/yaklabco/reindent`
}
