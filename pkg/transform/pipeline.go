package transform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/reindent/pkg/config"
	"github.com/yaklabco/reindent/pkg/edit"
	"github.com/yaklabco/reindent/pkg/fsutil"
	"github.com/yaklabco/reindent/pkg/langdetect"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrTransformFailure indicates the transform itself failed.
	ErrTransformFailure = errors.New("transform failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// SkipReason explains why the pipeline left a file alone.
type SkipReason string

const (
	// SkipReasonBinary marks files that look like binary data.
	SkipReasonBinary SkipReason = "binary file"

	// SkipReasonConcurrentModification marks files that changed on disk
	// between reading and writing.
	SkipReasonConcurrentModification SkipReason = "file modified during processing"
)

// FileResult is the outcome of running one operation over one file.
type FileResult struct {
	// Path is the file path that was processed.
	Path string

	// Level is the common indentation level of the original content.
	Level int

	// Language is a best-effort language tag, "" when unknown.
	Language string

	// Changed is true when the transform produced different content.
	Changed bool

	// Written is true when the file was rewritten on disk.
	Written bool

	// BackupCreated is true when a sidecar backup was created.
	BackupCreated bool

	// Skipped is true when the file was left alone.
	Skipped bool

	// SkipReason explains a skip.
	SkipReason SkipReason

	// OldSum and NewSum are the content fingerprints before and after the
	// transform. They are equal when nothing changed.
	OldSum uint64
	NewSum uint64

	// Output is the transformed content, nil when unchanged or skipped.
	Output []byte

	// Diff is the unified diff, populated only when requested.
	Diff *edit.Diff

	// OriginalInfo is the file state at read time, nil for in-memory input.
	OriginalInfo *fsutil.FileInfo
}

// Summary returns a short human-readable outcome description.
func (fr *FileResult) Summary() string {
	switch {
	case fr.Skipped:
		return "skipped: " + string(fr.SkipReason)
	case fr.Written && fr.BackupCreated:
		return "rewritten (backup created)"
	case fr.Written:
		return "rewritten"
	case fr.Changed:
		return "would change"
	default:
		return "unchanged"
	}
}

// PipelineOptions controls behavior around the transform itself.
type PipelineOptions struct {
	// Write rewrites changed files in place.
	Write bool

	// MakeDiff attaches a unified diff to changed results.
	MakeDiff bool

	// Backup configures backups for in-place rewrites.
	Backup fsutil.BackupConfig

	// StrictRaceDetection re-hashes content for modification detection.
	// When false, only mod time and size are checked.
	StrictRaceDetection bool
}

// DefaultPipelineOptions returns sensible defaults: no writes, no diffs,
// strict modification detection.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Write:               false,
		MakeDiff:            false,
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
	}
}

// Pipeline applies one operation to files with read/transform/write safety.
type Pipeline struct {
	// Op is the operation applied to every file.
	Op Op

	// Opts carries the operation parameters.
	Opts Options
}

// NewPipeline creates a pipeline for the given operation.
func NewPipeline(op Op, opts Options) *Pipeline {
	return &Pipeline{Op: op, Opts: opts}
}

// ProcessFile runs the full pipeline for a single file.
//
// The pipeline performs the following steps:
//  1. Read and fingerprint the original file.
//  2. Skip binary files.
//  3. Apply the operation in memory.
//  4. Generate a diff when requested.
//  5. In write mode, re-check the file for concurrent modifications.
//  6. Create a backup when enabled.
//  7. Write the transformed content atomically.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*FileResult, error) {
	result := &FileResult{Path: path}

	originalContent, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}
	result.OriginalInfo = info
	result.OldSum = info.Sum
	result.NewSum = info.Sum

	if langdetect.IsBinary(originalContent) {
		result.Skipped = true
		result.SkipReason = SkipReasonBinary
		return result, nil
	}

	result.Language = langdetect.Detect(filepath.Base(path), originalContent)
	result.Level = Measure(originalContent)

	output, err := Apply(originalContent, p.Op, p.Opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransformFailure, err)
	}

	if bytes.Equal(output, originalContent) {
		return result, nil
	}

	result.Changed = true
	result.Output = output
	result.NewSum = fsutil.Fingerprint(output)

	if opts.MakeDiff {
		result.Diff = edit.NewDiff(path, originalContent, output)
	}

	if !opts.Write {
		return result, nil
	}

	modified, err := p.checkModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = SkipReasonConcurrentModification
		return result, nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, output, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent transforms in-memory content without touching the
// filesystem. It backs the stdin filter mode.
func (p *Pipeline) ProcessContent(ctx context.Context, path string, content []byte, opts PipelineOptions) (*FileResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
	default:
	}

	result := &FileResult{Path: path}
	result.OldSum = fsutil.Fingerprint(content)
	result.NewSum = result.OldSum

	if langdetect.IsBinary(content) {
		result.Skipped = true
		result.SkipReason = SkipReasonBinary
		return result, nil
	}

	result.Language = langdetect.Detect(filepath.Base(path), content)
	result.Level = Measure(content)

	output, err := Apply(content, p.Op, p.Opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransformFailure, err)
	}

	if bytes.Equal(output, content) {
		return result, nil
	}

	result.Changed = true
	result.Output = output
	result.NewSum = fsutil.Fingerprint(output)

	if opts.MakeDiff {
		result.Diff = edit.NewDiff(path, content, output)
	}

	return result, nil
}

// checkModified checks if a file has been modified since it was read.
func (p *Pipeline) checkModified(ctx context.Context, info *fsutil.FileInfo, strict bool) (bool, error) {
	if strict {
		return fsutil.CheckModified(ctx, info)
	}
	return fsutil.CheckModifiedQuick(ctx, info)
}

// categorizeError wraps an error with the matching pipeline error type.
// It uses errors.Is rather than string matching.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrTransformFailure) ||
		errors.Is(err, ErrWriteFailure)
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		Write:               cfg.Write,
		MakeDiff:            cfg.Diff,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: true,
	}
}
