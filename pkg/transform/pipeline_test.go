package transform_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/yaklabco/reindent/pkg/config"
	"github.com/yaklabco/reindent/pkg/fsutil"
	"github.com/yaklabco/reindent/pkg/transform"
)

func TestNewPipeline(t *testing.T) {
	t.Parallel()

	pipeline := transform.NewPipeline(transform.OpSet, transform.Options{Level: 2})

	if pipeline.Op != transform.OpSet {
		t.Errorf("Op = %q, want %q", pipeline.Op, transform.OpSet)
	}

	if pipeline.Opts.Level != 2 {
		t.Errorf("Opts.Level = %d, want 2", pipeline.Opts.Level)
	}
}

func TestPipeline_ProcessFile_Unchanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	content := []byte("a\nb\n")

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	pipeline := transform.NewPipeline(transform.OpStrip, transform.Options{})

	ctx := context.Background()
	result, err := pipeline.ProcessFile(ctx, path, transform.DefaultPipelineOptions())

	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if result.Path != path {
		t.Errorf("Path = %q, want %q", result.Path, path)
	}

	if result.OriginalInfo == nil {
		t.Error("OriginalInfo should be set")
	}

	if result.Changed {
		t.Error("Changed should be false for already-flat content")
	}

	if result.Written {
		t.Error("Written should be false")
	}

	if result.Output != nil {
		t.Error("Output should be nil when unchanged")
	}

	if result.OldSum != result.NewSum {
		t.Errorf("sums should match when unchanged: old=%x new=%x", result.OldSum, result.NewSum)
	}

	if result.Summary() != "unchanged" {
		t.Errorf("Summary() = %q, want unchanged", result.Summary())
	}
}

func TestPipeline_ProcessFile_CheckMode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	content := []byte("    func main() {}\n")

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	pipeline := transform.NewPipeline(transform.OpStrip, transform.Options{})

	ctx := context.Background()
	result, err := pipeline.ProcessFile(ctx, path, transform.DefaultPipelineOptions())

	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if !result.Changed {
		t.Error("Changed should be true")
	}

	if result.Written {
		t.Error("Written should be false without write mode")
	}

	if string(result.Output) != "func main() {}\n" {
		t.Errorf("Output = %q, want stripped content", result.Output)
	}

	if result.Level != 4 {
		t.Errorf("Level = %d, want 4", result.Level)
	}

	if result.Language != "go" {
		t.Errorf("Language = %q, want go", result.Language)
	}

	if result.OldSum == result.NewSum {
		t.Error("sums should differ for changed content")
	}

	if result.Summary() != "would change" {
		t.Errorf("Summary() = %q, want 'would change'", result.Summary())
	}

	// Verify file was NOT changed.
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if string(got) != string(content) {
		t.Errorf("content = %q, want %q (unchanged)", got, content)
	}
}

func TestPipeline_ProcessFile_Write(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	content := []byte("    hello\n")

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	pipeline := transform.NewPipeline(transform.OpStrip, transform.Options{})

	opts := transform.PipelineOptions{
		Write:  true,
		Backup: fsutil.BackupConfig{Enabled: false},
	}

	ctx := context.Background()
	result, err := pipeline.ProcessFile(ctx, path, opts)

	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if !result.Changed {
		t.Error("Changed should be true")
	}

	if !result.Written {
		t.Error("Written should be true")
	}

	if result.BackupCreated {
		t.Error("BackupCreated should be false with backups disabled")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if string(got) != "hello\n" {
		t.Errorf("content = %q, want 'hello\\n'", got)
	}

	if result.Summary() != "rewritten" {
		t.Errorf("Summary() = %q, want rewritten", result.Summary())
	}
}

func TestPipeline_ProcessFile_WriteWithBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	content := []byte("    original\n")

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	pipeline := transform.NewPipeline(transform.OpStrip, transform.Options{})

	opts := transform.PipelineOptions{
		Write: true,
		Backup: fsutil.BackupConfig{
			Enabled: true,
			Mode:    fsutil.BackupModeSidecar,
		},
	}

	ctx := context.Background()
	result, err := pipeline.ProcessFile(ctx, path, opts)

	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if !result.BackupCreated {
		t.Error("BackupCreated should be true")
	}

	backupPath := fsutil.BackupPath(path, fsutil.BackupModeSidecar)
	backup, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}

	if string(backup) != "    original\n" {
		t.Errorf("backup content = %q, want the original content", backup)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if string(got) != "original\n" {
		t.Errorf("content = %q, want 'original\\n'", got)
	}

	if result.Summary() != "rewritten (backup created)" {
		t.Errorf("Summary() = %q, want 'rewritten (backup created)'", result.Summary())
	}
}

func TestPipeline_ProcessFile_Diff(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	content := []byte("    a\n")

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	pipeline := transform.NewPipeline(transform.OpStrip, transform.Options{})

	opts := transform.DefaultPipelineOptions()
	opts.MakeDiff = true

	ctx := context.Background()
	result, err := pipeline.ProcessFile(ctx, path, opts)

	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if result.Diff == nil {
		t.Fatal("Diff should be set")
	}

	rendered := result.Diff.String()
	if !containsLine(rendered, "-    a") {
		t.Errorf("diff missing removed line:\n%s", rendered)
	}
	if !containsLine(rendered, "+a") {
		t.Errorf("diff missing added line:\n%s", rendered)
	}
}

func TestPipeline_ProcessFile_BinarySkip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	content := []byte{0x00, 0x01, 0x02, 'a'}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	pipeline := transform.NewPipeline(transform.OpStrip, transform.Options{})

	opts := transform.PipelineOptions{Write: true}

	ctx := context.Background()
	result, err := pipeline.ProcessFile(ctx, path, opts)

	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if !result.Skipped {
		t.Error("Skipped should be true for binary content")
	}

	if result.SkipReason != transform.SkipReasonBinary {
		t.Errorf("SkipReason = %q, want %q", result.SkipReason, transform.SkipReasonBinary)
	}

	if result.Changed {
		t.Error("Changed should be false for skipped files")
	}

	if result.Summary() != "skipped: binary file" {
		t.Errorf("Summary() = %q, want 'skipped: binary file'", result.Summary())
	}

	// Verify file was NOT changed.
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if string(got) != string(content) {
		t.Error("binary file should be untouched")
	}
}

func TestPipeline_ProcessFile_FileNotFound(t *testing.T) {
	t.Parallel()

	pipeline := transform.NewPipeline(transform.OpStrip, transform.Options{})

	ctx := context.Background()
	_, err := pipeline.ProcessFile(ctx, "/nonexistent/path.txt", transform.DefaultPipelineOptions())

	if err == nil {
		t.Fatal("expected error for non-existent file")
	}

	if !errors.Is(err, transform.ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}

	if !transform.IsPipelineError(err) {
		t.Error("IsPipelineError() should be true")
	}
}

func TestPipeline_ProcessFile_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")

	if err := os.WriteFile(path, []byte("    a\n"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	pipeline := transform.NewPipeline(transform.OpStrip, transform.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipeline.ProcessFile(ctx, path, transform.DefaultPipelineOptions())

	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestPipeline_ProcessContent(t *testing.T) {
	t.Parallel()

	pipeline := transform.NewPipeline(transform.OpStrip, transform.Options{})

	opts := transform.DefaultPipelineOptions()
	opts.MakeDiff = true

	ctx := context.Background()
	result, err := pipeline.ProcessContent(ctx, "stdin", []byte("    hello\n"), opts)

	if err != nil {
		t.Fatalf("ProcessContent() error = %v", err)
	}

	if !result.Changed {
		t.Error("Changed should be true")
	}

	if result.Written {
		t.Error("Written should be false for in-memory content")
	}

	if string(result.Output) != "hello\n" {
		t.Errorf("Output = %q, want 'hello\\n'", result.Output)
	}

	if result.Level != 4 {
		t.Errorf("Level = %d, want 4", result.Level)
	}

	if result.OldSum == result.NewSum {
		t.Error("sums should differ for changed content")
	}

	if result.OriginalInfo != nil {
		t.Error("OriginalInfo should be nil for in-memory content")
	}

	if result.Diff == nil {
		t.Error("Diff should be set")
	}
}

func TestPipeline_ProcessContent_Unchanged(t *testing.T) {
	t.Parallel()

	pipeline := transform.NewPipeline(transform.OpStrip, transform.Options{})

	ctx := context.Background()
	result, err := pipeline.ProcessContent(ctx, "stdin", []byte("hello\n"), transform.DefaultPipelineOptions())

	if err != nil {
		t.Fatalf("ProcessContent() error = %v", err)
	}

	if result.Changed {
		t.Error("Changed should be false")
	}

	if result.Output != nil {
		t.Error("Output should be nil when unchanged")
	}

	if result.OldSum != result.NewSum {
		t.Error("sums should match when unchanged")
	}
}

func TestPipeline_ProcessContent_Cancelled(t *testing.T) {
	t.Parallel()

	pipeline := transform.NewPipeline(transform.OpStrip, transform.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipeline.ProcessContent(ctx, "stdin", []byte("    a\n"), transform.DefaultPipelineOptions())

	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestFileResult_Summary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *transform.FileResult
		want   string
	}{
		{
			name:   "skipped",
			result: &transform.FileResult{Skipped: true, SkipReason: "test reason"},
			want:   "skipped: test reason",
		},
		{
			name:   "written with backup",
			result: &transform.FileResult{Written: true, BackupCreated: true},
			want:   "rewritten (backup created)",
		},
		{
			name:   "written without backup",
			result: &transform.FileResult{Written: true},
			want:   "rewritten",
		},
		{
			name:   "changed but not written",
			result: &transform.FileResult{Changed: true},
			want:   "would change",
		},
		{
			name:   "unchanged",
			result: &transform.FileResult{},
			want:   "unchanged",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.result.Summary()
			if got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultPipelineOptions(t *testing.T) {
	t.Parallel()

	opts := transform.DefaultPipelineOptions()

	if opts.Write {
		t.Error("Write should be false by default")
	}
	if opts.MakeDiff {
		t.Error("MakeDiff should be false by default")
	}
	if !opts.StrictRaceDetection {
		t.Error("StrictRaceDetection should be true by default")
	}
	if opts.Backup.Enabled {
		t.Error("Backup.Enabled should be false by default")
	}
}

func TestPipelineOptionsFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		opts := transform.PipelineOptionsFromConfig(nil)
		if opts.Write {
			t.Error("Write should be false for nil config")
		}
		if !opts.StrictRaceDetection {
			t.Error("StrictRaceDetection should be true")
		}
	})

	t.Run("with write and diff enabled", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Write = true
		cfg.Diff = true

		opts := transform.PipelineOptionsFromConfig(cfg)

		if !opts.Write {
			t.Error("Write should be true")
		}
		if !opts.MakeDiff {
			t.Error("MakeDiff should be true")
		}
		if !opts.Backup.Enabled {
			t.Error("Backup.Enabled should reflect config defaults")
		}
	})
}

func TestBackupConfigFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		backup := transform.BackupConfigFromConfig(nil)
		if backup.Enabled {
			t.Error("Enabled should be false for nil config")
		}
	})

	t.Run("backups enabled", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Backups.Enabled = true
		cfg.Backups.Mode = "sidecar"

		backup := transform.BackupConfigFromConfig(cfg)

		if !backup.Enabled {
			t.Error("Enabled should be true")
		}
		if backup.Mode != fsutil.BackupModeSidecar {
			t.Errorf("Mode = %q, want sidecar", backup.Mode)
		}
	})

	t.Run("backups disabled by NoBackups flag", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Backups.Enabled = true
		cfg.NoBackups = true

		backup := transform.BackupConfigFromConfig(cfg)

		if backup.Enabled {
			t.Error("Enabled should be false when NoBackups is set")
		}
	})
}

func TestIsPipelineError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"file not found", transform.ErrFileNotFound, true},
		{"permission denied", transform.ErrPermissionDenied, true},
		{"transform failure", transform.ErrTransformFailure, true},
		{"write failure", transform.ErrWriteFailure, true},
		{"wrapped sentinel", fmt.Errorf("%w: boom", transform.ErrWriteFailure), true},
		{"other error", errors.New("other"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := transform.IsPipelineError(tt.err)
			if got != tt.want {
				t.Errorf("IsPipelineError() = %v, want %v", got, tt.want)
			}
		})
	}
}

// containsLine reports whether rendered contains line as a full line.
func containsLine(rendered, line string) bool {
	return slices.Contains(strings.Split(rendered, "\n"), line)
}
