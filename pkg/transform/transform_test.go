package transform_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/reindent/pkg/transform"
)

func TestOp(t *testing.T) {
	t.Parallel()

	t.Run("IsValid", func(t *testing.T) {
		t.Parallel()

		valid := []transform.Op{
			transform.OpMeasure,
			transform.OpSet,
			transform.OpShift,
			transform.OpStrip,
			transform.OpMargin,
			transform.OpFences,
		}
		for _, op := range valid {
			if !op.IsValid() {
				t.Errorf("IsValid() = false for %q", op)
			}
		}

		for _, op := range []transform.Op{"", "indent", "SET"} {
			if op.IsValid() {
				t.Errorf("IsValid() = true for %q", op)
			}
		}
	})

	t.Run("String", func(t *testing.T) {
		t.Parallel()

		if got := transform.OpShift.String(); got != "shift" {
			t.Errorf("String() = %q, want shift", got)
		}
	})
}

//nolint:gocognit // exhaustive operation table
func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		op      transform.Op
		opts    transform.Options
		want    string
	}{
		{
			name:    "measure leaves content untouched",
			content: "  a\r\n\r\n   \r\n    b",
			op:      transform.OpMeasure,
			opts:    transform.Options{},
			want:    "  a\r\n\r\n   \r\n    b",
		},
		{
			name:    "set raises flat text",
			content: "a\nb\n",
			op:      transform.OpSet,
			opts:    transform.Options{Level: 4},
			want:    "    a\n    b\n",
		},
		{
			name:    "set preserves relative offsets",
			content: "  a\n    b\n",
			op:      transform.OpSet,
			opts:    transform.Options{Level: 4},
			want:    "    a\n      b\n",
		},
		{
			name:    "set to zero",
			content: "    a\n",
			op:      transform.OpSet,
			opts:    transform.Options{Level: 0},
			want:    "a\n",
		},
		{
			name:    "set clamps negative target at column zero",
			content: "  a\n    b\n",
			op:      transform.OpSet,
			opts:    transform.Options{Level: -2},
			want:    "a\nb\n",
		},
		{
			name:    "shift raises",
			content: "  a\n",
			op:      transform.OpShift,
			opts:    transform.Options{Delta: 2},
			want:    "    a\n",
		},
		{
			name:    "shift lowers",
			content: "    a\n      b\n",
			op:      transform.OpShift,
			opts:    transform.Options{Delta: -2},
			want:    "  a\n    b\n",
		},
		{
			name:    "shift clamps at column zero",
			content: "  a\n      b\n",
			op:      transform.OpShift,
			opts:    transform.Options{Delta: -4},
			want:    "a\n  b\n",
		},
		{
			name:    "strip removes common indentation",
			content: "    x\n      y\n",
			op:      transform.OpStrip,
			want:    "x\n  y\n",
		},
		{
			name:    "strip empties whitespace-only lines",
			content: "    x\n   \n      y\n",
			op:      transform.OpStrip,
			want:    "x\n\n  y\n",
		},
		{
			name:    "margin trims prefix lines",
			content: "\n    |one\n    |two\n",
			op:      transform.OpMargin,
			opts:    transform.Options{MarginPrefix: "|"},
			want:    "one\ntwo\n",
		},
		{
			name:    "margin keeps unmatched lines untouched",
			content: "  |a\n  b\n",
			op:      transform.OpMargin,
			opts:    transform.Options{MarginPrefix: "|"},
			want:    "a\n  b\n",
		},
		{
			name:    "margin custom prefix",
			content: "\n  >x\n  >y\n",
			op:      transform.OpMargin,
			opts:    transform.Options{MarginPrefix: ">"},
			want:    "x\ny\n",
		},
		{
			name:    "margin empty prefix strips leading whitespace",
			content: "  a\n\tb\n",
			op:      transform.OpMargin,
			opts:    transform.Options{MarginPrefix: ""},
			want:    "a\nb\n",
		},
		{
			name:    "margin keeps final terminator after dropping blank last line",
			content: "|x\n",
			op:      transform.OpMargin,
			opts:    transform.Options{MarginPrefix: "|"},
			want:    "x\n",
		},
		{
			name:    "margin leaves whitespace-only input unchanged",
			content: "   \n  ",
			op:      transform.OpMargin,
			opts:    transform.Options{MarginPrefix: "|"},
			want:    "   \n  ",
		},
		{
			name:    "crlf flavor restored",
			content: "  a\r\n  b\r\n",
			op:      transform.OpStrip,
			want:    "a\r\nb\r\n",
		},
		{
			name:    "mixed terminators unify to first flavor",
			content: "  a\n  b\r\n",
			op:      transform.OpStrip,
			want:    "a\nb\n",
		},
		{
			name:    "lone cr becomes lf",
			content: "  a\r  b\r",
			op:      transform.OpStrip,
			want:    "a\nb\n",
		},
		{
			name:    "missing final terminator stays missing",
			content: "  a",
			op:      transform.OpStrip,
			want:    "a",
		},
		{
			name:    "whitespace-only input collapses to terminators",
			content: "   \n",
			op:      transform.OpSet,
			opts:    transform.Options{Level: 2},
			want:    "\n",
		},
		{
			name:    "empty input",
			content: "",
			op:      transform.OpStrip,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := transform.Apply([]byte(tt.content), tt.op, tt.opts)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}

			if string(got) != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApply_UnknownOp(t *testing.T) {
	t.Parallel()

	_, err := transform.Apply([]byte("x\n"), transform.Op("bogus"), transform.Options{})
	if err == nil {
		t.Fatal("expected error for unknown operation")
	}

	if !errors.Is(err, transform.ErrUnknownOp) {
		t.Errorf("expected ErrUnknownOp, got %v", err)
	}
}

func TestMeasure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"flat", "a\nb", 0},
		{"uniform", "    a\n    b", 4},
		{"minimum over lines", "      a\n  b", 2},
		{"blank lines ignored", "\n    a\n", 4},
		{"tab is not indentation", "\ta", 0},
		{"empty", "", 0},
		{"whitespace only", "   \n", 0},
		{"crlf", "  a\r\n  b\r\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := transform.Measure([]byte(tt.content)); got != tt.want {
				t.Errorf("Measure() = %d, want %d", got, tt.want)
			}
		})
	}
}
