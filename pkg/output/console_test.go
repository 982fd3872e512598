package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sdejongh/dirsync/pkg/models"
)

// TestConsoleFormatterStart verifies the run banner layout
func TestConsoleFormatterStart(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(&buf, false)

	if err := f.Start("/data/source", "/data/dest", 10); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	want := "Copying from: /data/source\nCopying to:   /data/dest\n"
	if buf.String() != want {
		t.Errorf("Start() output = %q, want %q", buf.String(), want)
	}
}

// TestConsoleFormatterFileDone verifies per-file lines are verbose-only
func TestConsoleFormatterFileDone(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewConsoleFormatter(&buf, false)

		f.FileDone(models.DecisionNew, "docs/readme.txt")
		if buf.Len() != 0 {
			t.Errorf("FileDone() should print nothing by default, got %q", buf.String())
		}
	})

	t.Run("Verbose", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewConsoleFormatter(&buf, true)

		f.FileDone(models.DecisionOverwritten, "docs/readme.txt")
		want := "  overwritten: docs/readme.txt\n"
		if buf.String() != want {
			t.Errorf("FileDone() output = %q, want %q", buf.String(), want)
		}
	})
}

// TestConsoleFormatterComplete verifies the final summary layout
func TestConsoleFormatterComplete(t *testing.T) {
	t.Run("Normal", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewConsoleFormatter(&buf, false)

		result := models.NewRunResult("run-1", "/src", "/dst")
		result.AddNew("a.txt")
		result.AddOverwritten("b.txt")
		result.AddOverwritten("c.txt")
		result.AddSkipped("d.txt")
		result.Finish()

		if err := f.Complete(result, "/dst/2026-08-25_example.txt"); err != nil {
			t.Fatalf("Complete() error = %v", err)
		}

		want := "\nDone.\n" +
			"Report written to: /dst/2026-08-25_example.txt\n" +
			"New: 1, Overwritten: 2, Skipped: 1, Errors: 0\n"
		if buf.String() != want {
			t.Errorf("Complete() output = %q, want %q", buf.String(), want)
		}
	})

	t.Run("DryRun", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewConsoleFormatter(&buf, false)

		result := models.NewRunResult("run-2", "/src", "/dst")
		result.DryRun = true
		result.Finish()

		if err := f.Complete(result, "/dst/2026-08-25_example.txt"); err != nil {
			t.Fatalf("Complete() error = %v", err)
		}

		if !strings.Contains(buf.String(), "Dry run: no files were copied.\n") {
			t.Errorf("Complete() output should mention dry run, got %q", buf.String())
		}
	})
}

// TestNullFormatter verifies the null formatter stays silent
func TestNullFormatter(t *testing.T) {
	f := NewNullFormatter()

	if err := f.Start("/src", "/dst", 5); err != nil {
		t.Errorf("Start() error = %v", err)
	}
	if err := f.FileDone(models.DecisionSkipped, "x.txt"); err != nil {
		t.Errorf("FileDone() error = %v", err)
	}
	if err := f.Complete(models.NewRunResult("run", "/src", "/dst"), "/dst/r.txt"); err != nil {
		t.Errorf("Complete() error = %v", err)
	}
	if f.Name() != "null" {
		t.Errorf("Name() = %s, want null", f.Name())
	}
}

// TestFormatterInterface verifies all formatters implement the interface
func TestFormatterInterface(t *testing.T) {
	var _ Formatter = (*ConsoleFormatter)(nil)
	var _ Formatter = (*ProgressFormatter)(nil)
	var _ Formatter = (*NullFormatter)(nil)
}
