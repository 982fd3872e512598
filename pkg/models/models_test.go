package models

import (
	"errors"
	"testing"
	"time"
)

// ============== FileDecision Tests ==============

func TestFileDecision(t *testing.T) {
	tests := []struct {
		decision FileDecision
		expected string
	}{
		{DecisionNew, "new"},
		{DecisionOverwritten, "overwritten"},
		{DecisionSkipped, "skipped"},
		{DecisionError, "error"},
	}

	for _, tt := range tests {
		t.Run(string(tt.decision), func(t *testing.T) {
			if string(tt.decision) != tt.expected {
				t.Errorf("FileDecision = %s, want %s", string(tt.decision), tt.expected)
			}
		})
	}
}

// ============== RunResult Tests ==============

func TestRunResultAccumulation(t *testing.T) {
	r := NewRunResult("run-123", "/source", "/dest")

	if r.RunID != "run-123" {
		t.Errorf("RunID = %s, want run-123", r.RunID)
	}
	if r.StartTime.IsZero() {
		t.Error("StartTime should be set by NewRunResult")
	}

	r.AddNew("a.txt")
	r.AddNew("sub/b.txt")
	r.AddOverwritten("c.txt")
	r.AddSkipped("d.txt")
	r.AddError("e.txt", errors.New("permission denied"))

	if len(r.New) != 2 {
		t.Errorf("New length = %d, want 2", len(r.New))
	}
	if len(r.Overwritten) != 1 {
		t.Errorf("Overwritten length = %d, want 1", len(r.Overwritten))
	}
	if len(r.Skipped) != 1 {
		t.Errorf("Skipped length = %d, want 1", len(r.Skipped))
	}
	if len(r.Errors) != 1 {
		t.Errorf("Errors length = %d, want 1", len(r.Errors))
	}

	if r.TotalVisited() != 5 {
		t.Errorf("TotalVisited() = %d, want 5", r.TotalVisited())
	}

	if r.New[0] != "a.txt" || r.New[1] != "sub/b.txt" {
		t.Errorf("New = %v, want insertion order preserved", r.New)
	}
	if r.Errors[0].Path != "e.txt" {
		t.Errorf("Errors[0].Path = %s, want e.txt", r.Errors[0].Path)
	}
	if r.Errors[0].Message != "permission denied" {
		t.Errorf("Errors[0].Message = %s, want 'permission denied'", r.Errors[0].Message)
	}
}

func TestRunResultStatus(t *testing.T) {
	t.Run("Clean", func(t *testing.T) {
		r := NewRunResult("id", "/s", "/d")
		r.AddNew("a.txt")
		r.AddSkipped("b.txt")

		if r.Status() != StatusCompleted {
			t.Errorf("Status() = %s, want %s", r.Status(), StatusCompleted)
		}
	})

	t.Run("WithErrors", func(t *testing.T) {
		r := NewRunResult("id", "/s", "/d")
		r.AddError("a.txt", errors.New("read failed"))

		if r.Status() != StatusCompletedWithErrors {
			t.Errorf("Status() = %s, want %s", r.Status(), StatusCompletedWithErrors)
		}
	})
}

func TestRunResultDuration(t *testing.T) {
	r := NewRunResult("id", "/s", "/d")
	r.StartTime = time.Now().Add(-2 * time.Second)
	r.Finish()

	if r.EndTime.IsZero() {
		t.Error("EndTime should be set by Finish")
	}
	if r.Duration() < time.Second {
		t.Errorf("Duration() = %v, want at least 1s", r.Duration())
	}
}

// ============== RunOptions Tests ==============

func TestRunOptionsValidate(t *testing.T) {
	valid := func() *RunOptions {
		return &RunOptions{
			RunID:        "run-1",
			SourcePath:   "/source",
			DestPath:     "/dest",
			ReportDir:    "/dest",
			ReportName:   "example",
			Timezone:     "America/Chicago",
			MaxListItems: 200,
		}
	}

	t.Run("ValidOptions", func(t *testing.T) {
		if err := valid().Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	t.Run("EmptySourcePath", func(t *testing.T) {
		o := valid()
		o.SourcePath = ""

		err := o.Validate()
		if err == nil {
			t.Fatal("Validate() should fail for empty source path")
		}
		var ve *ValidationError
		if errors.As(err, &ve) {
			if ve.Field != "SourcePath" {
				t.Errorf("ValidationError.Field = %s, want SourcePath", ve.Field)
			}
		}
	})

	t.Run("EmptyDestPath", func(t *testing.T) {
		o := valid()
		o.DestPath = ""

		if err := o.Validate(); err == nil {
			t.Error("Validate() should fail for empty dest path")
		}
	})

	t.Run("EmptyReportDir", func(t *testing.T) {
		o := valid()
		o.ReportDir = ""

		if err := o.Validate(); err == nil {
			t.Error("Validate() should fail for empty report dir")
		}
	})

	t.Run("EmptyReportName", func(t *testing.T) {
		o := valid()
		o.ReportName = ""

		if err := o.Validate(); err == nil {
			t.Error("Validate() should fail for empty report name")
		}
	})

	t.Run("ZeroMaxListItems", func(t *testing.T) {
		o := valid()
		o.MaxListItems = 0

		if err := o.Validate(); err == nil {
			t.Error("Validate() should fail for zero max list items")
		}
	})
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Field:   "TestField",
		Message: "test message",
	}

	expected := "TestField: test message"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
}

// ============== ReportRecord Tests ==============

func TestReportRecord(t *testing.T) {
	t.Run("RunReport", func(t *testing.T) {
		result := NewRunResult("id", "/s", "/d")
		rec := &ReportRecord{
			Date:   "2026-01-15",
			Zone:   "America/Chicago",
			Result: result,
			Path:   "/d/2026-01-15_example.txt",
		}

		if rec.Result != result {
			t.Error("Result reference mismatch")
		}
		if rec.FatalError != "" {
			t.Errorf("FatalError = %q, want empty for a run report", rec.FatalError)
		}
	})

	t.Run("FatalReport", func(t *testing.T) {
		rec := &ReportRecord{
			Date:       "2026-01-15",
			Zone:       "America/Chicago",
			FatalError: "source directory does not exist: /nope",
			Path:       "/d/2026-01-15_example.txt",
		}

		if rec.Result != nil {
			t.Error("Result should be nil for a fatal report")
		}
		if rec.FatalError == "" {
			t.Error("FatalError should be set for a fatal report")
		}
	})
}
