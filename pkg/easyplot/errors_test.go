package easyplot

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCategoryString(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		want     string
	}{
		{ErrorCategoryUnknown, "unknown"},
		{ErrorCategoryConfig, "config"},
		{ErrorCategoryLua, "lua"},
		{ErrorCategoryRender, "render"},
		{ErrorCategoryIO, "io"},
		{ErrorCategory(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.category.String(); got != tt.want {
			t.Errorf("ErrorCategory(%d).String() = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestErrorSeverityString(t *testing.T) {
	tests := []struct {
		severity ErrorSeverity
		want     string
	}{
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{ErrorSeverity(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.severity.String(); got != tt.want {
			t.Errorf("ErrorSeverity(%d).String() = %q, want %q", tt.severity, got, tt.want)
		}
	}
}

func TestCategorizedError(t *testing.T) {
	base := errors.New("boom")
	err := NewCategorizedError(base, ErrorCategoryLua, SeverityWarning).WithContext("scene", "sine")

	if got := err.Error(); got != "[warning/lua] boom" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, base) {
		t.Error("errors.Is does not reach the wrapped error")
	}
	if err.Context["scene"] != "sine" {
		t.Errorf("Context = %v", err.Context)
	}
	if err.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}

	empty := &CategorizedError{Category: ErrorCategoryIO, Severity: SeverityError}
	if got := empty.Error(); got != "[error/io] (no error)" {
		t.Errorf("Error() without cause = %q", got)
	}
	empty.WithContext("k", "v")
	if empty.Context["k"] != "v" {
		t.Error("WithContext on a nil map")
	}
}

func TestCategorizeKeepsExisting(t *testing.T) {
	inner := NewCategorizedError(errors.New("bad width"), ErrorCategoryConfig, SeverityError)
	wrapped := fmt.Errorf("load scene: %w", inner)

	if got := categorize(wrapped, ErrorCategoryLua, SeverityWarning); got != inner {
		t.Errorf("categorize rewrapped a categorized error: %v", got)
	}
	if got := categorize(errors.New("plain"), ErrorCategoryRender, SeverityCritical); got.Category != ErrorCategoryRender || got.Severity != SeverityCritical {
		t.Errorf("categorize = %s/%s", got.Severity, got.Category)
	}
}

func TestErrorTracker(t *testing.T) {
	tracker := NewErrorTracker(3)
	tracker.Record(nil)
	for i := 0; i < 5; i++ {
		category := ErrorCategoryLua
		if i%2 == 1 {
			category = ErrorCategoryIO
		}
		tracker.Record(NewCategorizedError(fmt.Errorf("error %d", i), category, SeverityError))
	}

	if got := tracker.Count(ErrorCategoryLua); got != 3 {
		t.Errorf("Count(lua) = %d, want 3", got)
	}
	if got := tracker.Count(ErrorCategoryIO); got != 2 {
		t.Errorf("Count(io) = %d, want 2", got)
	}
	if got := tracker.Count(ErrorCategory(99)); got != 0 {
		t.Errorf("Count(invalid) = %d", got)
	}

	recent := tracker.RecentErrors(10)
	if len(recent) != 3 {
		t.Fatalf("retained %d errors, want 3", len(recent))
	}
	if recent[0].Err.Error() != "error 2" || recent[2].Err.Error() != "error 4" {
		t.Errorf("recent = %v, %v", recent[0].Err, recent[2].Err)
	}
	if got := tracker.RecentErrors(1); len(got) != 1 || got[0].Err.Error() != "error 4" {
		t.Errorf("RecentErrors(1) = %v", got)
	}
	if tracker.RecentErrors(0) != nil {
		t.Error("RecentErrors(0) should be nil")
	}

	stats := tracker.Stats()
	if stats.Retained != 3 || stats.ErrorsBySeverity[SeverityError] != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.TotalByCategory[ErrorCategoryLua] != 3 || stats.TotalByCategory[ErrorCategoryIO] != 2 {
		t.Errorf("TotalByCategory = %v", stats.TotalByCategory)
	}
	if _, ok := stats.TotalByCategory[ErrorCategoryRender]; ok {
		t.Error("categories without errors should be absent")
	}

	tracker.Clear()
	if tracker.Stats().Retained != 0 {
		t.Error("Clear kept errors")
	}
	if tracker.Count(ErrorCategoryLua) != 3 {
		t.Error("Clear reset lifetime counts")
	}
}

func TestDefaultErrorTracker(t *testing.T) {
	if DefaultErrorTracker() != DefaultErrorTracker() {
		t.Error("DefaultErrorTracker should return the same instance")
	}
	if NewErrorTracker(0).maxErrors != DefaultMaxErrors {
		t.Error("non-positive size should select DefaultMaxErrors")
	}
}
