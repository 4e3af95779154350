package config

import (
	"fmt"
	"math"
	"strings"
)

// ValidationError represents a configuration validation error.
// It contains the field name and a description of the issue.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the results of a configuration validation.
type ValidationResult struct {
	// Errors contains all validation errors found.
	Errors []ValidationError
	// Warnings contains non-fatal issues.
	Warnings []ValidationError
}

// IsValid returns true if there are no validation errors.
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// Error returns a combined error if there are errors, nil otherwise. Each
// ValidationError is wrapped and can be found with errors.As.
func (vr *ValidationResult) Error() error {
	if len(vr.Errors) == 0 {
		return nil
	}

	verbs := make([]string, 0, len(vr.Errors))
	args := make([]any, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		verbs = append(verbs, "%w")
		args = append(args, e)
	}
	return fmt.Errorf("validation failed: "+strings.Join(verbs, "; "), args...)
}

// AddError adds a validation error.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// AddWarning adds a validation warning.
func (vr *ValidationResult) AddWarning(field, message string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Message: message})
}

// Merge combines another ValidationResult into this one.
func (vr *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	vr.Errors = append(vr.Errors, other.Errors...)
	vr.Warnings = append(vr.Warnings, other.Warnings...)
}

// Validator checks a Config against the engine's limits.
type Validator struct {
	// maxWindow bounds either window dimension.
	maxWindow int
}

// NewValidator creates a new Validator with default settings.
func NewValidator() *Validator {
	return &Validator{maxWindow: 16384}
}

// Validate performs validation of a Config.
func (v *Validator) Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		result.AddError("config", "is nil")
		return result
	}

	v.validateWindow(&cfg.Window, result)
	v.validateView(&cfg.View, result)
	v.validateTheme(&cfg.Theme, result)

	return result
}

func (v *Validator) validateWindow(wc *WindowConfig, result *ValidationResult) {
	if wc.Width <= 0 {
		result.AddError("window.width", fmt.Sprintf("must be positive, got %d", wc.Width))
	} else if wc.Width > v.maxWindow {
		result.AddError("window.width", fmt.Sprintf("must be at most %d, got %d", v.maxWindow, wc.Width))
	}
	if wc.Height <= 0 {
		result.AddError("window.height", fmt.Sprintf("must be positive, got %d", wc.Height))
	} else if wc.Height > v.maxWindow {
		result.AddError("window.height", fmt.Sprintf("must be at most %d, got %d", v.maxWindow, wc.Height))
	}
	if strings.TrimSpace(wc.Title) == "" {
		result.AddWarning("window.title", "is empty")
	}
}

func (v *Validator) validateView(vc *ViewConfig, result *ValidationResult) {
	if math.IsNaN(vc.Scale) || vc.Scale < MinScale || vc.Scale > MaxScale {
		result.AddError("view.scale", fmt.Sprintf("must be within [%g, %g], got %g", MinScale, MaxScale, vc.Scale))
	}
	if !(vc.ZoomFactor > 1) || math.IsInf(vc.ZoomFactor, 0) {
		result.AddError("view.zoom_factor", fmt.Sprintf("must be greater than 1, got %g", vc.ZoomFactor))
	} else if vc.ZoomFactor > 2 {
		result.AddWarning("view.zoom_factor", fmt.Sprintf("%g zooms very fast", vc.ZoomFactor))
	}
	if vc.Steps < MinSteps || vc.Steps > MaxSteps {
		result.AddError("view.steps", fmt.Sprintf("must be within [%d, %d], got %d", MinSteps, MaxSteps, vc.Steps))
	}
	for i, c := range vc.Center {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			result.AddError(fmt.Sprintf("view.center[%d]", i), "must be finite")
		}
	}
}

func (v *Validator) validateTheme(tc *ThemeConfig, result *ValidationResult) {
	if !(tc.FontSize > 0) {
		result.AddError("theme.font_size", fmt.Sprintf("must be positive, got %g", tc.FontSize))
	}
	if tc.HoverRadius < 0 || math.IsNaN(tc.HoverRadius) {
		result.AddError("theme.hover_radius", fmt.Sprintf("must not be negative, got %g", tc.HoverRadius))
	} else if tc.HoverRadius == 0 {
		result.AddWarning("theme.hover_radius", "is zero, hover tooltips are disabled")
	}
	if tc.Background.A == 0 {
		result.AddWarning("theme.background", "is fully transparent")
	}
}
