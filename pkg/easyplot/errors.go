package easyplot

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrRunning is returned by Start on a running instance.
	ErrRunning = errors.New("plot instance already running")
	// ErrNotRunning is returned by Reload on a stopped instance.
	ErrNotRunning = errors.New("plot instance not running")
)

// ErrorCategory classifies errors for tracking.
type ErrorCategory int

const (
	// ErrorCategoryUnknown is the default category for uncategorized errors.
	ErrorCategoryUnknown ErrorCategory = iota
	// ErrorCategoryConfig is for scene configuration and validation errors.
	ErrorCategoryConfig
	// ErrorCategoryLua is for script and plotted function failures.
	ErrorCategoryLua
	// ErrorCategoryRender is for window and drawing errors.
	ErrorCategoryRender
	// ErrorCategoryIO is for file and watcher errors.
	ErrorCategoryIO

	numCategories
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case ErrorCategoryConfig:
		return "config"
	case ErrorCategoryLua:
		return "lua"
	case ErrorCategoryRender:
		return "render"
	case ErrorCategoryIO:
		return "io"
	default:
		return "unknown"
	}
}

// ErrorSeverity indicates the severity level of an error.
type ErrorSeverity int

const (
	// SeverityInfo is for informational messages that don't require action.
	SeverityInfo ErrorSeverity = iota
	// SeverityWarning is for problems the plot keeps running through, such
	// as gaps from failing function evaluations.
	SeverityWarning
	// SeverityError is for errors that affect functionality but allow continued operation.
	SeverityError
	// SeverityCritical is for errors that stop the instance.
	SeverityCritical
)

// String returns a human-readable name for the severity level.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// CategorizedError wraps an error with additional metadata for tracking.
type CategorizedError struct {
	// Err is the underlying error.
	Err error
	// Category classifies the type of error.
	Category ErrorCategory
	// Severity indicates the urgency level.
	Severity ErrorSeverity
	// Timestamp is when the error occurred.
	Timestamp time.Time
	// Context provides additional key-value metadata.
	Context map[string]string
}

// Error implements the error interface.
func (e *CategorizedError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s/%s] (no error)", e.Severity, e.Category)
	}
	return fmt.Sprintf("[%s/%s] %s", e.Severity, e.Category, e.Err.Error())
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *CategorizedError) Unwrap() error {
	return e.Err
}

// NewCategorizedError creates a new CategorizedError with the given parameters.
func NewCategorizedError(err error, category ErrorCategory, severity ErrorSeverity) *CategorizedError {
	return &CategorizedError{
		Err:       err,
		Category:  category,
		Severity:  severity,
		Timestamp: time.Now(),
		Context:   make(map[string]string),
	}
}

// WithContext adds a key-value pair to the error context and returns the error.
func (e *CategorizedError) WithContext(key, value string) *CategorizedError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// ErrorTracker keeps the most recent categorized errors and lifetime counts
// per category. Thread-safe for concurrent use.
type ErrorTracker struct {
	mu        sync.RWMutex
	errors    []CategorizedError
	maxErrors int

	categoryCounters [numCategories]atomic.Int64
}

// DefaultMaxErrors is the number of errors an ErrorTracker retains by default.
const DefaultMaxErrors = 100

// NewErrorTracker creates a tracker retaining up to maxErrors errors.
// A non-positive maxErrors selects DefaultMaxErrors.
func NewErrorTracker(maxErrors int) *ErrorTracker {
	if maxErrors <= 0 {
		maxErrors = DefaultMaxErrors
	}
	return &ErrorTracker{
		errors:    make([]CategorizedError, 0, maxErrors),
		maxErrors: maxErrors,
	}
}

// Record adds an error to the tracker.
func (t *ErrorTracker) Record(err *CategorizedError) {
	if err == nil {
		return
	}
	if err.Category >= 0 && err.Category < numCategories {
		t.categoryCounters[err.Category].Add(1)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.errors = append(t.errors, *err)
	if len(t.errors) > t.maxErrors {
		t.errors = t.errors[len(t.errors)-t.maxErrors:]
	}
}

// Count returns the lifetime number of errors recorded in category.
func (t *ErrorTracker) Count(category ErrorCategory) int64 {
	if category < 0 || category >= numCategories {
		return 0
	}
	return t.categoryCounters[category].Load()
}

// RecentErrors returns the most recent errors, up to the specified limit.
func (t *ErrorTracker) RecentErrors(limit int) []CategorizedError {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if limit <= 0 || len(t.errors) == 0 {
		return nil
	}
	start := max(len(t.errors)-limit, 0)
	result := make([]CategorizedError, len(t.errors)-start)
	copy(result, t.errors[start:])
	return result
}

// Stats returns a snapshot of error statistics.
func (t *ErrorTracker) Stats() ErrorStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stats := ErrorStats{
		Retained:         len(t.errors),
		ErrorsBySeverity: make(map[ErrorSeverity]int),
		TotalByCategory:  make(map[ErrorCategory]int64),
	}
	for _, err := range t.errors {
		stats.ErrorsBySeverity[err.Severity]++
	}
	for i := range t.categoryCounters {
		if n := t.categoryCounters[i].Load(); n > 0 {
			stats.TotalByCategory[ErrorCategory(i)] = n
		}
	}
	return stats
}

// Clear removes all retained errors. Lifetime counts are kept.
func (t *ErrorTracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errors = t.errors[:0]
}

// ErrorStats provides a summary of error statistics.
type ErrorStats struct {
	// Retained is the number of errors currently retained.
	Retained int
	// ErrorsBySeverity counts retained errors by severity.
	ErrorsBySeverity map[ErrorSeverity]int
	// TotalByCategory holds lifetime counts for categories that saw errors.
	TotalByCategory map[ErrorCategory]int64
}

var (
	defaultErrorTracker     *ErrorTracker
	defaultErrorTrackerOnce sync.Once
)

// DefaultErrorTracker returns the global default ErrorTracker instance.
func DefaultErrorTracker() *ErrorTracker {
	defaultErrorTrackerOnce.Do(func() {
		defaultErrorTracker = NewErrorTracker(DefaultMaxErrors)
	})
	return defaultErrorTracker
}

// categorize wraps err unless it is already categorized.
func categorize(err error, category ErrorCategory, severity ErrorSeverity) *CategorizedError {
	var ce *CategorizedError
	if errors.As(err, &ce) {
		return ce
	}
	return NewCategorizedError(err, category, severity)
}
