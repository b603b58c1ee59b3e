package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the pipeline.
var (
	// ErrNotFound is returned when no servable artifact exists for a key.
	ErrNotFound = errors.New("artifact not found")

	// ErrUnresolvedHost is returned when a hostname cannot be mapped to a
	// business after cache, fast path, and backend are exhausted.
	ErrUnresolvedHost = errors.New("host could not be resolved to a business")

	// ErrMatrixTooLarge is returned before any work begins when the expanded
	// page matrix exceeds the configured safety ceiling.
	ErrMatrixTooLarge = errors.New("page matrix exceeds safety ceiling")

	// ErrBudgetExhausted signals that the per-run generation budget is spent
	// and remaining enhanced-tier specs must degrade to templates.
	ErrBudgetExhausted = errors.New("generation budget exhausted")
)

// MissingVariableError reports an unresolved placeholder in a template. It is
// always fatal to the single render that raised it.
type MissingVariableError struct {
	TemplateID string
	Variable   string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("template %q: unresolved variable %q", e.TemplateID, e.Variable)
}

// ProviderError wraps a generative-text provider failure and records whether
// retrying could help.
type ProviderError struct {
	Op        string
	Err       error
	Transient bool
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsTransientProviderError reports whether err is a provider failure worth
// retrying (timeouts, rate limits, 5xx).
func IsTransientProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Transient
}

// FailureClass buckets per-spec errors for run reporting.
func FailureClass(err error) string {
	var mv *MissingVariableError
	var pe *ProviderError
	switch {
	case errors.As(err, &mv):
		return "missing_variable"
	case IsTransientProviderError(err):
		return "provider_timeout"
	case errors.As(err, &pe):
		return "provider_error"
	case errors.Is(err, ErrBudgetExhausted):
		return "budget_exhausted"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
