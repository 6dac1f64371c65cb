// Package entities contains the domain entities for the template resolution
// and generation-plan core. These are pure Go structs with validation logic
// and zero external dependencies.
package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors.
var (
	ErrEmptyName   = errors.New("name cannot be empty")
	ErrInvalidName = errors.New("name contains invalid characters")
	ErrEmptyID     = errors.New("id cannot be empty")
	ErrEmptyPath   = errors.New("path cannot be empty")
	ErrEmptySource = errors.New("source cannot be empty")
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Entity  string // Entity type (e.g., "TemplateConfig", "VariationSet")
	Field   string // Field that failed validation
	Value   string // The invalid value (may be truncated)
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Entity, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new validation error.
func NewValidationError(entity, field, value, message string, err error) *ValidationError {
	// Truncate value if too long
	if len(value) > 50 {
		value = value[:47] + "..."
	}
	return &ValidationError{
		Entity:  entity,
		Field:   field,
		Value:   value,
		Message: message,
		Err:     err,
	}
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d validation errors:\n", len(ve)))
	for i, err := range ve {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return b.String()
}

// HasErrors returns true if there are validation errors.
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add appends a validation error to the collection.
func (ve *ValidationErrors) Add(entity, field, value, message string, err error) {
	*ve = append(*ve, NewValidationError(entity, field, value, message, err))
}

// The pipeline errors below form a closed sum of named kinds (spec §7).
// Each is terminal: the core never recovers from one internally, it is
// surfaced to the calling collaborator.

// MissingSourceError is returned when a referenced source file cannot be opened.
type MissingSourceError struct {
	Path string
	Err  error
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("source %q not found", e.Path)
}

func (e *MissingSourceError) Unwrap() error { return e.Err }

// MalformedSourceError is returned when a source file fails to parse.
type MalformedSourceError struct {
	Path   string
	Detail string
	Err    error
}

func (e *MalformedSourceError) Error() string {
	return fmt.Sprintf("source %q is malformed: %s", e.Path, e.Detail)
}

func (e *MalformedSourceError) Unwrap() error { return e.Err }

// UnknownKindError is returned when a loaded source cannot be classified.
type UnknownKindError struct {
	Path string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("could not classify source %q", e.Path)
}

// SchemaViolationError covers structural rule violations, e.g. a template
// missing the {prompt} marker, or a chunk that contains one.
type SchemaViolationError struct {
	Detail string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation: %s", e.Detail)
}

// InheritanceError covers parent/child incompatibilities and chains that
// exceed the configured depth limit.
type InheritanceError struct {
	Detail string
}

func (e *InheritanceError) Error() string {
	return fmt.Sprintf("inheritance error: %s", e.Detail)
}

// CycleError is returned when the import resolver detects a cycle. Stack is
// the ordered list of source paths from the root of the resolution down to
// the source that closes the cycle.
type CycleError struct {
	Stack []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("import cycle detected: %s", strings.Join(e.Stack, " -> "))
}

// DepthError is returned when import recursion exceeds the configured limit.
type DepthError struct {
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("import recursion exceeded depth limit of %d", e.Limit)
}

// SelectorSyntaxError is returned for an unparseable selector, or a selector
// combined with a :part suffix on the same reference.
type SelectorSyntaxError struct {
	Fragment string
}

func (e *SelectorSyntaxError) Error() string {
	return fmt.Sprintf("invalid selector syntax: %q", e.Fragment)
}

// UnknownPlaceholderError is returned when a placeholder appears in template
// text but has no corresponding entry in the resolved imports map.
type UnknownPlaceholderError struct {
	Name string
}

func (e *UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("unknown placeholder %q", e.Name)
}

// UnknownVariationKeyError is returned when a selector or a fixed-value
// override names a variation key absent from the resolved variation set.
type UnknownVariationKeyError struct {
	Name      string
	Requested string
	Available []string
}

func (e *UnknownVariationKeyError) Error() string {
	return fmt.Sprintf("unknown variation key %q for placeholder %q (available: %s)",
		e.Requested, e.Name, strings.Join(e.Available, ", "))
}

// UnknownPartError is returned when a {Name:part} reference names a part not
// present on the selected variation.
type UnknownPartError struct {
	Name           string
	VariationKey   string
	Part           string
	AvailableParts []string
}

func (e *UnknownPartError) Error() string {
	return fmt.Sprintf("unknown part %q of variation %q for placeholder %q (available: %s)",
		e.Part, e.VariationKey, e.Name, strings.Join(e.AvailableParts, ", "))
}
