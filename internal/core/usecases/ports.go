package usecases

import (
	"context"
	"time"

	"github.com/madstone-tech/loko/internal/core/entities"
)

// SourceReader defines the interface for loading a single source document
// from wherever it is stored (spec §4.1). Implementations MUST treat the
// filesystem as the canonical store and return entities.MissingSourceError
// / entities.MalformedSourceError for the two ways a read can fail.
type SourceReader interface {
	// Read loads and parses the document at path, returning it as a raw,
	// untyped mapping ready for kind classification.
	Read(ctx context.Context, path string) (*entities.Source, error)

	// Canonicalize normalises a path reference for cache-keying and cycle
	// detection (e.g. resolving it relative to a configs root and cleaning
	// '.'/'..' segments).
	Canonicalize(ctx context.Context, path string) (string, error)
}

// RandomSource is the single pseudorandom stream the core consumes for
// every choice that must be reproducible under a fixed seed: random:N
// selectors, generation-mode random sampling, seed-mode random, and
// zero-weight substitutions (spec §5, §9). There is no hidden global PRNG;
// every call site that needs randomness is handed one of these explicitly.
type RandomSource interface {
	// IntN returns a pseudorandom integer in [0, n).
	IntN(n int) int

	// Shuffle permutes a slice of length n in place using swap(i, j).
	Shuffle(n int, swap func(i, j int))

	// Int64 returns a pseudorandom int64, used to mint seed-mode "random" seeds.
	Int64() int64
}

// ThemeLoader resolves a theme's import-map overlay, either from an
// explicit single file or by implicit per-placeholder directory convention
// (spec §4.3).
type ThemeLoader interface {
	// LoadExplicit parses a single theme file carrying its own import map.
	LoadExplicit(path string) (*entities.ThemeConfig, error)

	// LoadImplicit assembles a theme from per-placeholder files in the
	// themes directory following the "{theme}-{placeholder}[.{style}].yaml"
	// naming convention.
	LoadImplicit(theme string) (*entities.ThemeConfig, error)
}

// Logger defines the interface for structured logging.
//
// Implementations MUST emit JSON logs to stderr in production mode.
// The logger is used throughout the application for tracing and debugging.
type Logger interface {
	// Debug logs a debug-level message.
	Debug(msg string, keysAndValues ...any)

	// Info logs an info-level message.
	Info(msg string, keysAndValues ...any)

	// Warn logs a warning-level message.
	Warn(msg string, keysAndValues ...any)

	// Error logs an error-level message.
	Error(msg string, err error, keysAndValues ...any)

	// WithContext returns a logger that includes the given context (for request/operation tracking).
	WithContext(ctx context.Context) Logger

	// WithFields returns a logger with additional structured fields.
	WithFields(keysAndValues ...any) Logger
}

// ProgressReporter defines the interface for communicating progress to the user.
//
// Implementations MAY use terminal formatting (via lipgloss) for CLI output.
// Progress events include task completion percentage, current step, and status messages.
type ProgressReporter interface {
	// ReportProgress sends a progress update, e.g. "rendered item 4/20".
	ReportProgress(step string, current int, total int, message string)

	// ReportError sends an error status (typically with red/bold formatting).
	ReportError(err error)

	// ReportSuccess sends a success status (typically with green formatting).
	ReportSuccess(message string)

	// ReportInfo sends an informational message, e.g. a collected Warning.
	ReportInfo(message string)
}

// OutputEncoder defines the interface for serializing data to various formats.
//
// Implementations MUST support JSON and TOON (token-optimized) formats for
// efficient representation of a GenerationPlan when handed to a downstream
// tool rather than streamed directly to the image backend.
type OutputEncoder interface {
	// EncodeJSON serializes a value to JSON bytes.
	EncodeJSON(value any) ([]byte, error)

	// EncodeTOON serializes a value to TOON format (token-efficient).
	EncodeTOON(value any) ([]byte, error)

	// DecodeJSON deserializes JSON bytes to a value.
	DecodeJSON(data []byte, value any) error

	// DecodeTOON deserializes TOON format to a value.
	DecodeTOON(data []byte, value any) error
}

// PathResolver resolves XDG-compliant paths for application data.
//
// Implementations MUST support XDG Base Directory Specification with env var
// overrides (LOKOPROMPT_CONFIG_HOME, XDG_CONFIG_HOME, XDG_DATA_HOME, XDG_CACHE_HOME).
type PathResolver interface {
	// ConfigDir returns the configuration directory path.
	ConfigDir() string

	// DataDir returns the data directory path.
	DataDir() string

	// CacheDir returns the cache directory path.
	CacheDir() string

	// ConfigFile returns the path to the global config file.
	ConfigFile() string

	// ConfigsRoot returns the root directory under which template, prompt,
	// chunk, variation-set and theme sources are looked up by relative path.
	ConfigsRoot() string

	// ThemesDir returns the path to the implicit-discovery themes directory.
	ThemesDir() string
}

// BuildStats holds statistics from a plan enumeration run for reporting.
type BuildStats struct {
	// ItemsEmitted is the count of RenderedItem values produced.
	ItemsEmitted int
	// WarningsEmitted is the count of non-fatal Warning values collected.
	WarningsEmitted int
	// Duration is the total enumeration time.
	Duration time.Duration
	// Format is the output encoding used when the plan was serialized (json, toon).
	Format string
}
