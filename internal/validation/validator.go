// =============================================================================
// AGS Data Validator - Validation Engine
// =============================================================================
//
// This module runs the AGS4 rule set over one subject file. A run is a single
// synchronous pass:
//   1. Load the standard dictionary for the requested version
//   2. Decode the file, running row-scope rules inline (rule 8 is wired in as
//      the decoder's row hook)
//   3. Run the file-scope rules once over the finished model
//   4. Run the group-scope rules once per GROUP
//   5. Sort the findings by rule identifier
//
// ERROR HANDLING:
//   - Rule findings are collected, never returned as Go errors
//   - An unreadable file or unknown dictionary version aborts the run before
//     any finding is produced
//   - A rule whose precondition is missing (TRAN, TRAN_DLIM, ...) reports the
//     absence and skips only its dependent checks
//
// Rules live one per file (rule_*.go) and register themselves in init().
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/AGS-data-validator/internal/decoder"
	"github.com/ginjaninja78/AGS-data-validator/internal/dictionary"
	"github.com/ginjaninja78/AGS-data-validator/internal/model"
	"github.com/ginjaninja78/AGS-data-validator/internal/types"
	"github.com/ginjaninja78/AGS-data-validator/pkg/utils"
)

// ErrNotReadable is returned when the subject file cannot be opened or read.
var ErrNotReadable = errors.New("file is not readable")

// =============================================================================
// PROBER
// =============================================================================

// Prober answers existence questions about associated files.
type Prober interface {
	Exists(path string) bool
}

// ProberFunc adapts a function to a Prober.
type ProberFunc func(path string) bool

// Exists implements Prober.
func (f ProberFunc) Exists(path string) bool { return f(path) }

// =============================================================================
// ENGINE
// =============================================================================

// Engine validates AGS files. It holds no per-run state and may be shared
// between goroutines; each Run owns its own model and findings.
type Engine struct {
	logger   *slog.Logger
	disabled []types.RuleID
	prober   Prober
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithDisabledRules suppresses the given rules entirely.
func WithDisabledRules(ids ...types.RuleID) Option {
	return func(e *Engine) {
		e.disabled = append(e.disabled, ids...)
	}
}

// WithProber replaces the filesystem probe used for FILE references.
func WithProber(p Prober) Option {
	return func(e *Engine) {
		if p != nil {
			e.prober = p
		}
	}
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger: slog.Default(),
		prober: ProberFunc(utils.IsRegularFile),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of one run.
type Result struct {
	// Container is the decoded file, for read-only downstream use.
	Container *model.Container

	// Errors holds the findings stably sorted by ascending RuleID.
	Errors []types.RuleError

	Version  dictionary.Version
	Duration time.Duration
}

// Valid reports whether the run produced no findings.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// Run validates the file at path against the given dictionary version.
//
// PARAMETERS:
//   - path: The subject file.
//   - version: The standard dictionary edition.
//
// RETURNS:
//   - The decoded Container.
//   - The findings, stably sorted by RuleID.
//   - ErrNotReadable or dictionary.ErrUnknownVersion (wrapped) when the run
//     cannot start; no findings are returned in that case.
func (e *Engine) Run(path string, version dictionary.Version) (*model.Container, []types.RuleError, error) {
	res, err := e.Validate(path, version)
	if err != nil {
		return nil, nil, err
	}
	return res.Container, res.Errors, nil
}

// Validate is Run returning a Result.
func (e *Engine) Validate(path string, version dictionary.Version) (*Result, error) {
	dict, err := dictionary.Load(version)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotReadable, err)
	}
	defer f.Close()

	return e.run(f, path, dict)
}

// ValidateReader validates content read from r. path is recorded on the
// Container and locates associated FILE references; it may be "".
func (e *Engine) ValidateReader(r io.Reader, path string, version dictionary.Version) (*Result, error) {
	dict, err := dictionary.Load(version)
	if err != nil {
		return nil, err
	}
	return e.run(r, path, dict)
}

func (e *Engine) run(r io.Reader, path string, dict *dictionary.Dictionary) (*Result, error) {
	start := time.Now()
	log := e.logger.With("file", path, "dictionary", dict.Version.String())
	log.Debug("validation started")

	errs := types.NewCollector(e.disabled...)

	dec := decoder.NewDecoder(r, path, errs)
	if !errs.Disabled(types.RuleDataType) {
		dec.OnRow(func(g *model.Group, index int) {
			checkDataTypes(errs, g, index)
		})
	}
	container, err := dec.Decode()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotReadable, err)
	}
	log.Debug("decoded", "lines", dec.Line(), "groups", container.Len(), "row_findings", errs.Len())

	ctx := &Context{
		Container: container,
		Schema:    dictionary.NewSchema(dict, container),
		Dir:       filepath.Dir(path),
		Prober:    e.prober,
		Logger:    log,
		errs:      errs,
	}

	for _, rule := range RulesByScope(ScopeFile) {
		if errs.Disabled(rule.ID) || rule.File == nil {
			continue
		}
		rule.File(ctx)
	}
	log.Debug("file rules done", "findings", errs.Len())

	for _, rule := range RulesByScope(ScopeGroup) {
		if errs.Disabled(rule.ID) || rule.Group == nil {
			continue
		}
		for _, g := range container.Groups() {
			rule.Group(ctx, g)
		}
	}

	res := &Result{
		Container: container,
		Errors:    errs.Sorted(),
		Version:   dict.Version,
		Duration:  time.Since(start),
	}
	log.Info("validation finished", "findings", len(res.Errors), "duration", res.Duration)
	return res, nil
}
