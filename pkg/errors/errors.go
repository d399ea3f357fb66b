// Package errors provides structured error handling for the planetgen
// pipeline. Error types carry stack traces via cockroachdb/errors and
// implement zerolog object marshaling so they can be logged with full
// context.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("planetgen warning: %v\n", w)
	}
)

// SetWarningHandler replaces the process-wide warning handler. Fits that
// degrade but do not fail (for example a mixture component collapsing to a
// handful of samples) are reported through this hook.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// Warn emits a warning through the configured handler.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// NotFittedError is returned when Predict, Transform or Save is called on a
// model that has not been fitted or loaded.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("planetgen: %s: this model is not fitted yet. Call Fit() or Load() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace attached.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// InsufficientSamplesError is returned when the training partition is too
// small for the requested cross-validation layout. Cross-validation at the
// maximum polynomial degree needs at least folds*(maxDegree+1) rows, so the
// pipeline validates sample counts up front instead of letting fold fits
// silently degrade.
type InsufficientSamplesError struct {
	Op       string
	Required int
	Got      int
	Folds    int
	MaxDeg   int
}

func (e *InsufficientSamplesError) Error() string {
	return fmt.Sprintf("planetgen: %s: %d training samples is not enough for %d-fold CV at degree %d (need at least %d)",
		e.Op, e.Got, e.Folds, e.MaxDeg, e.Required)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *InsufficientSamplesError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("required", e.Required).
		Int("got", e.Got).
		Int("folds", e.Folds).
		Int("max_degree", e.MaxDeg).
		Str("type", "InsufficientSamplesError")
}

// NewInsufficientSamplesError creates an InsufficientSamplesError with a
// stack trace attached.
func NewInsufficientSamplesError(op string, required, got, folds, maxDeg int) error {
	err := &InsufficientSamplesError{Op: op, Required: required, Got: got, Folds: folds, MaxDeg: maxDeg}
	return errors.WithStack(err)
}

// InvalidDistanceError is returned when a negative or non-finite orbital
// distance is passed to Predict.
type InvalidDistanceError struct {
	Op    string
	Index int
	Value float64
}

func (e *InvalidDistanceError) Error() string {
	return fmt.Sprintf("planetgen: %s: invalid orbital distance %v at index %d (must be finite and non-negative)",
		e.Op, e.Value, e.Index)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *InvalidDistanceError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("index", e.Index).
		Float64("value", e.Value).
		Str("type", "InvalidDistanceError")
}

// NewInvalidDistanceError creates an InvalidDistanceError with a stack trace
// attached.
func NewInvalidDistanceError(op string, index int, value float64) error {
	err := &InvalidDistanceError{Op: op, Index: index, Value: value}
	return errors.WithStack(err)
}

// DimensionError is returned when input data has an unexpected shape.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("planetgen: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError is returned when an argument value is out of range or otherwise
// unusable.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("planetgen: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError is a general error raised while fitting or applying a model.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("planetgen: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("planetgen: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError creates a ModelError with a stack trace attached.
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// ===========================================================================
//
//	Warnings
//
// ===========================================================================

// SparseComponentWarning is emitted when a mixture component ends up with too
// few assigned samples to estimate a property profile, and a fallback profile
// is used instead.
type SparseComponentWarning struct {
	Component int
	Count     int
}

func (w *SparseComponentWarning) Error() string {
	return fmt.Sprintf("mixture component %d has only %d assigned samples; using fallback property profile", w.Component, w.Count)
}

// MarshalZerologObject adds structured warning fields to a zerolog event.
func (w *SparseComponentWarning) MarshalZerologObject(event *zerolog.Event) {
	event.Int("component", w.Component).
		Int("count", w.Count).
		Str("type", "SparseComponentWarning")
}

// NewSparseComponentWarning creates a SparseComponentWarning.
func NewSparseComponentWarning(component, count int) *SparseComponentWarning {
	return &SparseComponentWarning{Component: component, Count: count}
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error values
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an empty matrix or sample set is passed in.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is returned when the normal equations cannot be solved.
	ErrSingularMatrix = New("singular matrix")

	// ErrNotConverged is returned when EM fails to converge for every
	// candidate component count.
	ErrNotConverged = New("estimation did not converge")
)
