package dataproperty

import (
	"errors"
	"fmt"

	"github.com/bjaus/dataproperty/typecheck"
)

// Sentinel errors for programmatic error handling.
var (
	ErrTypeInferenceFailed  = errors.New("type inference failed")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrNonUniformMatrix     = errors.New("non-uniform matrix")
	ErrNotANumber           = errors.New("not a number")
)

// InferenceError reports a value that no type accepted.
type InferenceError struct {
	Value          any
	StrictLevelMap StrictLevelMap
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("%s: value %v (%T), strict levels %v", ErrTypeInferenceFailed, e.Value, e.Value, e.StrictLevelMap)
}

// Unwrap returns ErrTypeInferenceFailed.
func (e *InferenceError) Unwrap() error { return ErrTypeInferenceFailed }

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

func validateTypeHint(tc typecheck.Typecode) error {
	if !tc.IsValid() {
		return invalidConfig("unknown type hint %s", tc)
	}
	return nil
}
