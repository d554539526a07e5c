package errors

import (
	"errors"
)

// Class tells which subsystem an error originates from.
type Class string

const (
	// ClassUndefined is the class of unclassified errors.
	ClassUndefined Class = ""

	// ClassTableLookup is the class of errors resolving a table identity.
	ClassTableLookup Class = "table_lookup"

	// ClassPropertyQuery is the class of errors reading an engine property.
	ClassPropertyQuery Class = "property_query"

	// ClassEngineIO is the class of errors returned by the storage engine
	// while reading or writing data.
	ClassEngineIO Class = "engine_io"

	// ClassConfig is the class of configuration errors.
	ClassConfig Class = "config"
)

type errorClassAnnotation struct {
	wrapped error
	class   Class
}

// let compiler verify interface compliance
var _ error = (*errorClassAnnotation)(nil)

func (a *errorClassAnnotation) Error() string {
	return a.wrapped.Error()
}

func (a *errorClassAnnotation) Unwrap() error {
	return a.wrapped
}

// errors.Is() would work without this method, but it
// provides a shortcut in case target is the wrapped error.
func (a *errorClassAnnotation) Is(target error) bool {
	return errors.Is(a.wrapped, target)
}

// Classify annotates a given error with an error class.
// If err is nil, the function returns nil.
func Classify(err error, class Class) error {
	if err == nil {
		return nil
	}
	return &errorClassAnnotation{
		wrapped: err,
		class:   class,
	}
}

// GetClass returns the class of the error.
// The innermost classification wins over outer ones.
func GetClass(err error) Class {
	result := ClassUndefined
	for err != nil {
		if annotation, ok := err.(*errorClassAnnotation); ok {
			result = annotation.class
		}
		err = errors.Unwrap(err)
	}
	return result
}
