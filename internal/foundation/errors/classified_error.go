package errors

import (
	stderrors "errors"
	"fmt"
)

// ClassifiedError is a failure with a category, an optional cause and
// structured context.
type ClassifiedError struct {
	category ErrorCategory
	message  string
	cause    error
	context  ErrorContext
}

// Error renders "[category] message @ path: cause". The path and cause
// parts are left out when absent.
func (e *ClassifiedError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.category, e.message)
	if path, ok := e.context.GetString(pathKey); ok && path != "" {
		msg += " @ " + path
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *ClassifiedError) Unwrap() error { return e.cause }

func (e *ClassifiedError) Category() ErrorCategory { return e.category }
func (e *ClassifiedError) Message() string         { return e.message }
func (e *ClassifiedError) Cause() error            { return e.cause }
func (e *ClassifiedError) Context() ErrorContext   { return e.context }

// WithContext returns a copy of e with key set; e is not modified.
func (e *ClassifiedError) WithContext(key string, value any) *ClassifiedError {
	next := *e
	next.context = e.context.with(key, value)
	return &next
}

// Is matches another ClassifiedError with the same category and message.
func (e *ClassifiedError) Is(target error) bool {
	other, ok := target.(*ClassifiedError)
	return ok && e.category == other.category && e.message == other.message
}

// AsClassified finds the first ClassifiedError in err's chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	var ce *ClassifiedError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// HasCategory reports whether the first ClassifiedError in err's chain has
// the given category.
func HasCategory(err error, category ErrorCategory) bool {
	ce, ok := AsClassified(err)
	return ok && ce.category == category
}

// CategoryOf returns the category of err, CategoryInternal when err carries
// no classification.
func CategoryOf(err error) ErrorCategory {
	if ce, ok := AsClassified(err); ok {
		return ce.category
	}
	return CategoryInternal
}

// PathOf returns the path recorded on err, if any.
func PathOf(err error) string {
	if ce, ok := AsClassified(err); ok {
		path, _ := ce.context.GetString(pathKey)
		return path
	}
	return ""
}
