// Package errors provides the classified error type used across sitegen.
//
// Every failure aborts the run, so classification only drives presentation:
// the category picks the CLI exit code and the context records the failing
// path for the message.
//
//	err := errors.IOError(cause, "failed to list directory", dir).Build()
//	errors.PathOf(err) // dir
package errors
