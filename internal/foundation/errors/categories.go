package errors

// ErrorCategory classifies a failure. The CLI derives its exit code from it.
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// CategoryIO is any filesystem failure, path resolution included.
	CategoryIO ErrorCategory = "io"
	// CategoryDecode is file content that is not valid UTF-8.
	CategoryDecode ErrorCategory = "decode"

	CategoryParse  ErrorCategory = "parse"
	CategoryRender ErrorCategory = "render"

	CategoryInternal ErrorCategory = "internal"
)

var exitCodes = map[ErrorCategory]int{
	CategoryValidation: 2,
	CategoryConfig:     7,
	CategoryInternal:   10,
	CategoryIO:         11,
	CategoryDecode:     11,
	CategoryParse:      13,
	CategoryRender:     13,
}

// ExitCode is the process exit status for a failure of category c.
// Unknown categories exit with 1.
func (c ErrorCategory) ExitCode() int {
	if code, ok := exitCodes[c]; ok {
		return code
	}
	return 1
}

// ErrorContext carries structured details. The "path" key names the file
// or directory the failure is about.
type ErrorContext map[string]any

const pathKey = "path"

// Get returns the value stored under key.
func (c ErrorContext) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// GetString returns the value under key when it is a string.
func (c ErrorContext) GetString(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}

// with returns a copy of c with key set.
func (c ErrorContext) with(key string, value any) ErrorContext {
	next := make(ErrorContext, len(c)+1)
	for k, v := range c {
		next[k] = v
	}
	next[key] = value
	return next
}
