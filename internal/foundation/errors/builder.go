package errors

// ErrorBuilder assembles a ClassifiedError.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts a ClassifiedError without a cause.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{category: category, message: message}}
}

// WrapError starts a ClassifiedError around cause.
func WrapError(cause error, category ErrorCategory, message string) *ErrorBuilder {
	b := NewError(category, message)
	b.err.cause = cause
	return b
}

func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context = b.err.context.with(key, value)
	return b
}

// WithPath records the file or directory the failure is about.
func (b *ErrorBuilder) WithPath(path string) *ErrorBuilder {
	return b.WithContext(pathKey, path)
}

// Build returns the error. The builder may be reused afterwards.
func (b *ErrorBuilder) Build() *ClassifiedError {
	e := b.err
	return &e
}

func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message)
}

func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message)
}

// IOError wraps a filesystem failure at path.
func IOError(cause error, message, path string) *ErrorBuilder {
	return WrapError(cause, CategoryIO, message).WithPath(path)
}

// DecodeError reports content at path that is not valid UTF-8 text.
func DecodeError(message, path string) *ErrorBuilder {
	return NewError(CategoryDecode, message).WithPath(path)
}

func ParseError(cause error, message string) *ErrorBuilder {
	return WrapError(cause, CategoryParse, message)
}

func RenderError(cause error, message string) *ErrorBuilder {
	return WrapError(cause, CategoryRender, message)
}

func InternalError(message string) *ErrorBuilder {
	return NewError(CategoryInternal, message)
}
