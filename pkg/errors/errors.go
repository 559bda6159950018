// Package errors provides structured error handling for ragtext
package errors

import (
	"fmt"
	"strings"

	"github.com/ragtext/ragtext/pkg/types"
)

// ErrorCode represents specific error codes
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigMissing ErrorCode = "CONFIG_MISSING"

	// Chunking errors
	ErrCodeUnsupportedStrategy ErrorCode = "UNSUPPORTED_STRATEGY"
	ErrCodeSourceNotFound      ErrorCode = "SOURCE_NOT_FOUND"
	ErrCodeFileError           ErrorCode = "FILE_ERROR"

	// Collaborator errors
	ErrCodeEmbeddingError ErrorCode = "EMBEDDING_ERROR"
	ErrCodeVectorDBError  ErrorCode = "VECTORDB_ERROR"
	ErrCodeLLMError       ErrorCode = "LLM_ERROR"

	// System errors
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// RagError represents a structured error in ragtext
type RagError struct {
	Type    types.ErrorType        `json:"type"`
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *RagError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (caused by: %v)", e.Code, e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *RagError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *RagError) WithDetail(key string, value interface{}) *RagError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new RagError
func New(errType types.ErrorType, code ErrorCode, message string) *RagError {
	return &RagError{
		Type:    errType,
		Code:    code,
		Message: message,
	}
}

// NewWithCause creates a new RagError wrapping a cause
func NewWithCause(errType types.ErrorType, code ErrorCode, message string, cause error) *RagError {
	return &RagError{
		Type:    errType,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigError reports invalid chunker or service parameters. Detected
// eagerly, never retried.
func NewConfigError(message string) *RagError {
	return New(types.ErrorTypeValidation, ErrCodeConfigInvalid, message)
}

// NewUnsupportedStrategyError reports an unknown chunk strategy identifier.
func NewUnsupportedStrategyError(strategy string) *RagError {
	return New(types.ErrorTypeValidation, ErrCodeUnsupportedStrategy,
		fmt.Sprintf("unsupported chunk type: %s", strategy)).WithDetail("strategy", strategy)
}

// NewSourceNotFoundError reports a missing or unreadable text source.
func NewSourceNotFoundError(source string) *RagError {
	return New(types.ErrorTypeNotFound, ErrCodeSourceNotFound,
		fmt.Sprintf("source not found: %s", source)).WithDetail("source", source)
}

// NewFileError reports a failure reading or decoding a source file.
func NewFileError(message string, cause error) *RagError {
	return NewWithCause(types.ErrorTypeInternal, ErrCodeFileError, message, cause)
}

// NewEmbeddingError reports a failure from an embedding backend.
func NewEmbeddingError(message string, cause error) *RagError {
	return NewWithCause(types.ErrorTypeExternal, ErrCodeEmbeddingError, message, cause)
}

// NewVectorDBError reports a failure from the vector store.
func NewVectorDBError(message string, cause error) *RagError {
	return NewWithCause(types.ErrorTypeExternal, ErrCodeVectorDBError, message, cause)
}

// NewLLMError reports a failure from the answer-generating model.
func NewLLMError(message string, cause error) *RagError {
	return NewWithCause(types.ErrorTypeExternal, ErrCodeLLMError, message, cause)
}

// NewInternalError reports an unexpected internal failure.
func NewInternalError(message string, cause error) *RagError {
	return NewWithCause(types.ErrorTypeInternal, ErrCodeInternal, message, cause)
}

// IsRagError checks if an error is a RagError
func IsRagError(err error) bool {
	_, ok := err.(*RagError)
	return ok
}

// GetRagError extracts a RagError from an error
func GetRagError(err error) *RagError {
	if ragErr, ok := err.(*RagError); ok {
		return ragErr
	}
	return nil
}

// HasCode reports whether err is a RagError carrying the given code.
func HasCode(err error, code ErrorCode) bool {
	ragErr := GetRagError(err)
	return ragErr != nil && ragErr.Code == code
}

// ErrorList represents a list of errors
type ErrorList struct {
	Errors []*RagError `json:"errors"`
}

// Error implements the error interface
func (el *ErrorList) Error() string {
	var messages []string
	for _, err := range el.Errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// Add adds an error to the list
func (el *ErrorList) Add(err *RagError) {
	el.Errors = append(el.Errors, err)
}

// HasErrors returns true if there are errors
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// ToError returns the ErrorList as an error if it has errors, otherwise nil
func (el *ErrorList) ToError() error {
	if el.HasErrors() {
		return el
	}
	return nil
}

// NewErrorList creates a new error list
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*RagError, 0),
	}
}
