package inventory

// errors.go defines the error taxonomy the HTTP layer maps to status
// codes, plus a pattern table that turns low-level storage errors into
// user-facing messages with support codes.
//
// Taxonomy:
//
//	ValidationError - malformed input; names the field(s) at fault
//	ConflictError   - duplicate name on create or rename
//	NotFoundError   - operation on a non-existent product id
//	StorageError    - underlying store failure; surfaced generically
//
// None of these leave partial state behind for the failing operation:
// a single row's or request's failure never corrupts unrelated records.

import (
	"fmt"
	"strings"
)

// FieldError names one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports malformed input. No state is mutated when one
// is returned.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ConflictError reports a duplicate product name under case-insensitive
// comparison.
type ConflictError struct {
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("product with name %q already exists", e.Name)
}

// NotFoundError reports an operation on an id with no product.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ID)
}

// StorageError wraps an underlying store failure. The operation that hit
// it was aborted.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// UserMessage provides user-friendly error information with a code for
// support reference.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error substrings (case-insensitive) to
// user messages. First match wins, so specific patterns come before
// general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "unique constraint",
		msg: UserMessage{
			Message: "A product with this name already exists",
			Action:  "Choose a different name",
			Code:    "DB001",
		},
	},
	{
		pattern: "foreign key constraint",
		msg: UserMessage{
			Message: "Referenced product does not exist",
			Action:  "Refresh and try again",
			Code:    "DB002",
		},
	},
	{
		pattern: "database is locked",
		msg: UserMessage{
			Message: "The store was busy with another operation",
			Action:  "Please try again in a moment",
			Code:    "DB003",
		},
	},
	{
		pattern: "parse error on line",
		msg: UserMessage{
			Message: "The CSV file could not be parsed",
			Action:  "Check the file for unbalanced quotes and re-upload",
			Code:    "CSV001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The request timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "REQ002",
		},
	},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error into a user-friendly message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}
