// Package errorx defines the error categories surfaced to chat users.
// Every command failure is mapped to exactly one of these categories at
// the dispatch boundary and rendered as a single reply.
package errorx

import (
	"errors"
	"fmt"
)

type Code int

const (
	Unknown Code = iota
	Validation
	Unauthorized
	NotFound
	NoAssets
	Upstream
	Storage
)

var codeNames = map[Code]string{
	Unknown:      "unknown",
	Validation:   "validation",
	Unauthorized: "unauthorized",
	NotFound:     "not_found",
	NoAssets:     "no_assets",
	Upstream:     "upstream",
	Storage:      "storage",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown"
}

// Error carries a category and a user-visible message. The wrapped cause
// is for logs only and is never shown to chat users.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a categorized error. The message stays
// user-facing; the cause surfaces only through Error()/Unwrap().
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: cause}
}

// CodeOf returns the category of err, or Unknown for uncategorized errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Unknown
}

// UserMessage returns the reply text for err. Uncategorized errors get a
// generic apology so internals never leak into the channel.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "🚫 Something went wrong. Try again later."
}
