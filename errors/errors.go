package errors

import (
	"errors"

	"go.uber.org/multierr"
)

// Error is a named class of failure. Causes are attached with Combine; the
// combined error still matches the class under Is.
type Error struct {
	desc string
}

// New creates a new error class with the given description.
func New(desc string) *Error {
	return &Error{desc: desc}
}

func (e *Error) Error() string {
	return e.desc
}

// Combine combines the error class with a cause. A nil cause returns the
// class itself.
func (e *Error) Combine(err error) error {
	return multierr.Append(e, err)
}

// Is reports whether err is, or was combined from, target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Causes returns the individual errors that make up err.
func Causes(err error) []error {
	return multierr.Errors(err)
}

// request-level errors
var (
	// Unknown is for those times when we just. don't. know.
	Unknown = New("Unknown error")

	// NotExists is used when the resolved path is missing or is not a regular file.
	NotExists = New("The file does not exist.")

	// Forbidden is used when the filesystem refuses access to the resolved path.
	Forbidden = New("Permission denied")

	// PathEscape is used when a request target resolves outside the served root.
	PathEscape = New("Path escapes the served directory")

	// StatFile is used when retrieving file information fails.
	StatFile = New("Retrieving file information")

	// ReadFile is used when reading the file contents fails.
	ReadFile = New("Reading file")

	// WriteResponse is used when the response body could not be written.
	WriteResponse = New("Writing response")

	// HandlerPanic is used when a handler panics and the panic is recovered.
	HandlerPanic = New("Recovered from handler panic")
)

// daemon-level errors
var (
	// InvalidConfig is used when the global configuration fails validation.
	InvalidConfig = New("Invalid configuration")

	// OpenRoot is used when the served directory cannot be opened.
	OpenRoot = New("Opening served directory")

	// Listen is used when the listener cannot be established or fails.
	Listen = New("Listening for connections")

	// Shutdown is used when the server does not shut down cleanly.
	Shutdown = New("Shutting down server")
)
