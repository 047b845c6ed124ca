// Sentinel error values for the filesystem engine's error taxonomy: path
// resolution failures, type mismatches, exhausted resources, and command
// dispatch usage errors. The filesystem package returns these (usually
// wrapped with a path via WithMessage) when an operation changes nothing;
// shellapi and tests compare against them with errors.Is.

package errors

// DriverError is a DiskoError that has picked up a contextual message (a
// path, a command usage string) while staying comparable to its original
// sentinel via errors.Is/Unwrap.
type DriverError interface {
	error
	WithMessage(message string) DriverError
}

// customDriverError carries a DiskoError's contextual message; Unwrap
// exposes the original sentinel so errors.Is still matches against it.
type customDriverError struct {
	message       string
	originalError error
}

func (e customDriverError) Error() string {
	return e.message
}

func (e customDriverError) WithMessage(message string) DriverError {
	return customDriverError{
		message:       e.message + ": " + message,
		originalError: e,
	}
}

func (e customDriverError) Unwrap() error {
	return e.originalError
}

type DiskoError string

const ErrNotFound = DiskoError("No such file or directory")
const ErrExists = DiskoError("File exists")
const ErrTypeMismatch = DiskoError("Inappropriate type for operation")
const ErrNoSpaceOnDevice = DiskoError("No space left on device")
const ErrDirectoryFull = DiskoError("Directory block is full")
const ErrFileSystemCorrupted = DiskoError("Structure needs cleaning")
const ErrUsage = DiskoError("Missing or invalid argument")
const ErrUnknownCommand = DiskoError("Unknown command")
const ErrInvalidName = DiskoError("Invalid name")
const ErrNotMounted = DiskoError("Filesystem is not mounted")

func (e DiskoError) Error() string {
	return string(e)
}

func (e DiskoError) WithMessage(message string) DriverError {
	return customDriverError{
		message:       message,
		originalError: e,
	}
}
