package errors

import (
	"fmt"
)

const (
	// usage err
	ErrUsage         = 1101
	ErrInvalidConfig = 1102

	// source err
	ErrOpenFile = 1201
	ErrReadFile = 1202

	// checksum err
	ErrChecksumFormat   = 1301
	ErrChecksumMismatch = 1302

	// other err
	ErrUnknown = 1701
)

var ErrCode = map[uint32]string{
	ErrUsage:            "Invalid command usage",
	ErrInvalidConfig:    "Invalid configuration",
	ErrOpenFile:         "Failed to open file",
	ErrReadFile:         "Failed to read file",
	ErrChecksumFormat:   "Improperly formatted checksum line",
	ErrChecksumMismatch: "Computed checksum did not match",
	ErrUnknown:          "Unknown error",
}

// CodedError attaches one of the codes above to an underlying error.
type CodedError struct {
	Code uint32
	Err  error
}

func (e *CodedError) Error() string {
	if e.Err == nil {
		return Message(e.Code)
	}
	return fmt.Sprintf("%s: %v", Message(e.Code), e.Err)
}

// Cause lets github.com/pkg/errors unwrap to the underlying error.
func (e *CodedError) Cause() error { return e.Err }

// Unwrap supports the standard errors package.
func (e *CodedError) Unwrap() error { return e.Err }

// New wraps err with code. A nil err yields an error carrying only the code message.
func New(code uint32, err error) error {
	return &CodedError{Code: code, Err: err}
}

// Message returns the description registered for code.
func Message(code uint32) string {
	if msg, ok := ErrCode[code]; ok {
		return msg
	}
	return ErrCode[ErrUnknown]
}

// Code returns the first code found walking err's wrap chain, ErrUnknown otherwise.
// Both pkg/errors causers and standard wrappers are followed one level at a time.
func Code(err error) uint32 {
	type causer interface{ Cause() error }
	type unwrapper interface{ Unwrap() error }

	for err != nil {
		switch e := err.(type) {
		case *CodedError:
			return e.Code
		case causer:
			err = e.Cause()
		case unwrapper:
			err = e.Unwrap()
		default:
			return ErrUnknown
		}
	}
	return ErrUnknown
}

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch Code(err) {
	case ErrUsage, ErrInvalidConfig:
		return 2
	default:
		return 1
	}
}
