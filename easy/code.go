package easy

import (
	"errors"
	"fmt"
)

// Code is a transfer result code. Values match libcurl's CURLcode.
type Code int

const (
	OK                  Code = 0
	UnsupportedProtocol Code = 1
	URLMalformat        Code = 3
	NotBuiltIn          Code = 4
	HTTPReturnedError   Code = 22
	WriteError          Code = 23
	OutOfMemory         Code = 27
	OperationTimedout   Code = 28
	BadFunctionArgument Code = 43
	UnknownOption       Code = 48
)

var codeNames = map[Code]string{
	OK:                  "CURLE_OK",
	UnsupportedProtocol: "CURLE_UNSUPPORTED_PROTOCOL",
	URLMalformat:        "CURLE_URL_MALFORMAT",
	NotBuiltIn:          "CURLE_NOT_BUILT_IN",
	HTTPReturnedError:   "CURLE_HTTP_RETURNED_ERROR",
	WriteError:          "CURLE_WRITE_ERROR",
	OutOfMemory:         "CURLE_OUT_OF_MEMORY",
	OperationTimedout:   "CURLE_OPERATION_TIMEDOUT",
	BadFunctionArgument: "CURLE_BAD_FUNCTION_ARGUMENT",
	UnknownOption:       "CURLE_UNKNOWN_OPTION",
}

var codeText = map[Code]string{
	OK:                  "No error",
	UnsupportedProtocol: "Unsupported protocol",
	URLMalformat:        "URL using bad/illegal format or missing URL",
	NotBuiltIn:          "Not built-in",
	HTTPReturnedError:   "HTTP operation failed",
	WriteError:          "Failed writing received data to disk/application",
	OutOfMemory:         "Out of memory",
	OperationTimedout:   "Timeout was reached",
	BadFunctionArgument: "Bad function argument",
	UnknownOption:       "Unknown option",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CURLE(%d)", int(c))
}

// StrError returns the static human-readable text for c.
func StrError(c Code) string {
	if text, ok := codeText[c]; ok {
		return text
	}
	return "Unknown error code"
}

var (
	// ErrDestroyed is reported for operations on a handle after Cleanup.
	ErrDestroyed = errors.New("handle destroyed")
	// ErrKindMismatch is reported when an Arg's kind differs from what the option expects.
	ErrKindMismatch = errors.New("argument kind mismatch")
	// ErrInvalidUTF8 is reported for string arguments that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8")
	// ErrOutOfRange is reported for numeric arguments outside the accepted range.
	ErrOutOfRange = errors.New("value out of range")
	// ErrFuncType is reported when a callback argument has an unsupported signature.
	ErrFuncType = errors.New("unsupported callback type")
)

// Error pairs a result code with the error that produced it.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", StrError(e.Code), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// codeOf extracts the result code carried by err, or fallback when err has none.
func codeOf(err error, fallback Code) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return fallback
}
