package api

import "fmt"

//ErrorType are remote failure types
type ErrorType int

//ErrorTypes
const (
	ErrorTypeNetwork ErrorType = iota
	ErrorTypeStatus
	ErrorTypeTimeout
	ErrorTypeStream
	ErrorTypePlaceholder
	ErrorTypeNotConfigured
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeNetwork:
		return "network"
	case ErrorTypeStatus:
		return "status"
	case ErrorTypeTimeout:
		return "timeout"
	case ErrorTypeStream:
		return "stream"
	case ErrorTypePlaceholder:
		return "placeholder"
	case ErrorTypeNotConfigured:
		return "not_configured"
	}
	return "unknown"
}

//Error wraps failures of the remote chat service. StatusCode is set for ErrorTypeStatus.
type Error struct {
	Description string
	Type        ErrorType
	StatusCode  int
	Err         error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("Remote Error (%s): %s", e.Type, e.Description)
	}
	return fmt.Sprintf("Remote Error (%s): %s: %v", e.Type, e.Description, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
