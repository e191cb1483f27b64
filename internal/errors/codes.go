package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK              Code = "OK"
	CodeCanceled        Code = "CANCELED"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeInternal        Code = "INTERNAL"
	CodeUnavailable     Code = "UNAVAILABLE"
	CodeDataLoss        Code = "DATA_LOSS"
)

// Process exit codes returned by the CLI
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// ExitCode returns the process exit code for the code.
// Bad user input exits with ExitUsage, everything else with ExitFailure.
func (c Code) ExitCode() int {
	switch c {
	case CodeOK:
		return ExitOK
	case CodeInvalidArgument:
		return ExitUsage
	default:
		return ExitFailure
	}
}
