// Package errors provides the structured error type used across dndtools.
//
// Errors carry a Code, an optional Reason, a message, an optional cause, and
// metadata. The Code decides the process exit status; the Reason lets callers
// tell apart failures that share a code.
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.InvalidArgument("missing dice")
//	err := errors.InvalidArgumentf("unsupported die size: %d", sides).
//	    WithReason("UNSUPPORTED_DIE").
//	    WithMeta("expression", expr)
//
// Wrapping errors keeps the code and reason of the wrapped error:
//
//	if err := sink.Write(block); err != nil {
//	    return errors.Wrap(err, "failed to write stat block")
//	}
//
// # Error Checking
//
// Matching on code alone, or on code and reason:
//
//	if errors.IsInvalidArgument(err) {
//	    // user error
//	}
//	if errors.Is(err, dice.ErrUnsupportedDie) {
//	    // specifically an unsupported die
//	}
//
// # Exit Codes
//
// The CLI maps errors to exit codes with ExitCode:
//   - OK: 0
//   - InvalidArgument: 2 (bad flags, bad dice expressions)
//   - everything else: 1 (I/O failures, internal errors)
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateMin("count", input.Count, 1, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
