package types

import (
	"fmt"

	"github.com/arthur-debert/dotlink/pkg/errors"
)

// LinkRequest asks for Destination to be a symlink pointing at Source.
// Both paths are absolute.
type LinkRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// OutcomeKind enumerates everything reconciling a single request can produce.
type OutcomeKind int

const (
	OutcomeCreated OutcomeKind = iota
	OutcomeAlreadyLinked
	OutcomeSourceNotFound
	OutcomeDestinationDirectoryMissing
	OutcomeDestinationConflict
	OutcomeSystemError
)

// AllOutcomeKinds lists the kinds in display order.
var AllOutcomeKinds = []OutcomeKind{
	OutcomeCreated,
	OutcomeAlreadyLinked,
	OutcomeSourceNotFound,
	OutcomeDestinationDirectoryMissing,
	OutcomeDestinationConflict,
	OutcomeSystemError,
}

// String returns the stable identifier of the kind
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCreated:
		return "created"
	case OutcomeAlreadyLinked:
		return "already_linked"
	case OutcomeSourceNotFound:
		return "source_not_found"
	case OutcomeDestinationDirectoryMissing:
		return "destination_directory_missing"
	case OutcomeDestinationConflict:
		return "destination_conflict"
	case OutcomeSystemError:
		return "system_error"
	default:
		return "unknown"
	}
}

// IsSuccess reports whether the kind leaves the desired link in place.
func (k OutcomeKind) IsSuccess() bool {
	return k == OutcomeCreated || k == OutcomeAlreadyLinked
}

// LinkOutcome is the result of reconciling one LinkRequest.
// Err is set only for OutcomeSystemError.
type LinkOutcome struct {
	Kind OutcomeKind
	Err  error
}

// Created and the other constructors below build outcomes without a cause.
func Created() LinkOutcome       { return LinkOutcome{Kind: OutcomeCreated} }
func AlreadyLinked() LinkOutcome { return LinkOutcome{Kind: OutcomeAlreadyLinked} }
func SourceNotFound() LinkOutcome {
	return LinkOutcome{Kind: OutcomeSourceNotFound}
}
func DestinationDirectoryMissing() LinkOutcome {
	return LinkOutcome{Kind: OutcomeDestinationDirectoryMissing}
}
func DestinationConflict() LinkOutcome {
	return LinkOutcome{Kind: OutcomeDestinationConflict}
}

// SystemError wraps an unexpected filesystem failure with its classification.
func SystemError(kind errors.ErrorCode, err error) LinkOutcome {
	return LinkOutcome{
		Kind: OutcomeSystemError,
		Err:  errors.Wrap(err, kind, "filesystem operation failed"),
	}
}

// IsSuccess reports whether the outcome is Created or AlreadyLinked.
func (o LinkOutcome) IsSuccess() bool {
	return o.Kind.IsSuccess()
}

// SystemKind returns the classification of a SystemError outcome, or
// ErrUnknown for every other kind.
func (o LinkOutcome) SystemKind() errors.ErrorCode {
	if o.Kind != OutcomeSystemError {
		return errors.ErrUnknown
	}
	return errors.GetErrorCode(o.Err)
}

// Message is the human readable result line for the outcome.
func (o LinkOutcome) Message() string {
	switch o.Kind {
	case OutcomeCreated:
		return "Linked"
	case OutcomeAlreadyLinked:
		return "Already linked"
	case OutcomeSourceNotFound:
		return "Source not found"
	case OutcomeDestinationDirectoryMissing:
		return "Destination directory not found"
	case OutcomeDestinationConflict:
		return "Destination exists"
	case OutcomeSystemError:
		var cause error = o.Err
		if de, ok := o.Err.(*errors.DotlinkError); ok && de.Wrapped != nil {
			cause = de.Wrapped
		}
		return fmt.Sprintf("System error (%s): %v", o.SystemKind(), cause)
	default:
		return "Unknown outcome"
	}
}

func (o LinkOutcome) String() string {
	return o.Kind.String()
}
