package media

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedFormat is returned when no frame decoder handles the
	// detected content kind. Callers recover by taking the static path.
	ErrUnrecognizedFormat = errors.New("media: unrecognized format")

	// ErrEmptyDurationSchedule is wrapped by the schedule stage's Reason when
	// the durations cannot drive an animation. Callers take the static path.
	ErrEmptyDurationSchedule = errors.New("media: empty duration schedule")

	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("media: decode failed")

	// ErrEncode matches every *EncodeError.
	ErrEncode = errors.New("media: encode failed")

	// ErrAmbiguousContainer is wrapped by a DecodeError when stream roles
	// cannot be assigned unambiguously.
	ErrAmbiguousContainer = errors.New("media: ambiguous container")
)

// DecodeError reports a container that could not be opened or read.
type DecodeError struct {
	Kind ContentKind
	Op   string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("decode %s: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("decode %s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDecode) true for every DecodeError.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// NewDecodeError wraps err as a DecodeError.
func NewDecodeError(kind ContentKind, op string, err error) error {
	return &DecodeError{Kind: kind, Op: op, Err: err}
}

// EncodeError reports an encoder failure or an empty encoder output.
type EncodeError struct {
	Container Container
	Stderr    string
	Err       error
}

func (e *EncodeError) Error() string {
	msg := fmt.Sprintf("encode %s: %v", e.Container, e.Err)
	if e.Stderr != "" {
		msg += "\nstderr: " + e.Stderr
	}
	return msg
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrEncode) true for every EncodeError.
func (e *EncodeError) Is(target error) bool { return target == ErrEncode }

// ResourceCleanupFailure describes a staging area or decoder handle that
// could not be released. It is only ever logged.
type ResourceCleanupFailure struct {
	Resource string
	Err      error
}

func (e *ResourceCleanupFailure) Error() string {
	return fmt.Sprintf("cleanup %s: %v", e.Resource, e.Err)
}

func (e *ResourceCleanupFailure) Unwrap() error { return e.Err }
