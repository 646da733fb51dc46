// Package loader fetches raw note content for catalog entries.
package loader

import (
	"errors"
	"fmt"
)

// Kind classifies a load failure.
type Kind int

const (
	// KindNotFound means the note does not exist at its path or is not in the catalog.
	KindNotFound Kind = iota + 1
	// KindTransport means the fetch failed for network or format reasons.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindTransport:
		return "transport error"
	default:
		return "unknown"
	}
}

var (
	// ErrNotFound matches any *Error of KindNotFound via errors.Is.
	ErrNotFound = errors.New("document not found")
	// ErrTransport matches any *Error of KindTransport via errors.Is.
	ErrTransport = errors.New("document transport error")
	// ErrSuperseded is returned for a load that finished after a newer load
	// was started. Its result must be discarded.
	ErrSuperseded = errors.New("load superseded by a newer selection")
)

// Error is a classified load failure for one note.
type Error struct {
	Kind Kind
	ID   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("loading %s: %s", e.ID, e.Kind)
	}
	return fmt.Sprintf("loading %s: %s: %v", e.ID, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrTransport:
		return e.Kind == KindTransport
	}
	return false
}

// NotFound builds a KindNotFound error.
func NotFound(id string, err error) *Error {
	return &Error{Kind: KindNotFound, ID: id, Err: err}
}

// Transport builds a KindTransport error.
func Transport(id string, err error) *Error {
	return &Error{Kind: KindTransport, ID: id, Err: err}
}

// KindOf returns the Kind of err, or 0 if err is not a classified load error.
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return 0
}
