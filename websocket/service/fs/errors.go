package fs

import (
	"errors"
	iofs "io/fs"
)

// Kind classifies a filesystem failure so callers can branch on it instead
// of matching error text.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindNotFound
	KindNotADirectory
	KindIO
	KindInvalidPath
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindNotADirectory:
		return "NotADirectory"
	case KindIO:
		return "IOError"
	case KindInvalidPath:
		return "InvalidPath"
	}
	return ""
}

// Error implements error so a Kind can be used as an errors.Is target.
func (k Kind) Error() string {
	return k.String()
}

var (
	ErrNotFound      error = KindNotFound
	ErrNotADirectory error = KindNotADirectory
	ErrIO            error = KindIO
	ErrInvalidPath   error = KindInvalidPath
)

// Error is returned by every FileSystem operation.
type Error struct {
	Op   string
	Path string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op + " " + e.Path
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg + ": " + e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// KindOf reports the Kind of err, or KindUnknown if err did not come from a
// FileSystem operation.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

var (
	errNotExist     = errors.New("path does not exist")
	errNotDirectory = errors.New("path is not a directory")
	errIsDirectory  = errors.New("source is a directory")
	errSameFile     = errors.New("source and destination are the same file")
	errNoParent     = errors.New("cannot get parent directory")
	errBadName      = errors.New("name must be a single path component")
)

func newError(op, path string, kind Kind, err error) *Error {
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}

// ioError wraps an OS error as KindIO. A *PathError naming the same path is
// dropped since Error already carries op and path; one naming a nested entry
// is kept so the message points at the entry that failed.
func ioError(op, path string, err error) *Error {
	if pe, ok := err.(*iofs.PathError); ok && pe.Path == path {
		err = pe.Err
	}
	return newError(op, path, KindIO, err)
}
