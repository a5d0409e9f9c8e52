package textbuf

import "errors"

// Internal sentinels. The command handlers one layer up promote these
// to the stable errcode identities callers switch on.
var (
	errLineIndexOutOfRange = errors.New("textbuf: byte index out of range")
	errLineMissing         = errors.New("textbuf: line not found")
	errBufferMissing       = errors.New("textbuf: buffer not found")
)

// IsIndexError reports whether err originated from an out-of-range
// index in InsertBytes, DeleteBytes, InsertLine or SplitLine.
func IsIndexError(err error) bool { return errors.Is(err, errLineIndexOutOfRange) }

// IsLineMissing reports whether err means the requested line does not
// exist in the buffer.
func IsLineMissing(err error) bool { return errors.Is(err, errLineMissing) }

// IsBufferMissing reports whether err means the requested buffer id has
// no live buffer behind it.
func IsBufferMissing(err error) bool { return errors.Is(err, errBufferMissing) }
