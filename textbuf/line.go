// Package textbuf implements a line-structured text engine: growable
// UTF-8 byte lines linked into buffers, and a sparse table of buffers
// addressed by stable integer ids. Lines store raw bytes; codepoint
// column addressing is a separate translation step (see ColumnToByte)
// applied by callers before mutating a line.
package textbuf

const initialLineCapacity = 256

// Line is an owned, growable byte sequence plus its siblings in a
// Buffer's doubly-linked list. Capacity grows by doubling from 256 and
// never shrinks, so Line manages its own backing array instead of
// leaning on append's growth factor.
type Line struct {
	data []byte
	size int

	prev *Line
	next *Line
}

// NewLine returns an empty line with no backing storage yet; the first
// InsertBytes call allocates it.
func NewLine() *Line {
	return &Line{}
}

// Bytes returns the line's current content. The slice is a borrow,
// valid until the next mutation of this line.
func (l *Line) Bytes() []byte {
	if l == nil {
		return nil
	}
	return l.data[:l.size]
}

// Size returns the current byte length.
func (l *Line) Size() int {
	if l == nil {
		return 0
	}
	return l.size
}

// Prev returns the previous sibling line, or nil at the head.
func (l *Line) Prev() *Line {
	if l == nil {
		return nil
	}
	return l.prev
}

// Next returns the next sibling line, or nil at the tail.
func (l *Line) Next() *Line {
	if l == nil {
		return nil
	}
	return l.next
}

func growCapacity(have, need int) int {
	newCap := initialLineCapacity
	for newCap < need {
		newCap *= 2
	}
	if newCap < have {
		newCap = have
	}
	return newCap
}

func (l *Line) ensureCapacity(need int) {
	if cap(l.data) >= need {
		return
	}
	grown := make([]byte, l.size, growCapacity(cap(l.data), need))
	copy(grown, l.data[:l.size])
	l.data = grown
}

// InsertBytes splices data into the line at byteIndex. byteIndex == -1
// means append at the current end. Fails if byteIndex is greater than
// the current size. Bytes outside the insertion window are preserved.
func (l *Line) InsertBytes(byteIndex int, data []byte) error {
	if byteIndex == -1 {
		byteIndex = l.size
	}
	if byteIndex < 0 || byteIndex > l.size {
		return errLineIndexOutOfRange
	}
	incoming := len(data)
	// +1 keeps room for a trailing NUL, the storage convention lines use.
	l.ensureCapacity(l.size + incoming + 1)
	l.data = l.data[:cap(l.data)]
	copy(l.data[byteIndex+incoming:l.size+incoming], l.data[byteIndex:l.size])
	copy(l.data[byteIndex:byteIndex+incoming], data)
	l.size += incoming
	l.data = l.data[:l.size]
	return nil
}

// DeleteBytes removes size bytes starting at byteIndex, clamping size
// to the bytes actually available. Fails if byteIndex is greater than
// the current size or the line has no backing storage yet.
func (l *Line) DeleteBytes(byteIndex, size int) error {
	if l.data == nil || byteIndex > l.size {
		return errLineIndexOutOfRange
	}
	if byteIndex < 0 || size < 0 {
		return errLineIndexOutOfRange
	}
	if size > l.size-byteIndex {
		size = l.size - byteIndex
	}
	full := l.data[:cap(l.data)]
	copy(full[byteIndex:l.size-size], full[byteIndex+size:l.size])
	l.size -= size
	l.data = full[:l.size]
	return nil
}
