package textbuf

// Buffer owns a doubly-linked list of lines in insertion-visible order
// and tracks the reachable line count. There is no sentinel node: an
// empty buffer has a nil head.
type Buffer struct {
	head *Line
	size int
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Size returns the number of lines reachable from the head.
func (b *Buffer) Size() int {
	if b == nil {
		return 0
	}
	return b.size
}

// Head returns the first line, or nil when the buffer is empty.
func (b *Buffer) Head() *Line {
	if b == nil {
		return nil
	}
	return b.head
}

// InsertLine splices line into the list at index. A negative index
// appends at the tail. Fails if index exceeds the current line count
// or line is nil. Index 0 makes line the new head.
func (b *Buffer) InsertLine(line *Line, index int) error {
	if line == nil {
		return errLineMissing
	}
	if index < 0 {
		index = b.size
	}
	if index > b.size {
		return errLineIndexOutOfRange
	}
	if index == 0 {
		line.next = b.head
		line.prev = nil
		if b.head != nil {
			b.head.prev = line
		}
		b.head = line
		b.size++
		return nil
	}
	pred := b.head
	for i := 0; pred != nil && i < index-1; i++ {
		pred = pred.next
	}
	if pred == nil {
		return errLineIndexOutOfRange
	}
	line.next = pred.next
	line.prev = pred
	if pred.next != nil {
		pred.next.prev = line
	}
	pred.next = line
	b.size++
	return nil
}

// DeleteLine unlinks line from its neighbors, repointing the head when
// the head itself is removed, and drops the line's storage.
func (b *Buffer) DeleteLine(line *Line) {
	if line == nil {
		return
	}
	prev, next := line.prev, line.next
	if prev != nil {
		prev.next = next
	} else {
		b.head = next
	}
	if next != nil {
		next.prev = prev
	}
	if b.size > 0 {
		b.size--
	}
	line.data = nil
	line.prev = nil
	line.next = nil
}

// GetLine returns the line at index, counting from the head. A negative
// index yields the last line. Returns nil when index is out of range.
func (b *Buffer) GetLine(index int) *Line {
	if b == nil {
		return nil
	}
	if index < 0 {
		index = b.size - 1
	}
	if index < 0 || index >= b.size {
		return nil
	}
	cur := b.head
	for i := 0; cur != nil && i < index; i++ {
		cur = cur.next
	}
	return cur
}

// SplitLine moves the bytes of line from byteIndex onward into a fresh
// line spliced immediately after it, returning the new line. Fails if
// byteIndex is past the end of line. On failure the new line is
// discarded and the buffer is left untouched.
func (b *Buffer) SplitLine(line *Line, byteIndex int) (*Line, error) {
	if line == nil {
		return nil, errLineMissing
	}
	if byteIndex < 0 || byteIndex > line.size {
		return nil, errLineIndexOutOfRange
	}
	moved := NewLine()
	tail := line.Bytes()[byteIndex:]
	if err := moved.InsertBytes(0, tail); err != nil {
		return nil, err
	}
	if err := line.DeleteBytes(byteIndex, len(tail)); err != nil {
		return nil, err
	}
	moved.prev = line
	moved.next = line.next
	if line.next != nil {
		line.next.prev = moved
	}
	line.next = moved
	b.size++
	return moved, nil
}

// JoinLine appends all bytes of src onto dst, deletes src, and returns
// dst. Adjacency is the caller's concern; JoinLine only moves bytes and
// unlinks src.
func (b *Buffer) JoinLine(dst, src *Line) (*Line, error) {
	if dst == nil || src == nil {
		return nil, errLineMissing
	}
	if err := dst.InsertBytes(dst.size, src.Bytes()); err != nil {
		return nil, err
	}
	b.DeleteLine(src)
	return dst, nil
}
