package textbuf

const bufferTableAlloc = 32

// Context is the sparse table of live buffers, indexed by stable
// non-negative ids. A new buffer takes the lowest free slot; destroying
// a buffer frees its slot for reuse. The table starts at 32 slots and
// grows by fixed increments of 32.
type Context struct {
	buffers []*Buffer
	count   int
}

// NewContext returns an empty buffer table.
func NewContext() *Context {
	return &Context{
		buffers: make([]*Buffer, bufferTableAlloc),
	}
}

// CreateBuffer allocates a fresh buffer in the lowest free slot and
// returns its id.
func (c *Context) CreateBuffer() uint64 {
	slot := 0
	for slot < len(c.buffers) && c.buffers[slot] != nil {
		slot++
	}
	if slot >= len(c.buffers) {
		grown := make([]*Buffer, len(c.buffers)+bufferTableAlloc)
		copy(grown, c.buffers)
		c.buffers = grown
	}
	c.buffers[slot] = NewBuffer()
	c.count++
	return uint64(slot)
}

// DestroyBuffer drops the buffer behind id and frees the slot. Fails if
// id is outside the table or the slot is already empty.
func (c *Context) DestroyBuffer(id uint64) error {
	if id >= uint64(len(c.buffers)) || c.buffers[id] == nil {
		return errBufferMissing
	}
	c.buffers[id] = nil
	c.count--
	return nil
}

// Buffer returns the live buffer behind id, or nil if the id is outside
// the table or the slot is empty.
func (c *Context) Buffer(id uint64) *Buffer {
	if id >= uint64(len(c.buffers)) {
		return nil
	}
	return c.buffers[id]
}

// Count returns the number of live buffers.
func (c *Context) Count() int { return c.count }

// Capacity returns the current slot-table size.
func (c *Context) Capacity() int { return len(c.buffers) }

// Clean drops every live buffer and resets the table.
func (c *Context) Clean() {
	if c == nil {
		return
	}
	c.buffers = nil
	c.count = 0
}
