package textbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextCreateBuffer(t *testing.T) {
	c := NewContext()
	assert.Equal(t, bufferTableAlloc, c.Capacity())

	id := c.CreateBuffer()
	assert.Equal(t, uint64(0), id)
	assert.Equal(t, 1, c.Count())
	assert.NotNil(t, c.Buffer(id))

	assert.Equal(t, uint64(1), c.CreateBuffer())
}

func TestContextSlotReuse(t *testing.T) {
	c := NewContext()
	a := c.CreateBuffer()
	b := c.CreateBuffer()
	require.NoError(t, c.DestroyBuffer(a))

	// the freed slot is the lowest, so it is reused
	assert.Equal(t, a, c.CreateBuffer())
	assert.Equal(t, 2, c.Count())
	assert.NotNil(t, c.Buffer(b))
}

func TestContextGrowsByFixedIncrement(t *testing.T) {
	c := NewContext()
	for i := 0; i < bufferTableAlloc; i++ {
		c.CreateBuffer()
	}
	assert.Equal(t, bufferTableAlloc, c.Capacity())

	id := c.CreateBuffer()
	assert.Equal(t, uint64(bufferTableAlloc), id)
	assert.Equal(t, 2*bufferTableAlloc, c.Capacity())
}

func TestContextDestroyBuffer(t *testing.T) {
	c := NewContext()
	id := c.CreateBuffer()

	require.NoError(t, c.DestroyBuffer(id))
	assert.Nil(t, c.Buffer(id))
	assert.Equal(t, 0, c.Count())

	// double destroy and out-of-range ids fail
	err := c.DestroyBuffer(id)
	require.Error(t, err)
	assert.True(t, IsBufferMissing(err))
	assert.True(t, IsBufferMissing(c.DestroyBuffer(9999)))
}
