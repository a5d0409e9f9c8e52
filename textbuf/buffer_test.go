package textbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkLinks asserts the doubly-linked list invariants: size matches
// the reachable line count, the head has no predecessor, and every
// non-head line is pointed back at by its predecessor.
func checkLinks(t *testing.T, b *Buffer) {
	t.Helper()
	count := 0
	for l := b.Head(); l != nil; l = l.Next() {
		if l.Prev() == nil {
			assert.Same(t, b.Head(), l)
		} else {
			assert.Same(t, l, l.Prev().Next())
		}
		count++
	}
	assert.Equal(t, b.Size(), count)
}

func lineText(t *testing.T, b *Buffer, index int) string {
	t.Helper()
	l := b.GetLine(index)
	require.NotNil(t, l)
	return string(l.Bytes())
}

func TestBufferInsertLine(t *testing.T) {
	b := NewBuffer()

	first := NewLine()
	require.NoError(t, b.InsertLine(first, -1))
	assert.Same(t, first, b.Head())
	assert.Equal(t, 1, b.Size())

	// index 0 becomes the new head
	head := NewLine()
	require.NoError(t, b.InsertLine(head, 0))
	assert.Same(t, head, b.Head())
	assert.Same(t, first, head.Next())

	// splice in the middle
	mid := NewLine()
	require.NoError(t, b.InsertLine(mid, 1))
	assert.Same(t, mid, head.Next())
	assert.Same(t, first, mid.Next())
	assert.Equal(t, 3, b.Size())
	checkLinks(t, b)

	// out of range
	err := b.InsertLine(NewLine(), 5)
	require.Error(t, err)
	assert.True(t, IsIndexError(err))

	// nil line
	require.Error(t, b.InsertLine(nil, 0))
}

func TestBufferDeleteLine(t *testing.T) {
	b := NewBuffer()
	for i := 0; i < 3; i++ {
		l := NewLine()
		require.NoError(t, l.InsertBytes(0, []byte{byte('a' + i)}))
		require.NoError(t, b.InsertLine(l, -1))
	}

	// deleting the head repoints it
	b.DeleteLine(b.GetLine(0))
	assert.Equal(t, 2, b.Size())
	assert.Equal(t, "b", lineText(t, b, 0))
	checkLinks(t, b)

	// deleting the tail
	b.DeleteLine(b.GetLine(-1))
	assert.Equal(t, 1, b.Size())
	assert.Equal(t, "b", lineText(t, b, -1))
	checkLinks(t, b)

	b.DeleteLine(b.GetLine(0))
	assert.Nil(t, b.Head())
	assert.Equal(t, 0, b.Size())
}

func TestBufferGetLine(t *testing.T) {
	b := NewBuffer()
	assert.Nil(t, b.GetLine(0))
	assert.Nil(t, b.GetLine(-1))

	for i := 0; i < 3; i++ {
		l := NewLine()
		require.NoError(t, l.InsertBytes(0, []byte{byte('a' + i)}))
		require.NoError(t, b.InsertLine(l, -1))
	}
	assert.Equal(t, "a", lineText(t, b, 0))
	assert.Equal(t, "c", lineText(t, b, 2))
	// -1 is the last line
	assert.Equal(t, "c", lineText(t, b, -1))
	assert.Nil(t, b.GetLine(3))
}

func TestBufferSplitLine(t *testing.T) {
	b := NewBuffer()
	l := NewLine()
	require.NoError(t, l.InsertBytes(0, []byte("ABCD1234")))
	require.NoError(t, b.InsertLine(l, -1))

	moved, err := b.SplitLine(l, 4)
	require.NoError(t, err)
	assert.Equal(t, "ABCD", string(l.Bytes()))
	assert.Equal(t, "1234", string(moved.Bytes()))
	assert.Same(t, moved, l.Next())
	assert.Same(t, l, moved.Prev())
	assert.Equal(t, 2, b.Size())
	checkLinks(t, b)

	// split past the end fails without touching the buffer
	_, err = b.SplitLine(l, 100)
	require.Error(t, err)
	assert.Equal(t, 2, b.Size())

	// split at the end yields an empty trailing line
	empty, err := b.SplitLine(moved, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Size())
	assert.Equal(t, 3, b.Size())
}

func TestBufferJoinLine(t *testing.T) {
	b := NewBuffer()
	dst := NewLine()
	src := NewLine()
	require.NoError(t, dst.InsertBytes(0, []byte("ABCD")))
	require.NoError(t, src.InsertBytes(0, []byte("1234")))
	require.NoError(t, b.InsertLine(dst, -1))
	require.NoError(t, b.InsertLine(src, -1))

	joined, err := b.JoinLine(dst, src)
	require.NoError(t, err)
	assert.Same(t, dst, joined)
	assert.Equal(t, "ABCD1234", string(dst.Bytes()))
	assert.Equal(t, 1, b.Size())
	assert.Nil(t, dst.Next())
	checkLinks(t, b)
}

func TestSplitJoinRoundTripUTF8(t *testing.T) {
	b := NewBuffer()
	l := NewLine()
	original := "héllo wörld"
	require.NoError(t, l.InsertBytes(0, []byte(original)))
	require.NoError(t, b.InsertLine(l, -1))

	// split at codepoint column 5, then join back
	moved, err := b.SplitLine(l, ColumnToByte(l.Bytes(), 5))
	require.NoError(t, err)
	assert.Equal(t, "héllo", string(l.Bytes()))

	_, err = b.JoinLine(l, moved)
	require.NoError(t, err)
	assert.Equal(t, original, string(l.Bytes()))
}
