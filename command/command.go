// Package command defines the command-id/payload vocabulary shared
// between the dispatcher and every handler. The Command envelope keeps
// the numeric id the dispatcher routes on, while every payload is a
// concrete struct the handler asserts to, so no untyped data crosses
// the boundary.
package command

// ID identifies a single command kind. Values are a small dense enum
// suitable for direct array indexing in the dispatcher.
type ID int

const (
	CreateBuffer ID = iota
	DeleteBuffer
	InsertLine
	DeleteLine
	SplitLine
	JoinLine
	GetLine
	InsertText
	DeleteText

	OpenRoot
	CloseRoot
	CreateDir
	DeleteDir
	MoveDir
	CreateFile
	DeleteFile
	MoveFile
	ReadFile
	WriteFile

	idCount
)

// Count is the number of distinct command ids, used to size the
// dispatcher's table.
const Count = int(idCount)

// Command is the envelope passed to Manager.Exec: a tagged id plus its
// payload. The dispatcher never inspects Payload; only the registered
// handler for ID does, by asserting it to the concrete payload type
// below.
type Command struct {
	ID      ID
	Payload any
}

// --- Writing payloads ---

// CreateBufferPayload carries the out-parameter for CreateBuffer.
type CreateBufferPayload struct {
	OutBufferID uint64
}

// DeleteBufferPayload identifies the buffer to destroy.
type DeleteBufferPayload struct {
	BufferID uint64
}

// InsertLinePayload inserts a new empty line at Line (-1 appends).
type InsertLinePayload struct {
	BufferID uint64
	Line     int64
}

// DeleteLinePayload deletes the line at Line (-1 is the last line).
type DeleteLinePayload struct {
	BufferID uint64
	Line     int64
}

// SplitLinePayload splits Line at codepoint column Index.
type SplitLinePayload struct {
	BufferID uint64
	Line     int64
	Index    uint64
}

// JoinLinePayload joins Src into Dst; Src must immediately follow Dst.
type JoinLinePayload struct {
	BufferID uint64
	Dst      uint64
	Src      uint64
}

// GetLinePayload borrows a line's current bytes.
type GetLinePayload struct {
	BufferID uint64
	Line     int64
	OutData  []byte
	OutSize  uint64
}

// InsertTextPayload inserts Data at the codepoint column Index of Line.
type InsertTextPayload struct {
	BufferID uint64
	Line     int64
	Index    int64
	Size     uint64
	Data     []byte
}

// DeleteTextPayload deletes Size codepoints starting at column Index.
type DeleteTextPayload struct {
	BufferID uint64
	Line     int64
	Index    uint64
	Size     uint64
}

// --- Filesystem payloads ---

// OpenRootPayload mounts an absolute directory as the VFS root.
type OpenRootPayload struct {
	Path string
}

// CloseRootPayload has no fields; it closes whatever root is mounted.
type CloseRootPayload struct{}

// CreateDirPayload creates a directory at a root-relative path.
type CreateDirPayload struct {
	Path string
}

// DeleteDirPayload deletes an empty directory at a root-relative path.
type DeleteDirPayload struct {
	Path string
}

// MoveDirPayload renames/moves a directory.
type MoveDirPayload struct {
	OldPath string
	NewPath string
}

// CreateFilePayload creates a file, refusing to overwrite an existing one.
type CreateFilePayload struct {
	Path string
}

// DeleteFilePayload deletes a regular file.
type DeleteFilePayload struct {
	Path string
}

// MoveFilePayload renames/moves a file.
type MoveFilePayload struct {
	OldPath string
	NewPath string
}

// ReadFilePayload reads a file's entire content.
type ReadFilePayload struct {
	Path    string
	OutData string
	OutLen  uint64
}

// WriteFilePayload truncates and writes a file's content.
type WriteFilePayload struct {
	Path string
	Data string
}
