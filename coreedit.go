// Package coreedit composes the text engine, the filesystem mirror and
// the command dispatcher behind a single Exec entry point. Callers fill
// a payload struct, wrap it in a command.Command, and hand it to
// Manager.Exec; the registered handler validates the payload, drives
// the right subsystem and promotes failures to errcode identities.
package coreedit

import (
	"os"

	"github.com/Theo-Muyard/Seed-core/command"
	"github.com/Theo-Muyard/Seed-core/dispatch"
	"github.com/Theo-Muyard/Seed-core/errcode"
	"github.com/Theo-Muyard/Seed-core/textbuf"
	"github.com/Theo-Muyard/Seed-core/vfstree"
)

// Config tunes the manager's subsystems. The zero value is usable.
type Config struct {
	// DirPerm is the mode for directories created through CreateDir.
	// Zero means 0755.
	DirPerm os.FileMode
	// FilePerm is the mode for files created through CreateFile and
	// WriteFile. Zero means 0644.
	FilePerm os.FileMode
}

// Manager is the root object: it owns the dispatcher, the writing
// context (buffer table) and the filesystem context (VFS mirror), and
// is intended to be driven from a single host goroutine.
type Manager struct {
	dispatcher *dispatch.Dispatcher
	writing    *textbuf.Context
	fs         *vfstree.Tree
}

// New constructs a manager with default configuration and every
// command handler registered.
func New() (*Manager, error) {
	return NewWithConfig(Config{})
}

// NewWithConfig constructs a manager, registering the writing handlers
// and then the filesystem handlers. Any registration failure unwinds
// what was already built.
func NewWithConfig(cfg Config) (*Manager, error) {
	m := &Manager{
		dispatcher: dispatch.Init(command.Count),
		writing:    textbuf.NewContext(),
	}
	if err := registerWritingCommands(m.dispatcher); err != nil {
		m.Clean()
		return nil, err
	}
	m.fs = vfstree.NewTree(vfstree.Options{
		DirPerm:  cfg.DirPerm,
		FilePerm: cfg.FilePerm,
	})
	if err := registerFSCommands(m.dispatcher); err != nil {
		m.Clean()
		return nil, err
	}
	return m, nil
}

// Exec routes cmd to its registered handler.
func (m *Manager) Exec(cmd *command.Command) error {
	if m == nil {
		return errcode.InvalidManager
	}
	return m.dispatcher.Exec(m, cmd)
}

// Writing returns the buffer table. Callers may inspect it but must
// not retain references across mutations.
func (m *Manager) Writing() *textbuf.Context { return m.writing }

// FS returns the filesystem context.
func (m *Manager) FS() *vfstree.Tree { return m.fs }

// Clean tears the manager down in reverse construction order:
// filesystem context, writing context, dispatcher.
func (m *Manager) Clean() {
	if m == nil {
		return
	}
	if m.fs != nil && m.fs.Mounted() {
		_ = m.fs.CloseRoot()
	}
	m.fs = nil
	m.writing.Clean()
	m.writing = nil
	m.dispatcher.Clean()
	m.dispatcher = nil
}
