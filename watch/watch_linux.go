//go:build linux

package watch

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"time"
	"unsafe"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"github.com/Theo-Muyard/Seed-core/corelog"
	"github.com/Theo-Muyard/Seed-core/pathutil"
)

const (
	entryAlloc   = 32
	pendingAlloc = 32
	queueAlloc   = 32
	readBufSize  = 4096

	// defaultPendingTTL bounds how long a MOVED_FROM half waits for its
	// MOVED_TO before being resolved as a delete.
	defaultPendingTTL = time.Second

	watchMask = unix.IN_CREATE | unix.IN_DELETE | unix.IN_MODIFY |
		unix.IN_MOVED_FROM | unix.IN_MOVED_TO | unix.IN_ATTRIB |
		unix.IN_DELETE_SELF | unix.IN_MOVE_SELF | unix.IN_Q_OVERFLOW |
		unix.IN_UNMOUNT | unix.IN_IGNORED
)

var errNotWatched = errors.New("watch: path is not watched")

type watchEntry struct {
	wd   int32
	path string
}

type movePending struct {
	cookie    uint32
	isDir     bool
	fromPath  string
	createdAt time.Time
}

// Watcher owns the inotify handle, the wd-to-path table for every
// watched directory, the pending-move table and the outgoing event
// queue. It is single-threaded: Analyze blocks for one batch of
// records, and the queue is drained between Analyze calls.
type Watcher struct {
	fd       int
	rootPath string

	entries []watchEntry
	pending []movePending
	queue   []Event

	now        func() time.Time
	ttl        time.Duration
	needResync bool
}

// Option adjusts a Watcher at construction time.
type Option func(*Watcher)

// WithClock substitutes the wall clock used for pending-move TTL
// bookkeeping. Tests use it to expire pendings without sleeping.
func WithClock(now func() time.Time) Option {
	return func(w *Watcher) { w.now = now }
}

// WithPendingTTL overrides the pending-move TTL window.
func WithPendingTTL(ttl time.Duration) Option {
	return func(w *Watcher) { w.ttl = ttl }
}

// New opens an inotify handle rooted at absRoot. No watches are
// installed yet; call AddRecursive to start observing.
func New(absRoot string, opts ...Option) (*Watcher, error) {
	fd, err := unix.InotifyInit1(unix.IN_CLOEXEC)
	if err != nil {
		return nil, os.NewSyscallError("inotify_init1", err)
	}
	w := &Watcher{
		fd:       fd,
		rootPath: absRoot,
		entries:  make([]watchEntry, 0, entryAlloc),
		pending:  make([]movePending, 0, pendingAlloc),
		queue:    make([]Event, 0, queueAlloc),
		now:      time.Now,
		ttl:      defaultPendingTTL,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *Watcher) String() string { return "watcher " + w.rootPath }

// RootPath returns the absolute path the watcher was rooted at.
func (w *Watcher) RootPath() string { return w.rootPath }

// NeedsResync reports whether an overflow or a root-level delete was
// observed, in which case the queue no longer tells the whole story and
// the consumer must re-enumerate the tree from disk.
func (w *Watcher) NeedsResync() bool { return w.needResync }

func isDirPath(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.IsDir()
}

func (w *Watcher) pathByWd(wd int32) (string, bool) {
	for _, e := range w.entries {
		if e.wd == wd {
			return e.path, true
		}
	}
	return "", false
}

func (w *Watcher) wdByPath(path string) (int32, bool) {
	for _, e := range w.entries {
		if e.path == path {
			return e.wd, true
		}
	}
	return 0, false
}

func (w *Watcher) removeEntryByWd(wd int32) {
	for i, e := range w.entries {
		if e.wd == wd {
			w.entries = append(w.entries[:i], w.entries[i+1:]...)
			return
		}
	}
}

func (w *Watcher) addOne(path string) error {
	wd, err := unix.InotifyAddWatch(w.fd, path, watchMask)
	if err != nil {
		return os.NewSyscallError("inotify_add_watch", err)
	}
	w.entries = append(w.entries, watchEntry{wd: int32(wd), path: path})
	return nil
}

// AddRecursive installs a watch on path and every directory below it.
// Non-directories are silently accepted and skipped.
func (w *Watcher) AddRecursive(path string) error {
	if !isDirPath(path) {
		return nil
	}
	if err := w.addOne(path); err != nil {
		return err
	}
	children, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	for _, child := range children {
		if !child.IsDir() {
			continue
		}
		if err := w.AddRecursive(pathutil.Join(path, child.Name())); err != nil {
			return err
		}
	}
	return nil
}

// RemoveRecursive uninstalls the watch on path and every directory
// below it, walking the on-disk tree. Fails when path is a directory
// with no watch entry.
func (w *Watcher) RemoveRecursive(path string) error {
	if !isDirPath(path) {
		return nil
	}
	wd, ok := w.wdByPath(path)
	if !ok {
		return errNotWatched
	}
	w.removeEntryByWd(wd)
	_, _ = unix.InotifyRmWatch(w.fd, uint32(wd))
	children, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	for _, child := range children {
		if !child.IsDir() {
			continue
		}
		_ = w.RemoveRecursive(pathutil.Join(path, child.Name()))
	}
	return nil
}

// dropSubtreeEntries removes every watch entry at or below path without
// touching the disk. Used when the subtree is already gone, so the
// on-disk walk of RemoveRecursive has nothing left to visit.
func (w *Watcher) dropSubtreeEntries(path string) {
	prefix := path + "/"
	kept := w.entries[:0]
	for _, e := range w.entries {
		if e.path == path || strings.HasPrefix(e.path, prefix) {
			_, _ = unix.InotifyRmWatch(w.fd, uint32(e.wd))
			continue
		}
		kept = append(kept, e)
	}
	w.entries = kept
}

func (w *Watcher) push(ev Event) {
	w.queue = append(w.queue, ev)
}

func (w *Watcher) takePending(cookie uint32) (movePending, bool) {
	for i, p := range w.pending {
		if p.cookie == cookie {
			w.pending = append(w.pending[:i], w.pending[i+1:]...)
			return p, true
		}
	}
	return movePending{}, false
}

// flushExpired resolves every pending move older than the TTL as a
// delete: the matching MOVED_TO never arrived, so the target is outside
// the watched tree.
func (w *Watcher) flushExpired() {
	now := w.now()
	kept := w.pending[:0]
	for _, p := range w.pending {
		if now.Sub(p.createdAt) >= w.ttl {
			corelog.Debugf(w, "pending move of %q expired, resolving as delete", p.fromPath)
			w.push(Event{Type: EventDelete, Path: p.fromPath, IsDir: p.isDir})
			continue
		}
		kept = append(kept, p)
	}
	w.pending = kept
}

// Analyze blocks for one batch of inotify records, translates each into
// zero or one semantic event, then sweeps the pending-move table.
// Within one call, events are queued in the exact order their records
// were read; a MOVED_FROM contributes its event at the matching
// MOVED_TO's position, or at flush time. With a nonblocking handle an
// empty batch is a successful no-op.
func (w *Watcher) Analyze() error {
	buf := make([]byte, readBufSize)
	n, err := unix.Read(w.fd, buf)
	if err != nil {
		if err == unix.EAGAIN {
			w.flushExpired()
			return nil
		}
		return os.NewSyscallError("read", err)
	}
	offset := 0
	for offset+unix.SizeofInotifyEvent <= n {
		raw := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
		nameLen := int(raw.Len)
		name := ""
		if nameLen > 0 {
			nb := buf[offset+unix.SizeofInotifyEvent : offset+unix.SizeofInotifyEvent+nameLen]
			if i := bytes.IndexByte(nb, 0); i >= 0 {
				nb = nb[:i]
			}
			name = string(nb)
		}
		offset += unix.SizeofInotifyEvent + nameLen

		if raw.Mask&unix.IN_IGNORED != 0 {
			// the kernel dropped this watch; the entry is unwatched
			w.removeEntryByWd(raw.Wd)
			continue
		}
		parent, known := w.pathByWd(raw.Wd)
		if raw.Mask&unix.IN_Q_OVERFLOW != 0 || !known {
			w.push(Event{Type: EventOverflow})
			w.needResync = true
			return nil
		}
		entryPath := parent
		if name != "" {
			entryPath = pathutil.Join(parent, name)
		}
		w.handleRecord(raw.Wd, raw.Mask, raw.Cookie, entryPath)
	}
	w.flushExpired()
	return nil
}

func (w *Watcher) handleRecord(wd int32, mask, cookie uint32, path string) {
	isDir := mask&unix.IN_ISDIR != 0
	switch {
	case mask&unix.IN_MOVED_FROM != 0:
		w.pending = append(w.pending, movePending{
			cookie:    cookie,
			isDir:     isDir,
			fromPath:  path,
			createdAt: w.now(),
		})

	case mask&unix.IN_MOVED_TO != 0:
		if p, ok := w.takePending(cookie); ok {
			w.push(Event{
				Type:          EventMove,
				Path:          p.fromPath,
				NewPath:       path,
				IsDir:         p.isDir,
				CorrelationID: uuid.New(),
			})
			return
		}
		// no matching half: an external move-in looks like a create
		w.push(Event{Type: EventCreate, Path: path, IsDir: isDir})
		if isDir {
			if err := w.AddRecursive(path); err != nil {
				corelog.Errorf(w, "watching moved-in %q: %v", path, err)
			}
		}

	case mask&(unix.IN_MOVE_SELF|unix.IN_DELETE_SELF|unix.IN_UNMOUNT) != 0:
		// below the root the MOVED_FROM/DELETE path already reports the
		// change; only the root's own disappearance needs an event
		if path == w.rootPath {
			w.push(Event{Type: EventDelete, Path: path, IsDir: true})
			w.needResync = true
		}
		if mask&(unix.IN_DELETE_SELF|unix.IN_UNMOUNT) != 0 {
			w.removeEntryByWd(wd)
		}

	case mask&unix.IN_CREATE != 0:
		w.push(Event{Type: EventCreate, Path: path, IsDir: isDir})
		if isDir {
			if err := w.AddRecursive(path); err != nil {
				corelog.Errorf(w, "watching created %q: %v", path, err)
			}
		}

	case mask&unix.IN_DELETE != 0:
		if isDir {
			w.dropSubtreeEntries(path)
		}
		w.push(Event{Type: EventDelete, Path: path, IsDir: isDir})

	case mask&(unix.IN_MODIFY|unix.IN_ATTRIB) != 0:
		// observed but not queued
	}
}

// Len returns the number of queued events.
func (w *Watcher) Len() int { return len(w.queue) }

// Pop removes and returns the oldest queued event. The queue is FIFO
// and never reordered across Analyze calls.
func (w *Watcher) Pop() (Event, bool) {
	if len(w.queue) == 0 {
		return Event{}, false
	}
	ev := w.queue[0]
	w.queue = w.queue[1:]
	return ev, true
}

// Drain removes and returns every queued event in order.
func (w *Watcher) Drain() []Event {
	out := w.queue
	w.queue = make([]Event, 0, queueAlloc)
	return out
}

// Close removes every installed watch, drops the queue and the pending
// table, and closes the inotify handle.
func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	for _, e := range w.entries {
		_, _ = unix.InotifyRmWatch(w.fd, uint32(e.wd))
	}
	w.entries = nil
	w.pending = nil
	w.queue = nil
	return unix.Close(w.fd)
}
