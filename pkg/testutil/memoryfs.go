package testutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"
)

// maxLinkHops bounds symlink resolution, like the kernel's ELOOP limit
const maxLinkHops = 40

// Op names an operation for error injection
type Op string

const (
	OpStat     Op = "stat"
	OpLstat    Op = "lstat"
	OpReadlink Op = "readlink"
	OpSymlink  Op = "symlink"
)

// MemoryFS implements types.FS with in-memory storage
type MemoryFS struct {
	mu    sync.Mutex
	nodes map[string]*fileNode

	// Error injection, keyed by operation and cleaned path
	errors map[Op]map[string]error

	// beforeSymlink runs without the lock held, right before a symlink
	// is created
	beforeSymlink func(oldname, newname string)

	symlinkCalls int
}

// fileNode represents a file, directory or symlink in memory
type fileNode struct {
	mode     os.FileMode
	modTime  time.Time
	content  []byte
	linkDest string
}

func (n *fileNode) isDir() bool  { return n.mode.IsDir() }
func (n *fileNode) isLink() bool { return n.mode&os.ModeSymlink != 0 }

// NewMemoryFS creates a new in-memory filesystem containing only "/"
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		nodes: map[string]*fileNode{
			"/": {mode: 0755 | os.ModeDir, modTime: time.Now()},
		},
		errors: make(map[Op]map[string]error),
	}
}

func clean(path string) string {
	return filepath.Clean("/" + filepath.ToSlash(path))
}

// resolve follows symlinks in every component of path. When followLast is
// false the final component is returned as is.
func (m *MemoryFS) resolve(path string, followLast bool) (string, *fileNode, error) {
	path = clean(path)
	hops := 0

	for {
		parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
		current := "/"
		restarted := false

		for i, part := range parts {
			if part == "" {
				continue
			}
			next := filepath.Join(current, part)
			node, ok := m.nodes[next]
			if !ok {
				return next, nil, fs.ErrNotExist
			}

			last := i == len(parts)-1
			if node.isLink() && (!last || followLast) {
				hops++
				if hops > maxLinkHops {
					return next, nil, syscall.ELOOP
				}
				dest := node.linkDest
				if !filepath.IsAbs(dest) {
					dest = filepath.Join(current, dest)
				}
				path = clean(filepath.Join(append([]string{dest}, parts[i+1:]...)...))
				restarted = true
				break
			}

			if !last && !node.isDir() {
				return next, nil, syscall.ENOTDIR
			}
			current = next
		}

		if !restarted {
			return current, m.nodes[current], nil
		}
	}
}

func (m *MemoryFS) injected(op Op, path string) error {
	if byPath, ok := m.errors[op]; ok {
		return byPath[clean(path)]
	}
	return nil
}

func (m *MemoryFS) stat(op Op, name string, followLast bool) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected(op, name); err != nil {
		return nil, &fs.PathError{Op: string(op), Path: name, Err: err}
	}

	_, node, err := m.resolve(name, followLast)
	if err != nil {
		return nil, &fs.PathError{Op: string(op), Path: name, Err: err}
	}
	return &fileInfo{node: node, name: filepath.Base(name)}, nil
}

// Stat returns file info, following symlinks
func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	return m.stat(OpStat, name, true)
}

// Lstat returns file info without following a final symlink
func (m *MemoryFS) Lstat(name string) (fs.FileInfo, error) {
	return m.stat(OpLstat, name, false)
}

// Readlink returns the destination of a symbolic link
func (m *MemoryFS) Readlink(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected(OpReadlink, name); err != nil {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: err}
	}

	_, node, err := m.resolve(name, false)
	if err != nil {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: err}
	}
	if !node.isLink() {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: fs.ErrInvalid}
	}
	return node.linkDest, nil
}

// Symlink creates newname pointing at oldname. It fails with fs.ErrExist
// when anything, including a dangling symlink, is already at newname.
func (m *MemoryFS) Symlink(oldname, newname string) error {
	if hook := m.beforeSymlink; hook != nil {
		hook(oldname, newname)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.symlinkCalls++

	if err := m.injected(OpSymlink, newname); err != nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: err}
	}

	return m.add(newname, &fileNode{
		mode:     0777 | os.ModeSymlink,
		modTime:  time.Now(),
		linkDest: oldname,
	}, "symlink")
}

// add places node at path; the parent must be an existing directory
func (m *MemoryFS) add(path string, node *fileNode, op string) error {
	path = clean(path)

	parentPath, parent, err := m.resolve(filepath.Dir(path), true)
	if err != nil {
		return &fs.PathError{Op: op, Path: path, Err: err}
	}
	if !parent.isDir() {
		return &fs.PathError{Op: op, Path: path, Err: syscall.ENOTDIR}
	}

	full := filepath.Join(parentPath, filepath.Base(path))
	if _, exists := m.nodes[full]; exists {
		return &fs.PathError{Op: op, Path: path, Err: fs.ErrExist}
	}
	m.nodes[full] = node
	return nil
}

// WriteFile creates a regular file, creating parent directories as needed
func (m *MemoryFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	if err := m.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	content := make([]byte, len(data))
	copy(content, data)

	path := clean(name)
	if existing, ok := m.nodes[path]; ok && !existing.isDir() && !existing.isLink() {
		existing.content = content
		existing.modTime = time.Now()
		return nil
	}
	return m.add(path, &fileNode{mode: perm.Perm(), modTime: time.Now(), content: content}, "write")
}

// ReadFile returns the content of a regular file, following symlinks
func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, node, err := m.resolve(name, true)
	if err != nil {
		return nil, &fs.PathError{Op: "read", Path: name, Err: err}
	}
	if node.isDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: syscall.EISDIR}
	}
	content := make([]byte, len(node.content))
	copy(content, node.content)
	return content, nil
}

// MkdirAll creates a directory and all necessary parents
func (m *MemoryFS) MkdirAll(path string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = clean(path)
	if path == "/" {
		return nil
	}

	current := "/"
	for _, part := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
		next := filepath.Join(current, part)
		resolved, node, err := m.resolve(next, true)
		switch {
		case err == nil && node.isDir():
			current = resolved
			continue
		case err == nil:
			return &fs.PathError{Op: "mkdir", Path: next, Err: syscall.ENOTDIR}
		case !errors.Is(err, fs.ErrNotExist):
			return &fs.PathError{Op: "mkdir", Path: next, Err: err}
		}

		dir := filepath.Join(current, part)
		if _, taken := m.nodes[dir]; taken {
			return &fs.PathError{Op: "mkdir", Path: next, Err: fs.ErrExist}
		}
		m.nodes[dir] = &fileNode{mode: perm.Perm() | os.ModeDir, modTime: time.Now()}
		current = dir
	}
	return nil
}

// FailOn makes every call of op on path return err
func (m *MemoryFS) FailOn(op Op, path string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.errors[op] == nil {
		m.errors[op] = make(map[string]error)
	}
	m.errors[op][clean(path)] = err
	return m
}

// BeforeSymlink registers fn to run right before each symlink creation.
// Tests use it to make an entry appear between a check and the create.
func (m *MemoryFS) BeforeSymlink(fn func(oldname, newname string)) *MemoryFS {
	m.beforeSymlink = fn
	return m
}

// SymlinkCalls returns how many times Symlink was invoked
func (m *MemoryFS) SymlinkCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.symlinkCalls
}

// fileInfo implements fs.FileInfo
type fileInfo struct {
	node *fileNode
	name string
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return int64(len(fi.node.content)) }
func (fi *fileInfo) Mode() os.FileMode  { return fi.node.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.node.isDir() }
func (fi *fileInfo) Sys() interface{}   { return nil }
