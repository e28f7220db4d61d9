// Package testutil provides utilities for testing dotlink components.
//
// Key components:
//   - File tree helpers for real filesystem tests under t.TempDir()
//   - Snapshot: captures a path's type, content and link target so tests
//     can prove an operation left it untouched
//   - MemoryFS: in-memory types.FS with symlinks, per-path error injection
//     and a hook that runs right before a symlink is created, used to
//     reproduce check-then-create races deterministically
package testutil
