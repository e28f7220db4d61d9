// Package filesystem provides the operating system implementation of
// types.FS used by the link reconciler.
package filesystem
