// Package types defines the data shared across dotlink: preset entries,
// link requests and their outcomes, command results and the filesystem
// interface the reconciler works against.
package types
