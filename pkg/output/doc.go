// Package output lays out dotlink results as tables. The same layout serves
// styled terminal output and plain text; only the styles differ.
package output
