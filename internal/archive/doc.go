// Package archive packages the generated episode artifacts into a single
// zip blob and writes it to a per-run-unique file.
package archive
