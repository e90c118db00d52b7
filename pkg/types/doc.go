// Package types defines the core domain types shared across dotsnap:
// the filesystem and path abstractions, copy plan items, and the result
// types returned by backup and reinstall operations.
package types
