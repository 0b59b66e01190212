// Package storage writes exported files into the configured output directory.
//
// Files are replaced atomically: content goes to "<name>.tmp", is synced, and
// is renamed over the final path, so a reader never observes a half-written
// recovery file.
package storage
