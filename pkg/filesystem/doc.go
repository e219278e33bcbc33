// Package filesystem provides the types.FS implementations used by
// prismatic and the Finder that searches asset directories.
//
// Both the OS filesystem and the in-memory test filesystem are backed by
// afero, so file lookups behave the same in tests and in production.
package filesystem
