package types

import "io/fs"

// FS is the slice of filesystem access the catalog, file resolver and
// publisher need. filesystem.NewOS and filesystem.NewMemory implement it.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)
	Remove(name string) error
	RemoveAll(path string) error
}
