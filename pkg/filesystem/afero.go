package filesystem

import (
	"io/fs"
	"sort"

	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/spf13/afero"
)

// aferoFS gets Stat, MkdirAll, Remove and RemoveAll from the embedded afero.Fs
type aferoFS struct {
	afero.Fs
}

func NewOS() types.FS { return aferoFS{afero.NewOsFs()} }

func NewMemory() types.FS { return aferoFS{afero.NewMemMapFs()} }

func NewAferoFS(base afero.Fs) types.FS { return aferoFS{base} }

// ReadFile refuses directories on every backend; the memory backend
// would otherwise return an empty read
func (a aferoFS) ReadFile(name string) ([]byte, error) {
	if ok, err := afero.IsDir(a.Fs, name); err != nil {
		return nil, err
	} else if ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.Fs, name)
}

func (a aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.Fs, name, data, perm)
}

// ReadDir lists name sorted by entry name
func (a aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(a.Fs, name)
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })
	entries := make([]fs.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	return entries, nil
}

// OnDisk reports whether fsys writes to the operating system filesystem
func OnDisk(fsys types.FS) bool {
	a, ok := fsys.(aferoFS)
	if !ok {
		return false
	}
	_, onOS := a.Fs.(*afero.OsFs)
	return onOS
}

// Exists reports whether name can be stat'ed
func Exists(fsys types.FS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}
