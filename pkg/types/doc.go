// Package types defines the core types shared by the resolution pipeline.
// This includes the component Category enum, catalog Definition records,
// configuration Selectors, and the FileEntry/FileSet values the builder
// produces, as well as the FS interface used for file lookups.
package types
