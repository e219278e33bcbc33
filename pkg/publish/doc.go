// Package publish copies resolved asset files into a directory a web server
// can serve. Resolution never depends on it: callers hand it a FileSet after
// the set is built and get servable URLs back.
package publish
