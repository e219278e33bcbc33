// Package core assembles the resolution pipeline from a loaded configuration.
//
// An Engine owns one of each collaborator: the alias table rooted at the
// assets directory, the catalog provider, the dependency and file resolvers,
// the selection resolver and the asset builder. Commands and the HTTP server
// take an Engine instead of wiring these themselves.
package core
