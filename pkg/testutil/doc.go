// Package testutil builds asset trees and engines for tests.
//
// NewTestEnvironment lays out a Prism distribution under an assets root,
// either in memory or in a temporary directory, and assembles a core.Engine
// over it with an isolated catalog cache.
package testutil
