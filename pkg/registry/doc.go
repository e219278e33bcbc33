// Package registry provides a generic, type-safe registry for named items.
// The catalog keeps one registry of definitions per category; registration
// order is preserved so listings follow the catalog document.
package registry
