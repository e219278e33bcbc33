// Package catalog loads and caches the Prism component catalog.
//
// The catalog is a JSON document with one section per category (core,
// themes, languages, plugins). Each section maps a handle to either a bare
// title string or an object carrying a title, a "require" list and a few
// category specific flags. A "meta" entry may appear at the top level and
// inside every section; it never describes a component and is dropped while
// parsing.
//
// Documents are checked against an embedded JSON Schema before decoding,
// and decoding keeps the document order of every section so that selecting
// "*" lists components the way the catalog authors ordered them.
//
// Provider memoizes the parsed catalog in a get-or-compute cache under a
// fixed key, so the document is parsed at most once per process.
package catalog
