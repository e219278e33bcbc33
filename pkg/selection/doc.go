// Package selection turns per-category selectors into lists of catalog
// handles.
//
// A wildcard selects every handle of a category in catalog order. An
// explicit list keeps only the handles the catalog defines; unknown handles
// are dropped without error. Themes may also name handles that only exist
// as files in a custom directory; those become custom entries with a title
// derived from the handle.
package selection
