// Package assets assembles the files a page needs into one ordered,
// de-duplicated set split into scripts and stylesheets.
//
// Builder concatenates theme, language and plugin files in that order,
// optionally led by the Prism core script. In the control context the
// baseline languages markup, javascript and json are always appended.
// Session collects the themes and languages used while rendering one
// request so the page can flush a single set at the end.
package assets
