// Package resolver expands a catalog handle into the ordered list of
// handles it depends on.
//
// The walk is depth first. Every visited handle is pushed as it is entered,
// its requirements are walked in declaration order, and the accumulated
// sequence is reversed at the end, so leaf dependencies come first and the
// requested handle comes last. Handles missing from the catalog are still
// emitted as bare entries. A handle reached again while it is still on the
// active path is a cycle and fails the call with *CyclicDependencyError.
package resolver
