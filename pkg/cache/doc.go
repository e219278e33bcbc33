// Package cache provides the process-wide get-or-compute cache that holds
// the parsed component catalog.
//
// Compute functions run at most once per key at a time: concurrent callers
// asking for a key that is being computed wait for that single computation
// and share its result. Errors are returned to every waiter but never stored,
// so a later call retries the computation.
package cache
