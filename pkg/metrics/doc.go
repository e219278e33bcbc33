// Package metrics exposes Prometheus instrumentation for asset resolution.
//
// A Metrics value implements the observer interfaces of pkg/files and
// pkg/assets, so wiring it is a matter of passing it as an option:
//
//	m := metrics.New(metrics.WithRegistry(reg))
//	fr := files.NewResolver(finder, aliases, cat, dirs, files.WithObserver(m))
//	b := assets.NewBuilder(fr, defaults, assets.WithObserver(m))
//
// HTTP traffic is recorded by the Middleware method.
package metrics
