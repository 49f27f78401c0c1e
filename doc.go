// Package mattekit turns opaque generator renders into production assets
// with real transparency: it resizes images to exact target dimensions,
// extracts per-pixel alpha with one of several matting strategies, recovers
// decontaminated foreground color along soft edges, and derives the fixed
// set of monochrome presentation variants from a single extracted source.
//
// All operations are deterministic functions of their inputs plus an
// explicit Config; the package keeps no process-wide state.
package mattekit
