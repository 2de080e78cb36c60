// Package core contains the picker value model and shortcut catalog.
//
// Allowed here:
// - the Date and Range value variants and their mode discriminator
// - calendar-aware day arithmetic used for day-granularity comparisons
// - shortcuts, preset computations and picker selection state
//
// Not allowed here:
// - rendering, key handling or any other presentation concern
// - persistence and configuration loading
package core
