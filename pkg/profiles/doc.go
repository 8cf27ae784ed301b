// Package profiles implements the profile store: loading declarative
// YAML profile documents and deep-merging an ordered list of them
// (base OS profile plus role overlays) into one effective descriptor.
//
// Merge semantics: overlays apply strictly in list order, each stacked
// on the cumulative result of prior ones. Mapping-typed fields merge
// per key with the overlay winning; everything else is replaced
// wholesale. The overrides field is always mapping-merged. A missing
// overlay is a warning, not an error; a missing or malformed base
// profile is fatal.
package profiles
