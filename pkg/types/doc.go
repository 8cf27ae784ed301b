// Package types contains the shared interfaces used across dotsmith
// packages, kept separate to avoid import cycles between the engine
// stages.
package types
