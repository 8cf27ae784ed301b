// Package filesystem provides filesystem implementations for dotsmith.
//
// This package contains implementations of the types.FS interface.
package filesystem
