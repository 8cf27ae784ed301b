// Package conflicts implements conflict detection for deployment
// targets: classifying each target path as absent, already correctly
// linked, or occupied by a file, directory, or foreign symlink.
package conflicts
