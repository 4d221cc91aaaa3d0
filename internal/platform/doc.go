// Package platform replaces repository files atomically: the index, its
// checksum and manifest sidecars are written to a temporary file in the
// same directory and renamed into place, keeping the mode of the file they
// replace.
package platform
