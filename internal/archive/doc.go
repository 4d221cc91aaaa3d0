// Package archive finds packaged add-on archives on disk and reads the
// manifest embedded in each one. Archive names follow the
// "<id>-<version>.zip" convention; ParseName checks that convention without
// ever failing the batch.
package archive
