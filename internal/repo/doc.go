// Package repo runs one maintenance pass over an archive directory: it walks
// the packaged add-ons, extracts and validates each manifest, upserts it into
// the repository index and finally writes the index together with its
// checksum file.
//
// Archives are processed sequentially in walk order. A broken archive is
// reported and skipped; only an unreadable index aborts the run, and in that
// case nothing is written.
package repo
