// Package index loads, updates and writes the repository index (addons.xml).
// The index is an <addons> document holding one <addon> entry per plugin id.
// It is loaded once per run, mutated through Upsert, and serialized at a
// single commit point chosen by the caller.
package index
