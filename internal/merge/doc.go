// Package merge folds a freshly extracted add-on manifest into the matching
// entry of a repository index. All functions mutate the existing element in
// place and only ever copy from the incoming one.
//
// The order of operations for a whole entry is: attributes, <requires>,
// the metadata extension, then the remaining extensions (see Entry).
package merge
