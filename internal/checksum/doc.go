// Package checksum maintains the digest file published next to the
// repository index. The digest is the lowercase hexadecimal MD5 of the index
// bytes, which is what add-on clients compare before downloading the index.
package checksum
