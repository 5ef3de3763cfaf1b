// Package hash provides a fast non-cryptographic string hash used to
// bucket CSV key-tuples during dictionary construction.
package hash

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// tupleSep joins a key-tuple's column values before hashing; chosen to
// be a byte unlikely to appear in a CSV field.
const tupleSep = "\x1f"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// TupleID computes the xxHash64 of a key-tuple's column values, joined
// on a separator byte that CSV fields won't contain. Tuples whose column
// values all match always hash equal; distinct tuples can still collide,
// so callers compare the values themselves within a bucket.
func TupleID(tuple []string) uint64 {
	return ID(strings.Join(tuple, tupleSep))
}
