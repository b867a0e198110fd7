package search

import "errors"

// ErrIntegrityGap marks a pool whose referenced token records are missing
// from storage. The affected result is logged and dropped; sibling results
// in the same request are unaffected.
var ErrIntegrityGap = errors.New("pool references a token absent from storage")
