package ssdeep

import "errors"

// ErrMalformedSignature is returned (wrapped) by ParseSignature when its
// input is not a well-formed "blocksize:block1:block2" ssdeep signature.
// Compare and CompareString report the same condition as a score of -1.
var ErrMalformedSignature = errors.New("ssdeep: malformed signature")

// ErrInputTooLarge is returned by SetTotalInputLength when the declared
// length exceeds the largest input the engine can represent in its fixed
// block-hash array. Input that actually exceeds that size is not reported
// as an error; Digest returns "" for it instead.
var ErrInputTooLarge = errors.New("ssdeep: input exceeds maximum hashable size")

// ErrSizeMismatch is returned by SetTotalInputLength, or surfaces from
// Digest producing an empty string, when the declared total length does
// not match the bytes actually written.
var ErrSizeMismatch = errors.New("ssdeep: declared total length does not match bytes written")
