package buffer

import "unsafe"

func unsafeBytes(words []uint32) []byte {
	//nolint:gosec // test helper reinterpreting aligned words as bytes
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), len(words)*4)
}
