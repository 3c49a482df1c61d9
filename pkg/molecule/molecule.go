// Package molecule implements the subset of the molecule binary schema CKB uses to
// serialize scripts: Byte32, Bytes (fixvec<byte>) and tables.
package molecule

import "encoding/binary"

const headerUnitSize = 4

// Byte32 returns a copy of the fixed 32-byte array.
func Byte32(v [32]byte) []byte {
	out := make([]byte, 32)
	copy(out, v[:])
	return out
}

// Bytes encodes a fixvec<byte>: item count followed by the raw bytes.
func Bytes(v []byte) []byte {
	out := make([]byte, headerUnitSize+len(v))
	binary.LittleEndian.PutUint32(out, uint32(len(v)))
	copy(out[headerUnitSize:], v)
	return out
}

// Table encodes fields as a molecule table: full size, field offsets, field bodies.
func Table(fields ...[]byte) []byte {
	headerSize := headerUnitSize * (len(fields) + 1)
	total := headerSize
	for _, f := range fields {
		total += len(f)
	}

	out := make([]byte, total)
	binary.LittleEndian.PutUint32(out, uint32(total))
	offset := headerSize
	for i, f := range fields {
		binary.LittleEndian.PutUint32(out[headerUnitSize*(i+1):], uint32(offset))
		copy(out[offset:], f)
		offset += len(f)
	}
	return out
}
