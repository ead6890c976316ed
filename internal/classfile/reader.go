package classfile

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrTruncated is returned when the input ends before a structure is complete.
var ErrTruncated = errors.New("classfile: unexpected end of data")

// byteReader reads big-endian values from a byte slice and remembers the
// first failure, so callers can check once after a run of reads.
type byteReader struct {
	data []byte
	pos  int
	err  error
}

func newByteReader(data []byte) *byteReader {
	return &byteReader{data: data}
}

func (r *byteReader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || r.pos+n > len(r.data) {
		r.err = fmt.Errorf("%w at offset %d (need %d bytes, have %d)", ErrTruncated, r.pos, n, len(r.data)-r.pos)
		return false
	}
	return true
}

func (r *byteReader) u1() uint8 {
	if !r.need(1) {
		return 0
	}
	v := r.data[r.pos]
	r.pos++
	return v
}

func (r *byteReader) u2() uint16 {
	if !r.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v
}

func (r *byteReader) u4() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v
}

func (r *byteReader) bytes(n int) []byte {
	if !r.need(n) {
		return nil
	}
	v := r.data[r.pos : r.pos+n]
	r.pos += n
	return v
}

func (r *byteReader) skip(n int) {
	if r.need(n) {
		r.pos += n
	}
}
