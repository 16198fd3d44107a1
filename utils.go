package sphincsplus

import (
	"encoding/binary"
)

// Encodes the given uint64 into the buffer out in Big Endian
func encodeUint64Into(x uint64, out []byte) {
	if len(out)%8 == 0 {
		binary.BigEndian.PutUint64(out[len(out)-8:], x)
		for i := 0; i < len(out)-8; i += 8 {
			binary.BigEndian.PutUint64(out[i:i+8], 0)
		}
	} else {
		for i := len(out) - 1; i >= 0; i-- {
			out[i] = byte(x)
			x >>= 8
		}
	}
}

// Encodes the given uint64 as [outLen]byte in Big Endian.
func encodeUint64(x uint64, outLen int) []byte {
	ret := make([]byte, outLen)
	encodeUint64Into(x, ret)
	return ret
}

// Reads a byte string as a sequence of big-endian bit fields.
type bitReader struct {
	buf []byte
	off uint32 // offset in bits
}

// Returns the next count (at most 64) bits as an unsigned integer.
// Bits past the end of the buffer read as zero.
func (r *bitReader) read(count uint32) (ret uint64) {
	for ; count > 0; count-- {
		byteIdx := r.off >> 3
		var bit uint64
		if int(byteIdx) < len(r.buf) {
			bit = uint64(r.buf[byteIdx]>>(7-(r.off&7))) & 1
		}
		ret = (ret << 1) | bit
		r.off++
	}
	return
}

// Copies the next count bits into a fresh ceil(count/8)-byte buffer,
// left-aligned, with the unused trailing bits set to zero.
func (r *bitReader) readBytes(count uint32) []byte {
	ret := make([]byte, (count+7)/8)
	for i := 0; count > 0; i++ {
		take := uint32(8)
		if count < 8 {
			take = count
		}
		ret[i] = byte(r.read(take) << (8 - take))
		count -= take
	}
	return ret
}

// Overwrites buf with zeroes.
func zeroBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
