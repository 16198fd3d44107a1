package sphincsplus

import (
	"crypto/sha256"

	"github.com/templexxx/xor"
	"golang.org/x/crypto/sha3"
)

// Computes the underlying hash of in, truncated to len(out) <= N bytes.
func (ctx *Context) hashInto(pad scratchPad, in, out []byte) {
	if ctx.p.Func == SHA2 {
		pad.h256.Reset()
		pad.h256.Write(in)
		copy(out, pad.h256.Sum(pad.sum[:0]))
	} else { // SHAKE
		sha3.ShakeSum256(out, in)
	}
}

// Compute the tweakable hash of value under pubSeed and addr into out.
//
//	simple: H(pubSeed || addr || value)
//	robust: H(pubSeed || addr || value XOR mask(pubSeed, addr))
//
// value may overlap with out.
func (ctx *Context) thashInto(pad scratchPad, pubSeed []byte, addr address,
	value, out []byte) {
	n := ctx.p.N
	buf := pad.thashBuf()[:n+addressSize+uint32(len(value))]
	copy(buf, pubSeed)
	addr.writeInto(buf[n:])
	if ctx.p.Robust {
		mask := pad.maskBuf()[:len(value)]
		ctx.genMaskInto(pad, pubSeed, addr, mask)
		xor.BytesSameLen(buf[n+addressSize:], value, mask)
	} else {
		copy(buf[n+addressSize:], value)
	}
	ctx.hashInto(pad, buf, out[:n])
}

// Compute the tweakable hash of value under pubSeed and addr.
func (ctx *Context) thash(pad scratchPad, pubSeed []byte, addr address,
	value []byte) []byte {
	ret := make([]byte, ctx.p.N)
	ctx.thashInto(pad, pubSeed, addr, value, ret)
	return ret
}

// Expands pubSeed and addr into a bitmask of len(out) bytes.
func (ctx *Context) genMaskInto(pad scratchPad, pubSeed []byte,
	addr address, out []byte) {
	n := ctx.p.N
	in := pad.maskInBuf()
	copy(in, pubSeed)
	addr.writeInto(in[n:])
	if ctx.p.Func == SHAKE {
		sha3.ShakeSum256(out, in[:n+addressSize])
		return
	}
	var ctr uint64
	for off := 0; off < len(out); off += sha256.Size {
		encodeUint64Into(ctr, in[n+addressSize:])
		end := off + sha256.Size
		if end > len(out) {
			end = len(out)
		}
		pad.h256.Reset()
		pad.h256.Write(in)
		copy(out[off:end], pad.h256.Sum(pad.sum[:0]))
		ctr++
	}
}

// Compute PRF(skSeed, addr) = H(skSeed || addr) into out.
func (ctx *Context) prfInto(pad scratchPad, skSeed []byte, addr address,
	out []byte) {
	n := ctx.p.N
	buf := pad.thashBuf()[:n+addressSize]
	copy(buf, skSeed)
	addr.writeInto(buf[n:])
	ctx.hashInto(pad, buf, out[:n])
	zeroBytes(buf[:n])
}

// Compute PRF(skSeed, addr).
func (ctx *Context) prf(pad scratchPad, skSeed []byte, addr address) []byte {
	ret := make([]byte, ctx.p.N)
	ctx.prfInto(pad, skSeed, addr, ret)
	return ret
}

// Compute an outLen byte digest of msg, randomized by R and bound to the
// public key.  For SHA2 the digest is the concatenation of
//
//	H(R || pubSeed || root || msg),
//	H(R || pubSeed || root || msg || 1),
//	H(R || pubSeed || root || msg || 2), ...
//
// with the counters encoded as 4-byte big endian; for SHAKE it is read
// from the extendable output.
func (ctx *Context) hashMessage(R, pubSeed, root, msg []byte,
	outLen uint32) []byte {
	ret := make([]byte, outLen)
	if ctx.p.Func == SHAKE {
		h := sha3.NewShake256()
		h.Write(R)
		h.Write(pubSeed)
		h.Write(root)
		h.Write(msg)
		h.Read(ret)
		return ret
	}

	h := sha256.New()
	var ctr uint64
	for off := 0; off < len(ret); off += sha256.Size {
		h.Reset()
		h.Write(R)
		h.Write(pubSeed)
		h.Write(root)
		h.Write(msg)
		if ctr > 0 {
			h.Write(encodeUint64(ctr, 4))
		}
		copy(ret[off:], h.Sum(nil))
		ctr++
	}
	return ret
}

// Compute the randomizer R = H(skPrf || opt || hashMessage(msg)) for
// the given message.
func (ctx *Context) prfMsg(pad scratchPad, skPrf, opt, msg []byte) []byte {
	n := ctx.p.N
	buf := make([]byte, 4*n)
	copy(buf, skPrf)
	copy(buf[n:], opt)
	copy(buf[2*n:], ctx.hashMessage(nil, nil, nil, msg, 2*n))
	ret := make([]byte, n)
	ctx.hashInto(pad, buf, ret)
	zeroBytes(buf)
	return ret
}

// Converts the given array of bytes into base w digits, most significant
// first.  Only works if LogW divides into 8.
func (ctx *Context) toBaseW(input []byte, output []uint8) {
	var in uint32 = 0
	var total uint8
	var bits uint8

	for out := range output {
		if bits == 0 {
			total = input[in]
			in++
			bits = 8
		}
		bits -= ctx.wotsLogW
		output[out] = uint8(uint16(total>>bits) & (ctx.p.WotsW - 1))
	}
}
