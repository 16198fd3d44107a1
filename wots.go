package sphincsplus

// Converts a message into positions on the WOTS+ chains, which
// are called "chain lengths".  Signing and verification must agree on
// these bit for bit, so both use this function.
func (ctx *Context) wotsChainLengths(msg []byte) []uint8 {
	ret := make([]uint8, ctx.wotsLen)

	// compute the chain lengths for the message itself
	ctx.toBaseW(msg, ret[:ctx.wotsLen1])

	// compute the checksum
	var csum uint32 = 0
	for i := 0; i < int(ctx.wotsLen1); i++ {
		csum += uint32(ctx.p.WotsW) - 1 - uint32(ret[i])
	}

	// put checksum in buffer, left aligned on a byte boundary
	ctx.toBaseW(ctx.wotsChecksumBytes(csum), ret[ctx.wotsLen1:])
	return ret
}

// Encodes the checksum as the bytes from which its len2 base w digits
// are read.
func (ctx *Context) wotsChecksumBytes(csum uint32) []byte {
	csumBits := ctx.wotsLen2 * uint32(ctx.wotsLogW)
	csum <<= (8 - csumBits%8) % 8
	return encodeUint64(uint64(csum), int((csumBits+7)/8))
}

// Compute the (start + steps)th value in the WOTS+ chain, given
// the start'th value in the chain.  Fails if the chain would run past
// its end.
func (ctx *Context) wotsGenChainInto(pad scratchPad, in []byte,
	start, steps uint16, pubSeed []byte, addr address, out []byte) Error {
	if uint32(start)+uint32(steps) > uint32(ctx.p.WotsW)-1 {
		return errorf(ErrChainRange,
			"chain from %d with %d steps runs past %d",
			start, steps, ctx.p.WotsW-1)
	}
	ctx.wotsChainInto(pad, in, start, steps, pubSeed, addr, out)
	return nil
}

// Like wotsGenChainInto, but without the range check.
func (ctx *Context) wotsChainInto(pad scratchPad, in []byte,
	start, steps uint16, pubSeed []byte, addr address, out []byte) {
	copy(out, in)
	for i := start; i < start+steps; i++ {
		addr.setHash(uint32(i))
		ctx.thashInto(pad, pubSeed, addr, out, out)
	}
}

// Derive the secret start of every WOTS+ chain of the key pair at addr
// into out.
func (ctx *Context) wotsSkGenInto(pad scratchPad, skSeed []byte,
	addr address, out []byte) {
	n := ctx.p.N
	addr.setHash(0)
	var i uint32
	for i = 0; i < ctx.wotsLen; i++ {
		addr.setChain(i)
		ctx.prfInto(pad, skSeed, addr, out[i*n:(i+1)*n])
	}
}

// Compresses the ends of the WOTS+ chains of the key pair at addr into
// its public key.
func (ctx *Context) wotsCompressInto(pad scratchPad, chains, pubSeed []byte,
	addr address, out []byte) {
	var pkAddr address
	pkAddr.setSubTreeFrom(addr)
	pkAddr.setType(ADDR_TYPE_WOTS_PK)
	pkAddr.setKeyPair(addr.keyPair())
	ctx.thashInto(pad, pubSeed, pkAddr, chains, out)
}

// Generate the WOTS+ public key of the key pair at addr into out.
// addr should have type WOTS_HASH.
func (ctx *Context) wotsPkGenInto(pad scratchPad, skSeed, pubSeed []byte,
	addr address, out []byte) {
	n := ctx.p.N
	buf := pad.wotsBuf()[:ctx.wotsSigBytes]
	ctx.wotsSkGenInto(pad, skSeed, addr, buf)
	var i uint32
	for i = 0; i < ctx.wotsLen; i++ {
		addr.setChain(i)
		ctx.wotsChainInto(pad, buf[i*n:(i+1)*n], 0, ctx.p.WotsW-1,
			pubSeed, addr, buf[i*n:(i+1)*n])
	}
	ctx.wotsCompressInto(pad, buf, pubSeed, addr, out)
}

// Generate the WOTS+ public key of the key pair at addr.
func (ctx *Context) wotsPkGen(pad scratchPad, skSeed, pubSeed []byte,
	addr address) []byte {
	ret := make([]byte, ctx.p.N)
	ctx.wotsPkGenInto(pad, skSeed, pubSeed, addr, ret)
	return ret
}

// Create a WOTS+ signature of an n-byte message into out.
func (ctx *Context) wotsSignInto(pad scratchPad, msg, skSeed, pubSeed []byte,
	addr address, out []byte) Error {
	n := ctx.p.N
	lengths := ctx.wotsChainLengths(msg)
	ctx.wotsSkGenInto(pad, skSeed, addr, out)
	var i uint32
	for i = 0; i < ctx.wotsLen; i++ {
		addr.setChain(i)
		err := ctx.wotsGenChainInto(pad, out[i*n:(i+1)*n], 0,
			uint16(lengths[i]), pubSeed, addr, out[i*n:(i+1)*n])
		if err != nil {
			zeroBytes(out)
			return err
		}
	}
	return nil
}

// Create a WOTS+ signature of an n-byte message
func (ctx *Context) wotsSign(pad scratchPad, msg, skSeed, pubSeed []byte,
	addr address) ([]byte, Error) {
	ret := make([]byte, ctx.wotsSigBytes)
	if err := ctx.wotsSignInto(pad, msg, skSeed, pubSeed, addr, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// Recovers the WOTS+ public key from a message and its WOTS+ signature
// into out.
func (ctx *Context) wotsPkFromSigInto(pad scratchPad, sig, msg,
	pubSeed []byte, addr address, out []byte) Error {
	if len(sig) != int(ctx.wotsSigBytes) {
		return errorf(ErrMalformedSignature,
			"WOTS+ signature has %d bytes instead of %d",
			len(sig), ctx.wotsSigBytes)
	}
	n := ctx.p.N
	lengths := ctx.wotsChainLengths(msg)
	buf := pad.wotsBuf()[:ctx.wotsSigBytes]
	var i uint32
	for i = 0; i < ctx.wotsLen; i++ {
		addr.setChain(i)
		err := ctx.wotsGenChainInto(pad, sig[i*n:(i+1)*n],
			uint16(lengths[i]), ctx.p.WotsW-1-uint16(lengths[i]),
			pubSeed, addr, buf[i*n:(i+1)*n])
		if err != nil {
			return err
		}
	}
	ctx.wotsCompressInto(pad, buf, pubSeed, addr, out)
	return nil
}

// Returns the WOTS+ public key from a message and its WOTS+ signature.
func (ctx *Context) wotsPkFromSig(pad scratchPad, sig, msg, pubSeed []byte,
	addr address) ([]byte, Error) {
	ret := make([]byte, ctx.p.N)
	if err := ctx.wotsPkFromSigInto(pad, sig, msg, pubSeed, addr, ret); err != nil {
		return nil, err
	}
	return ret, nil
}
