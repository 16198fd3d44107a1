package sphincsplus

// Splits the FORS message md into K indices of A bits each,
// most significant first.
func (ctx *Context) forsIndices(md []byte) []uint32 {
	ret := make([]uint32, ctx.p.K)
	r := bitReader{buf: md}
	for i := range ret {
		ret[i] = uint32(r.read(ctx.p.A))
	}
	return ret
}

// Derives the secret value of the FORS leaf with the given index
// (counted over all K trees) into out.
func (ctx *Context) forsSkGenInto(pad scratchPad, skSeed []byte,
	addr address, idx uint32, out []byte) {
	addr.setTreeHeight(0)
	addr.setTreeIndex(idx)
	ctx.prfInto(pad, skSeed, addr, out)
}

// Hashes the secret value of a FORS leaf into the leaf itself.
// sk may overlap with out.
func (ctx *Context) forsLeafFromSkInto(pad scratchPad, sk, pubSeed []byte,
	addr address, idx uint32, out []byte) {
	addr.setTreeHeight(0)
	addr.setTreeIndex(idx)
	ctx.thashInto(pad, pubSeed, addr, sk, out)
}

// Returns the leaves of the FORS trees of the key pair at addr.
func (ctx *Context) forsLeaf(skSeed, pubSeed []byte, addr address) leafFunc {
	return func(pad scratchPad, idx uint32, out []byte) {
		ctx.forsSkGenInto(pad, skSeed, addr, idx, out)
		ctx.forsLeafFromSkInto(pad, out, pubSeed, addr, idx, out)
	}
}

// Computes the height z FORS node whose leftmost leaf is start.
// addr should have type FORS_TREE.
func (ctx *Context) forsTreeHash(pad scratchPad, skSeed, pubSeed []byte,
	start, z uint32, addr address) []byte {
	return ctx.treeHash(pad, start, z, pubSeed, addr,
		ctx.forsLeaf(skSeed, pubSeed, addr))
}

// Compresses the K FORS roots into the FORS public key.
func (ctx *Context) forsCompress(pad scratchPad, roots, pubSeed []byte,
	addr address) []byte {
	var rootsAddr address
	rootsAddr.setSubTreeFrom(addr)
	rootsAddr.setType(ADDR_TYPE_FORS_ROOTS)
	rootsAddr.setKeyPair(addr.keyPair())
	return ctx.thash(pad, pubSeed, rootsAddr, roots)
}

// Computes the FORS public key of the key pair at addr directly from the
// secret seed.
func (ctx *Context) forsPkGen(pad scratchPad, skSeed, pubSeed []byte,
	addr address) []byte {
	n := ctx.p.N
	roots := make([]byte, ctx.p.K*n)
	var i uint32
	for i = 0; i < ctx.p.K; i++ {
		copy(roots[i*n:], ctx.forsTreeHash(pad, skSeed, pubSeed,
			i*ctx.forsLeaves, ctx.p.A, addr))
	}
	return ctx.forsCompress(pad, roots, pubSeed, addr)
}

// Creates a FORS signature of md with the key pair at addr.  For each of
// the K trees it consists of the secret value of the selected leaf
// followed by its authentication path.
func (ctx *Context) forsSign(pad scratchPad, md, skSeed, pubSeed []byte,
	addr address) []byte {
	n := ctx.p.N
	ret := make([]byte, ctx.forsSigBytes)
	indices := ctx.forsIndices(md)
	off := uint32(0)

	var i, j uint32
	for i = 0; i < ctx.p.K; i++ {
		base := i * ctx.forsLeaves
		ctx.forsSkGenInto(pad, skSeed, addr, base+indices[i], ret[off:off+n])
		off += n

		for j = 0; j < ctx.p.A; j++ {
			sibling := (indices[i] >> j) ^ 1
			copy(ret[off:off+n], ctx.forsTreeHash(pad, skSeed, pubSeed,
				base+(sibling<<j), j, addr))
			off += n
		}
	}
	return ret
}

// Recovers the FORS public key of the key pair at addr from a FORS
// signature of md.
func (ctx *Context) forsPkFromSig(pad scratchPad, sig, md, pubSeed []byte,
	addr address) ([]byte, Error) {
	if len(sig) != int(ctx.forsSigBytes) {
		return nil, errorf(ErrMalformedSignature,
			"FORS signature has %d bytes instead of %d",
			len(sig), ctx.forsSigBytes)
	}

	n := ctx.p.N
	roots := pad.wotsBuf()[:ctx.p.K*n]
	indices := ctx.forsIndices(md)
	treeBytes := (ctx.p.A + 1) * n

	var i uint32
	for i = 0; i < ctx.p.K; i++ {
		treeSig := sig[i*treeBytes : (i+1)*treeBytes]
		idx := i*ctx.forsLeaves + indices[i]
		node := roots[i*n : (i+1)*n]
		ctx.forsLeafFromSkInto(pad, treeSig[:n], pubSeed, addr, idx, node)
		ctx.rootFromAuthPathInto(pad, node, idx, treeSig[n:], pubSeed, addr)
	}

	return ctx.forsCompress(pad, roots, pubSeed, addr), nil
}
