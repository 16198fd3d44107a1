package sphincsplus

// Represents a signature made by a subtree. This is basically
// an XMSS signature without all the decorations.
type subTreeSig struct {
	wotsSig  []byte
	authPath []byte
}

// Returns the leaves of the XMSS subtree at addr: the WOTS+ public
// keys of its key pairs.
func (ctx *Context) xmssLeaf(skSeed, pubSeed []byte, addr address) leafFunc {
	return func(pad scratchPad, idx uint32, out []byte) {
		var otsAddr address
		otsAddr.setSubTreeFrom(addr)
		otsAddr.setType(ADDR_TYPE_WOTS_HASH)
		otsAddr.setKeyPair(idx)
		ctx.wotsPkGenInto(pad, skSeed, pubSeed, otsAddr, out)
	}
}

// Computes the height z node of the XMSS subtree at addr whose leftmost
// leaf is start.
func (ctx *Context) xmssTreeHash(pad scratchPad, skSeed, pubSeed []byte,
	start, z uint32, addr address) []byte {
	var nodeAddr address
	nodeAddr.setSubTreeFrom(addr)
	nodeAddr.setType(ADDR_TYPE_TREE)
	return ctx.treeHash(pad, start, z, pubSeed, nodeAddr,
		ctx.xmssLeaf(skSeed, pubSeed, addr))
}

// Computes the root of the XMSS subtree at addr.
func (ctx *Context) xmssPkGen(pad scratchPad, skSeed, pubSeed []byte,
	addr address) []byte {
	return ctx.xmssTreeHash(pad, skSeed, pubSeed, 0, ctx.treeHeight, addr)
}

// Computes the authentication path of the given leaf: for every height
// the root of the sibling subtree.
func (ctx *Context) xmssAuthPath(pad scratchPad, skSeed, pubSeed []byte,
	idx uint32, addr address) []byte {
	n := ctx.p.N
	ret := make([]byte, ctx.treeHeight*n)
	var j uint32
	for j = 0; j < ctx.treeHeight; j++ {
		sibling := (idx >> j) ^ 1
		copy(ret[j*n:], ctx.xmssTreeHash(pad, skSeed, pubSeed,
			sibling<<j, j, addr))
	}
	return ret
}

// Signs the n-byte message msg with the idx'th WOTS+ key pair of the
// XMSS subtree at addr.
func (ctx *Context) xmssSign(pad scratchPad, msg, skSeed, pubSeed []byte,
	idx uint32, addr address) (subTreeSig, Error) {
	var otsAddr address
	otsAddr.setSubTreeFrom(addr)
	otsAddr.setType(ADDR_TYPE_WOTS_HASH)
	otsAddr.setKeyPair(idx)

	wotsSig, err := ctx.wotsSign(pad, msg, skSeed, pubSeed, otsAddr)
	if err != nil {
		return subTreeSig{}, err
	}
	return subTreeSig{
		wotsSig:  wotsSig,
		authPath: ctx.xmssAuthPath(pad, skSeed, pubSeed, idx, addr),
	}, nil
}

// Checks the lengths of the parts of a subtree signature.
func (ctx *Context) checkSubTreeSig(sig subTreeSig) Error {
	if len(sig.wotsSig) != int(ctx.wotsSigBytes) {
		return errorf(ErrMalformedSignature,
			"WOTS+ signature has %d bytes instead of %d",
			len(sig.wotsSig), ctx.wotsSigBytes)
	}
	if len(sig.authPath) != int(ctx.treeHeight*ctx.p.N) {
		return errorf(ErrMalformedSignature,
			"authentication path has %d bytes instead of %d",
			len(sig.authPath), ctx.treeHeight*ctx.p.N)
	}
	return nil
}

// Recovers the root of the XMSS subtree at addr from the signature sig
// of msg by its idx'th key pair.
func (ctx *Context) xmssPkFromSig(pad scratchPad, idx uint32, sig subTreeSig,
	msg, pubSeed []byte, addr address) ([]byte, Error) {
	if err := ctx.checkSubTreeSig(sig); err != nil {
		return nil, err
	}

	var otsAddr, nodeAddr address
	otsAddr.setSubTreeFrom(addr)
	otsAddr.setType(ADDR_TYPE_WOTS_HASH)
	otsAddr.setKeyPair(idx)
	nodeAddr.setSubTreeFrom(addr)
	nodeAddr.setType(ADDR_TYPE_TREE)

	node, err := ctx.wotsPkFromSig(pad, sig.wotsSig, msg, pubSeed, otsAddr)
	if err != nil {
		return nil, err
	}
	ctx.rootFromAuthPathInto(pad, node, idx, sig.authPath, pubSeed, nodeAddr)
	return node, nil
}
