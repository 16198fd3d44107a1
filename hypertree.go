package sphincsplus

import (
	"crypto/subtle"
)

// Computes the root of the hypertree: the root of the single subtree
// on the top layer.
func (ctx *Context) htPkGen(pad scratchPad, skSeed, pubSeed []byte) []byte {
	sta := SubTreeAddress{Layer: ctx.p.D - 1}
	return ctx.xmssPkGen(pad, skSeed, pubSeed, sta.address())
}

// Computes the path of subtrees from the leaf (idxTree, idxLeaf) on the
// bottom layer up to the root, together with the leaf used in each.
func (ctx *Context) subTreePath(idxTree uint64, idxLeaf uint32) (
	path []SubTreeAddress, leafs []uint32) {
	path = make([]SubTreeAddress, ctx.p.D)
	leafs = make([]uint32, ctx.p.D)
	var layer uint32
	for layer = 0; layer < ctx.p.D; layer++ {
		path[layer] = SubTreeAddress{Layer: layer, Tree: idxTree}
		leafs[layer] = idxLeaf
		idxLeaf = uint32(idxTree & ((1 << ctx.treeHeight) - 1))
		idxTree >>= ctx.treeHeight
	}
	return
}

// Signs msg with the hypertree: the subtree on layer 0 signs msg with the
// given leaf, and the subtree on each next layer signs the root of the
// one below it.
func (ctx *Context) htSign(pad scratchPad, msg, skSeed, pubSeed []byte,
	idxTree uint64, idxLeaf uint32) ([]subTreeSig, Error) {
	staPath, leafs := ctx.subTreePath(idxTree, idxLeaf)
	sigs := make([]subTreeSig, ctx.p.D)
	root := msg

	for layer, sta := range staPath {
		addr := sta.address()
		sig, err := ctx.xmssSign(pad, root, skSeed, pubSeed, leafs[layer], addr)
		if err != nil {
			return nil, err
		}
		sigs[layer] = sig

		if layer == len(staPath)-1 {
			break
		}
		root, err = ctx.xmssPkFromSig(pad, leafs[layer], sig, root, pubSeed, addr)
		if err != nil {
			return nil, err
		}
	}

	return sigs, nil
}

// Checks the number and the lengths of the subtree signatures.
func (ctx *Context) checkHtSig(sigs []subTreeSig) Error {
	if len(sigs) != int(ctx.p.D) {
		return errorf(ErrMalformedSignature,
			"hypertree signature has %d layers instead of %d",
			len(sigs), ctx.p.D)
	}
	for layer, sig := range sigs {
		if err := ctx.checkSubTreeSig(sig); err != nil {
			return wrapErrorf(err, ErrMalformedSignature, "layer %d", layer)
		}
	}
	return nil
}

// Checks whether sigs is a hypertree signature of msg at the leaf
// (idxTree, idxLeaf) for the hypertree with the given root.  A mismatch is
// reported as false; only malformed signatures yield an error.
func (ctx *Context) htVerify(pad scratchPad, msg []byte, sigs []subTreeSig,
	pubSeed []byte, idxTree uint64, idxLeaf uint32, root []byte) (bool, Error) {
	if err := ctx.checkHtSig(sigs); err != nil {
		return false, err
	}

	staPath, leafs := ctx.subTreePath(idxTree, idxLeaf)
	node := msg
	for layer, sta := range staPath {
		var err Error
		node, err = ctx.xmssPkFromSig(pad, leafs[layer], sigs[layer], node,
			pubSeed, sta.address())
		if err != nil {
			return false, err
		}
	}

	return subtle.ConstantTimeCompare(node, root) == 1, nil
}
