package sphincsplus

import (
	"bytes"
	"testing"
)

func TestXmssSignThenVerify(t *testing.T) {
	params := smallParams
	params.FullHeight = 6
	params.D = 2
	ctx := newTestContext(params, t)
	pubSeed, skSeed := testSeeds(ctx)
	sta := SubTreeAddress{Layer: 1, Tree: 2}
	addr := sta.address()
	root := ctx.xmssPkGen(ctx.newScratchPad(), skSeed, pubSeed, addr)
	msg := bytes.Repeat([]byte{42}, int(ctx.p.N))

	var idx uint32
	for idx = 0; idx < 1<<ctx.treeHeight; idx++ {
		sig, err := ctx.xmssSign(ctx.newScratchPad(), msg, skSeed, pubSeed,
			idx, addr)
		if err != nil {
			t.Fatalf("xmssSign(%d): %v", idx, err)
		}
		root2, err := ctx.xmssPkFromSig(ctx.newScratchPad(), idx, sig, msg,
			pubSeed, addr)
		if err != nil {
			t.Fatalf("xmssPkFromSig(%d): %v", idx, err)
		}
		if !bytes.Equal(root, root2) {
			t.Fatalf("root from signature by leaf %d is wrong", idx)
		}

		root3, _ := ctx.xmssPkFromSig(ctx.newScratchPad(), idx^1, sig, msg,
			pubSeed, addr)
		if bytes.Equal(root, root3) {
			t.Fatalf("signature by leaf %d verifies for leaf %d", idx, idx^1)
		}
	}
}

func TestXmssDependsOnAddress(t *testing.T) {
	ctx := newTestContext(smallParams, t)
	pubSeed, skSeed := testSeeds(ctx)
	sta1 := SubTreeAddress{Layer: 0, Tree: 1}
	sta2 := SubTreeAddress{Layer: 1, Tree: 1}
	sta3 := SubTreeAddress{Layer: 0, Tree: 2}
	pad := ctx.newScratchPad()
	root1 := ctx.xmssPkGen(pad, skSeed, pubSeed, sta1.address())
	root2 := ctx.xmssPkGen(pad, skSeed, pubSeed, sta2.address())
	root3 := ctx.xmssPkGen(pad, skSeed, pubSeed, sta3.address())
	if bytes.Equal(root1, root2) || bytes.Equal(root1, root3) {
		t.Fatalf("different subtrees have the same root")
	}
}

func TestXmssMalformedSignature(t *testing.T) {
	ctx := newTestContext(smallParams, t)
	pubSeed, skSeed := testSeeds(ctx)
	var addr address
	msg := make([]byte, ctx.p.N)
	sig, err := ctx.xmssSign(ctx.newScratchPad(), msg, skSeed, pubSeed, 1, addr)
	if err != nil {
		t.Fatalf("xmssSign(): %v", err)
	}

	short := sig
	short.authPath = sig.authPath[:len(sig.authPath)-1]
	_, err = ctx.xmssPkFromSig(ctx.newScratchPad(), 1, short, msg, pubSeed, addr)
	if err == nil || err.Kind() != ErrMalformedSignature {
		t.Fatalf("short authentication path did not fail properly: %v", err)
	}

	short = sig
	short.wotsSig = nil
	_, err = ctx.xmssPkFromSig(ctx.newScratchPad(), 1, short, msg, pubSeed, addr)
	if err == nil || err.Kind() != ErrMalformedSignature {
		t.Fatalf("missing WOTS+ signature did not fail properly: %v", err)
	}
}
