package sphincsplus

import (
	"bytes"
	"testing"
)

// Tiny instance for tests of the building blocks: 2 layers of subtrees
// of height 2 and 4 FORS trees of height 3.
var smallParams = Params{Func: SHA2, N: 16, FullHeight: 4, D: 2,
	K: 4, A: 3, WotsW: 16}

func newTestContext(params Params, t testing.TB) *Context {
	ctx, err := NewContext(params)
	if err != nil {
		t.Fatalf("NewContext(): %v", err)
	}
	return ctx
}

func testSeeds(ctx *Context) (pubSeed, skSeed []byte) {
	pubSeed = make([]byte, ctx.p.N)
	skSeed = make([]byte, ctx.p.N)
	for i := 0; i < int(ctx.p.N); i++ {
		pubSeed[i] = byte(2 * i)
		skSeed[i] = byte(i)
	}
	return
}

// Computes the height z node whose leftmost leaf is start recursively.
func refTreeHash(ctx *Context, start, z uint32, pubSeed []byte,
	nodeAddr address, leaf leafFunc) []byte {
	pad := ctx.newScratchPad()
	if z == 0 {
		ret := make([]byte, ctx.p.N)
		leaf(pad, start, ret)
		return ret
	}
	left := refTreeHash(ctx, start, z-1, pubSeed, nodeAddr, leaf)
	right := refTreeHash(ctx, start+(1<<(z-1)), z-1, pubSeed, nodeAddr, leaf)
	nodeAddr.setTreeHeight(z)
	nodeAddr.setTreeIndex(start >> z)
	return ctx.thash(pad, pubSeed, nodeAddr, concat(left, right))
}

func TestTreeHash(t *testing.T) {
	ctx := newTestContext(smallParams, t)
	pubSeed, skSeed := testSeeds(ctx)
	sta := SubTreeAddress{Layer: 1, Tree: 3}
	addr := sta.address()
	addr.setType(ADDR_TYPE_FORS_TREE)
	addr.setKeyPair(2)
	leaf := ctx.forsLeaf(skSeed, pubSeed, addr)

	var z uint32
	for z = 0; z <= 4; z++ {
		for _, start := range []uint32{0, 1 << z, 3 << z} {
			got := ctx.treeHash(ctx.newScratchPad(), start, z, pubSeed,
				addr, leaf)
			expect := refTreeHash(ctx, start, z, pubSeed, addr, leaf)
			if !bytes.Equal(got, expect) {
				t.Fatalf("treeHash(%d, %d) is %x instead of %x",
					start, z, got, expect)
			}
		}
	}
}

// Trees with more leaves than fit in a single batch.
func TestTreeHashBatches(t *testing.T) {
	ctx := newTestContext(smallParams, t)
	pubSeed, skSeed := testSeeds(ctx)
	var addr address
	addr.setType(ADDR_TYPE_FORS_TREE)
	leaf := ctx.forsLeaf(skSeed, pubSeed, addr)

	expect := refTreeHash(ctx, 1024, 10, pubSeed, addr, leaf)
	for _, threads := range []int{1, 4, 0} {
		ctx.Threads = threads
		got := ctx.treeHash(ctx.newScratchPad(), 1024, 10, pubSeed, addr, leaf)
		if !bytes.Equal(got, expect) {
			t.Fatalf("treeHash with %d threads is %x instead of %x",
				threads, got, expect)
		}
	}
}

func TestRootFromAuthPath(t *testing.T) {
	ctx := newTestContext(smallParams, t)
	pubSeed, skSeed := testSeeds(ctx)
	var addr address
	addr.setType(ADDR_TYPE_FORS_TREE)
	leaf := ctx.forsLeaf(skSeed, pubSeed, addr)
	n := ctx.p.N
	var z uint32 = 4

	root := ctx.treeHash(ctx.newScratchPad(), 0, z, pubSeed, addr, leaf)
	var idx, j uint32
	for idx = 0; idx < 1<<z; idx++ {
		authPath := make([]byte, z*n)
		for j = 0; j < z; j++ {
			copy(authPath[j*n:], ctx.treeHash(ctx.newScratchPad(),
				((idx>>j)^1)<<j, j, pubSeed, addr, leaf))
		}
		node := make([]byte, n)
		leaf(ctx.newScratchPad(), idx, node)
		ctx.rootFromAuthPathInto(ctx.newScratchPad(), node, idx, authPath,
			pubSeed, addr)
		if !bytes.Equal(node, root) {
			t.Fatalf("root from authentication path of leaf %d is wrong", idx)
		}
	}
}

func BenchmarkTreeHash10SHA2(b *testing.B) {
	benchmarkTreeHash(newTestContext(smallParams, b), b)
}

func BenchmarkTreeHash10SHAKE(b *testing.B) {
	params := smallParams
	params.Func = SHAKE
	benchmarkTreeHash(newTestContext(params, b), b)
}

func benchmarkTreeHash(ctx *Context, b *testing.B) {
	pubSeed, skSeed := testSeeds(ctx)
	var addr address
	addr.setType(ADDR_TYPE_TREE)
	pad := ctx.newScratchPad()
	leaf := ctx.xmssLeaf(skSeed, pubSeed, addr)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx.treeHash(pad, 0, 10, pubSeed, addr, leaf)
	}
}
