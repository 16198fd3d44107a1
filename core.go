package sphincsplus

import (
	"runtime"
	"sync"
)

// Computes the value of the leaf with the given index into out.
// Must be safe to call from several goroutines, each with its own pad.
type leafFunc func(pad scratchPad, idx uint32, out []byte)

// Entry on the treehash stack.
type stackNode struct {
	node   []byte
	height uint32
}

// Maximum number of leaves generated in one go by treeHash.
const leafBatchSize = 256

// Returns the number of worker goroutines to use.
func (ctx *Context) threads() int {
	if ctx.Threads <= 0 {
		return runtime.NumCPU()
	}
	return ctx.Threads
}

// Computes the root of the height z subtree whose leftmost leaf has
// index start, which must be a multiple of 2^z.  The internal nodes are
// hashed under nodeAddr (of type TREE or FORS_TREE) with tree height and
// tree index set to their position.
//
// Leaves are generated in batches, possibly in parallel.  They are merged
// strictly left to right on a stack of at most z+1 nodes: whenever the top
// two nodes have the same height they are replaced by their parent.
func (ctx *Context) treeHash(pad scratchPad, start, z uint32, pubSeed []byte,
	nodeAddr address, leaf leafFunc) []byte {
	n := ctx.p.N
	var count uint32 = 1 << z
	batch := count
	if batch > leafBatchSize {
		batch = leafBatchSize
	}
	leaves := make([]byte, batch*n)
	pair := make([]byte, 2*n)
	stack := make([]stackNode, 0, z+1)

	for off := uint32(0); off < count; off += batch {
		ctx.genLeavesInto(pad, start+off, batch, leaf, leaves)

		var i uint32
		for i = 0; i < batch; i++ {
			idx := start + off + i
			node := make([]byte, n)
			copy(node, leaves[i*n:(i+1)*n])
			var height uint32

			for len(stack) > 0 && stack[len(stack)-1].height == height {
				left := stack[len(stack)-1].node
				stack = stack[:len(stack)-1]
				copy(pair, left)
				copy(pair[n:], node)
				height++
				nodeAddr.setTreeHeight(height)
				nodeAddr.setTreeIndex(idx >> height)
				ctx.thashInto(pad, pubSeed, nodeAddr, pair, node)
			}

			stack = append(stack, stackNode{node: node, height: height})
		}
	}

	return stack[0].node
}

// Computes the count leaves starting at index first into out.
func (ctx *Context) genLeavesInto(pad scratchPad, first, count uint32,
	leaf leafFunc, out []byte) {
	n := ctx.p.N
	var idx uint32

	threads := ctx.threads()
	if threads == 1 || count == 1 {
		for idx = 0; idx < count; idx++ {
			leaf(pad, first+idx, out[idx*n:(idx+1)*n])
		}
		return
	}

	// The code below does exactly the same as the loop above,
	// but then in parallel.
	if uint32(threads) > count {
		threads = int(count)
	}
	perBatch := count / uint32(4*threads)
	if perBatch == 0 {
		perBatch = 1
	}
	wg := &sync.WaitGroup{}
	mux := &sync.Mutex{}
	wg.Add(threads)
	for i := 0; i < threads; i++ {
		go func() {
			pad := ctx.newScratchPad()
			var ourIdx uint32
			for {
				mux.Lock()
				ourIdx = idx
				idx += perBatch
				mux.Unlock()
				if ourIdx >= count {
					break
				}
				ourEnd := ourIdx + perBatch
				if ourEnd > count {
					ourEnd = count
				}
				for ; ourIdx < ourEnd; ourIdx++ {
					leaf(pad, first+ourIdx, out[ourIdx*n:(ourIdx+1)*n])
				}
			}
			wg.Done()
		}()
	}

	wg.Wait() // wait for all workers to finish
}

// Uses the authentication path to hash node up to the root of its tree.
// leafIdx is the index of node among the leaves in the address space of
// nodeAddr.  node is overwritten with the root.
func (ctx *Context) rootFromAuthPathInto(pad scratchPad, node []byte,
	leafIdx uint32, authPath, pubSeed []byte, nodeAddr address) {
	n := ctx.p.N
	pair := make([]byte, 2*n)
	height := uint32(1)
	for off := uint32(0); off < uint32(len(authPath)); off += n {
		sibling := authPath[off : off+n]

		if leafIdx&1 == 0 {
			// we're on the left, so the sibling hash from the
			// auth path is on the right
			copy(pair, node)
			copy(pair[n:], sibling)
		} else {
			copy(pair, sibling)
			copy(pair[n:], node)
		}

		leafIdx >>= 1
		nodeAddr.setTreeHeight(height)
		nodeAddr.setTreeIndex(leafIdx)
		ctx.thashInto(pad, pubSeed, nodeAddr, pair, node)
		height++
	}
}
