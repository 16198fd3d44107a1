package sphincsplus

import (
	"encoding/binary"
)

const (
	ADDR_TYPE_WOTS_HASH  = 0
	ADDR_TYPE_WOTS_PK    = 1
	ADDR_TYPE_TREE       = 2
	ADDR_TYPE_FORS_TREE  = 3
	ADDR_TYPE_FORS_ROOTS = 4
)

// Size of an encoded address in bytes.
const addressSize = 32

// Address mixed into every hash call to diversify it.  See eg. thashInto().
//
//	word 0      layer
//	word 1-3    tree (only the low 64 bits are used)
//	word 4      type
//	word 5-7    depend on the type:
//
//	WOTS_HASH:   key pair | chain       | hash
//	WOTS_PK:     key pair | 0           | 0
//	TREE:        0        | tree height | tree index
//	FORS_TREE:   key pair | tree height | tree index
//	FORS_ROOTS:  key pair | 0           | 0
//
// An address is a value: assigning it takes a snapshot that is unaffected
// by later changes to the original.
type address [8]uint32

// Represents the position of a subtree in the hypertree.
type SubTreeAddress struct {
	// The layer of the subtree.  The bottom subtrees have layer=0
	Layer uint32

	// The offset in the layer.  The leftmost subtrees have tree=0
	Tree uint64
}

// Converts to address
func (sta *SubTreeAddress) address() (addr address) {
	addr.setLayer(sta.Layer)
	addr.setTree(sta.Tree)
	return
}

func (addr *address) setLayer(layer uint32) {
	addr[0] = layer
}

func (addr *address) layer() uint32 {
	return addr[0]
}

func (addr *address) setTree(tree uint64) {
	addr[1] = 0
	addr[2] = uint32(tree >> 32)
	addr[3] = uint32(tree)
}

func (addr *address) tree() uint64 {
	return uint64(addr[2])<<32 | uint64(addr[3])
}

// Sets the type and clears the type-dependent words.
func (addr *address) setType(typ uint32) {
	addr[4] = typ
	addr[5] = 0
	addr[6] = 0
	addr[7] = 0
}

func (addr *address) typ() uint32 {
	return addr[4]
}

func (addr *address) setSubTreeFrom(other address) {
	addr[0] = other[0]
	addr[1] = other[1]
	addr[2] = other[2]
	addr[3] = other[3]
}

// Valid for WOTS_HASH, WOTS_PK, FORS_TREE and FORS_ROOTS.
func (addr *address) setKeyPair(keyPair uint32) {
	addr[5] = keyPair
}

func (addr *address) keyPair() uint32 {
	return addr[5]
}

// Valid for WOTS_HASH.
func (addr *address) setChain(chain uint32) {
	addr[6] = chain
}

// Valid for WOTS_HASH.
func (addr *address) setHash(hash uint32) {
	addr[7] = hash
}

// Valid for TREE and FORS_TREE.
func (addr *address) setTreeHeight(treeHeight uint32) {
	addr[6] = treeHeight
}

func (addr *address) treeHeight() uint32 {
	return addr[6]
}

// Valid for TREE and FORS_TREE.
func (addr *address) setTreeIndex(treeIndex uint32) {
	addr[7] = treeIndex
}

func (addr *address) treeIndex() uint32 {
	return addr[7]
}

func (addr *address) writeInto(buf []byte) {
	for i := 0; i < 8; i++ {
		binary.BigEndian.PutUint32(buf[i*4:(i+1)*4], addr[i])
	}
}

func (addr *address) toBytes() []byte {
	ret := make([]byte, addressSize)
	addr.writeInto(ret)
	return ret
}
