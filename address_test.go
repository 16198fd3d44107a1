package sphincsplus

import (
	"encoding/hex"
	"testing"
)

func TestAddressLayout(t *testing.T) {
	sta := SubTreeAddress{Layer: 1, Tree: 0x0102030405060708}
	addr := sta.address()
	addr.setType(ADDR_TYPE_FORS_TREE)
	addr.setKeyPair(5)
	addr.setTreeHeight(6)
	addr.setTreeIndex(7)

	val := hex.EncodeToString(addr.toBytes())
	expect := "00000001" + "00000000" + "01020304" + "05060708" +
		"00000003" + "00000005" + "00000006" + "00000007"
	if val != expect {
		t.Fatalf("address is %s instead of %s", val, expect)
	}
	if addr.layer() != 1 || addr.tree() != 0x0102030405060708 ||
		addr.typ() != ADDR_TYPE_FORS_TREE || addr.keyPair() != 5 ||
		addr.treeHeight() != 6 || addr.treeIndex() != 7 {
		t.Fatalf("getters do not match setters: %v", addr)
	}
}

func TestAddressSetType(t *testing.T) {
	var addr address
	addr.setLayer(3)
	addr.setTree(42)
	addr.setType(ADDR_TYPE_WOTS_HASH)
	addr.setKeyPair(1)
	addr.setChain(2)
	addr.setHash(3)

	addr.setType(ADDR_TYPE_WOTS_PK)
	if addr[5] != 0 || addr[6] != 0 || addr[7] != 0 {
		t.Fatalf("setType() did not clear the type-specific words: %v", addr)
	}
	if addr.layer() != 3 || addr.tree() != 42 {
		t.Fatalf("setType() changed the subtree: %v", addr)
	}

	var other address
	other.setSubTreeFrom(addr)
	if other.layer() != 3 || other.tree() != 42 || other.typ() != 0 {
		t.Fatalf("setSubTreeFrom() copied the wrong words: %v", other)
	}
}

func TestAddressIsValue(t *testing.T) {
	var addr address
	addr.setChain(1)
	snapshot := addr
	addr.setChain(2)
	if snapshot[6] != 1 {
		t.Fatalf("snapshot changed along with the original")
	}
}
