package sphincsplus

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
)

func testSizes(name string, wotsLen, treeHeight, digest, sig uint32,
	t *testing.T) {
	ctx, err := NewContextFromName(name)
	if err != nil {
		t.Fatalf("NewContextFromName(%s): %v", name, err)
	}
	if ctx.wotsLen != wotsLen {
		t.Errorf("%s: len is %d instead of %d", name, ctx.wotsLen, wotsLen)
	}
	if ctx.wotsLen2 != 3 {
		t.Errorf("%s: len2 is %d instead of 3", name, ctx.wotsLen2)
	}
	if ctx.treeHeight != treeHeight {
		t.Errorf("%s: h' is %d instead of %d", name, ctx.treeHeight, treeHeight)
	}
	if ctx.digestBytes != digest {
		t.Errorf("%s: digest size is %d instead of %d",
			name, ctx.digestBytes, digest)
	}
	if ctx.SignatureSize() != sig {
		t.Errorf("%s: signature size is %d instead of %d",
			name, ctx.SignatureSize(), sig)
	}
	if ctx.PublicKeySize() != 2*ctx.p.N || ctx.PrivateKeySize() != 4*ctx.p.N {
		t.Errorf("%s: wrong key sizes", name)
	}
	if ctx.Name() != name {
		t.Errorf("%s: Name() is %s", name, ctx.Name())
	}
}

func TestSizes(t *testing.T) {
	testSizes("128s", 35, 9, 26, 7344, t)
	testSizes("128f", 35, 3, 46, 18672, t)
	testSizes("192s", 51, 9, 35, 15480, t)
	testSizes("192f", 51, 3, 51, 37464, t)
	testSizes("256s", 67, 8, 40, 27936, t)
	testSizes("256f", 67, 4, 61, 53216, t)
	testSizes("SPHINCS+-SHAKE-256f-robust", 67, 4, 61, 53216, t)
}

func TestListNames(t *testing.T) {
	names := ListNames()
	if len(names) != 30 {
		t.Fatalf("ListNames() has %d entries instead of 30", len(names))
	}
	for _, name := range names {
		params := ParamsFromName(name)
		if params == nil {
			t.Fatalf("ParamsFromName(%s) is nil", name)
		}
		if err := params.Validate(); err != nil {
			t.Fatalf("%s: Validate(): %v", name, err)
		}
	}

	p := ParamsFromName("SPHINCS+-SHAKE-192s-robust")
	if p.Func != SHAKE || !p.Robust || p.N != 24 || p.K != 14 {
		t.Fatalf("SPHINCS+-SHAKE-192s-robust has wrong parameters %v", *p)
	}
}

func TestUnknownName(t *testing.T) {
	if ParamsFromName("128x") != nil {
		t.Fatalf("ParamsFromName(128x) is not nil")
	}
	_, err := NewContextFromName("128x")
	if err == nil || err.Kind() != ErrParameter {
		t.Fatalf("NewContextFromName(128x) did not fail properly: %v", err)
	}
}

func TestInvalidParams(t *testing.T) {
	params := *ParamsFromName("128f")
	params.D = 5 // does not divide 66
	_, err := NewContext(params)
	if err == nil || !IsKind(err, ErrParameter) {
		t.Fatalf("NewContext() with d=5, h=66 did not fail properly: %v", err)
	}

	params = Params{Func: HashFunc(7), N: 20, FullHeight: 4, D: 2,
		K: 1, A: 30, WotsW: 4}
	err2 := params.Validate()
	var merr *multierror.Error
	if !errors.As(err2, &merr) {
		t.Fatalf("Validate() did not return a multierror: %v", err2)
	}
	if len(merr.Errors) != 4 {
		t.Fatalf("Validate() found %d problems instead of 4: %v",
			len(merr.Errors), err2)
	}
}

func TestNameOfCustomParams(t *testing.T) {
	ctx, err := NewContext(Params{Func: SHA2, N: 16, FullHeight: 4, D: 2,
		K: 4, A: 3, WotsW: 16})
	if err != nil {
		t.Fatalf("NewContext(): %v", err)
	}
	if ctx.Name() != "" {
		t.Fatalf("custom instance has name %s", ctx.Name())
	}

	ctx, _ = NewContext(*ParamsFromName("SPHINCS+-SHA2-128f-simple"))
	if ctx.Name() != "128f" {
		t.Fatalf("Name() is %s instead of 128f", ctx.Name())
	}
}
