package sphincsplus

import (
	"crypto/sha256"
	"hash"
	"reflect"
)

// SPHINCS+ instance.
// Create one using NewContextFromName or NewContext.
type Context struct {
	// Number of worker goroutines ("threads") to use for generating the
	// leaves of a tree.  Will guess an appropriate number if set to 0.
	Threads int

	p            Params  // parameters.
	wotsLogW     uint8   // logarithm of the Winternitz parameter
	wotsLen1     uint32  // WOTS+ chains for message
	wotsLen2     uint32  // WOTS+ chains for checksum
	wotsLen      uint32  // total number of WOTS+ chains
	wotsSigBytes uint32  // length of WOTS+ signature
	treeHeight   uint32  // height h' of a subtree
	forsLeaves   uint32  // leaves t of a FORS tree
	forsSigBytes uint32  // length of FORS signature
	stSigBytes   uint32  // length of the signature of a single subtree
	digestBytes  uint32  // length of the message digest
	sigBytes     uint32  // size of signature
	pkBytes      uint32  // size of public key
	skBytes      uint32  // size of secret key
	name         *string // name of instance
}

// Return new context for the given SPHINCS+ instance name, eg. "128f" or
// "SPHINCS+-SHAKE-256s-robust".
func NewContextFromName(name string) (*Context, Error) {
	entry, ok := registryNameLut[name]
	if !ok {
		return nil, errorf(ErrParameter, "unknown instance %q", name)
	}
	ctx, err := NewContext(entry.params)
	if err != nil {
		return nil, err
	}
	ctx.name = &entry.name
	return ctx, nil
}

// Creates a new context.
func NewContext(params Params) (ctx *Context, err Error) {
	if err2 := params.Validate(); err2 != nil {
		return nil, wrapErrorf(err2, ErrParameter, "invalid parameters")
	}

	ctx = new(Context)
	ctx.p = params
	ctx.wotsLogW = params.WotsLogW()
	ctx.wotsLen1 = params.WotsLen1()
	ctx.wotsLen2 = params.WotsLen2()
	ctx.wotsLen = params.WotsLen()
	ctx.wotsSigBytes = params.WotsSignatureSize()
	ctx.treeHeight = params.TreeHeight()
	ctx.forsLeaves = params.ForsLeaves()
	ctx.forsSigBytes = params.ForsSignatureSize()
	ctx.stSigBytes = params.SubTreeSignatureSize()
	ctx.digestBytes = params.DigestSize()
	ctx.sigBytes = params.SignatureSize()
	ctx.pkBytes = params.PublicKeySize()
	ctx.skBytes = params.PrivateKeySize()
	for _, entry := range registry {
		if reflect.DeepEqual(entry.params, params) {
			name := entry.name
			ctx.name = &name
			break
		}
	}
	return
}

// Returns the name of the SPHINCS+ instance and an empty string if it has
// no name.
func (ctx *Context) Name() string {
	if ctx.name != nil {
		return *ctx.name
	}
	return ""
}

// Get parameters of the SPHINCS+ instance
func (ctx *Context) Params() Params {
	return ctx.p
}

// Returns the size of signatures of this SPHINCS+ instance
func (ctx *Context) SignatureSize() uint32 {
	return ctx.sigBytes
}

// Returns the size of public keys of this SPHINCS+ instance
func (ctx *Context) PublicKeySize() uint32 {
	return ctx.pkBytes
}

// Returns the size of private keys of this SPHINCS+ instance
func (ctx *Context) PrivateKeySize() uint32 {
	return ctx.skBytes
}

// A scratchpad used by a single goroutine to avoid memory allocation.
type scratchPad struct {
	buf []byte
	n   uint32

	h256 hash.Hash // nil for SHAKE
	sum  []byte
}

// Buffer for the input of the tweakable hash:
// seed, address and the longest value that is hashed in one go.
func (pad scratchPad) thashBuf() []byte {
	return pad.buf[:pad.n+addressSize+pad.maxValueLen()]
}

// Buffer for the bitmask of the robust tweakable hash.
func (pad scratchPad) maskBuf() []byte {
	off := pad.n + addressSize + pad.maxValueLen()
	return pad.buf[off : off+pad.maxValueLen()]
}

// Buffer for the input of the mask generation function: seed,
// address and a counter.
func (pad scratchPad) maskInBuf() []byte {
	off := pad.n + addressSize + 2*pad.maxValueLen()
	return pad.buf[off : off+pad.n+addressSize+4]
}

// Buffer for the WOTS+ chains, the FORS roots or a pair of nodes.
func (pad scratchPad) wotsBuf() []byte {
	off := 2*pad.n + 2*addressSize + 4 + 2*pad.maxValueLen()
	return pad.buf[off : off+pad.maxValueLen()]
}

func (pad scratchPad) maxValueLen() uint32 {
	return uint32(len(pad.buf)-2*int(pad.n)-2*addressSize-4) / 3
}

func (ctx *Context) newScratchPad() scratchPad {
	n := ctx.p.N
	maxValueLen := ctx.wotsLen * n
	if ctx.p.K*n > maxValueLen {
		maxValueLen = ctx.p.K * n
	}
	pad := scratchPad{
		buf: make([]byte, 2*n+2*addressSize+4+3*maxValueLen),
		n:   n,
	}
	if ctx.p.Func == SHA2 {
		pad.h256 = sha256.New()
		pad.sum = make([]byte, 0, sha256.Size)
	}
	return pad
}
