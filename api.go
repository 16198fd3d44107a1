// Go implementation of the SPHINCS+ post-quantum stateless hash-based
// signature scheme.
package sphincsplus

// Contains majority of the API

import (
	"crypto/rand"
	"io"

	"github.com/cespare/xxhash"
)

// SPHINCS+ private key
type PrivateKey struct {
	ctx     *Context // context, which contains algorithm parameters.
	skSeed  []byte
	skPrf   []byte
	pubSeed []byte
	root    []byte // root node
}

// SPHINCS+ public key
type PublicKey struct {
	ctx     *Context // context which contains algorithm parameters
	pubSeed []byte
	root    []byte // root node
}

// Represents a SPHINCS+ signature
type Signature struct {
	ctx     *Context // context which contains algorithm parameter
	drv     []byte   // digest randomized value (R)
	forsSig []byte   // FORS signature of the message digest

	// The hypertree signature consists of several barebones XMSS
	// signatures.  sigs[0] signs the FORS public key, sigs[1] signs the
	// root of the subtree for sigs[0], ..., sigs[d-1] signs the root of the
	// subtree for sigs[d-2].
	sigs []subTreeSig
}

// Options for a single call to Sign.
type SignOpts struct {
	// Mix fresh randomness into the randomizer R.  If false, signing
	// is deterministic: the same message yields the same signature.
	Randomize bool

	// Source of randomness.  Uses crypto/rand if nil.
	Rand io.Reader
}

// Splits the message digest into the FORS message, the index of the
// subtree on the bottom layer and the leaf in that subtree.
func (ctx *Context) splitDigest(digest []byte) (
	md []byte, idxTree uint64, idxLeaf uint32) {
	r := bitReader{buf: digest}
	md = r.readBytes(ctx.p.K * ctx.p.A)
	idxTree = r.read(ctx.p.FullHeight - ctx.treeHeight)
	idxLeaf = uint32(r.read(ctx.treeHeight))
	return
}

// Returns the address of the FORS key pair that signs for the given leaf.
func forsAddress(idxTree uint64, idxLeaf uint32) address {
	sta := SubTreeAddress{Layer: 0, Tree: idxTree}
	addr := sta.address()
	addr.setType(ADDR_TYPE_FORS_TREE)
	addr.setKeyPair(idxLeaf)
	return addr
}

// Generates a SPHINCS+ public/private keypair using randomness from rng.
// Uses crypto/rand if rng is nil.
func (ctx *Context) GenerateKeyPair(rng io.Reader) (
	*PrivateKey, *PublicKey, Error) {
	if rng == nil {
		rng = rand.Reader
	}
	n := ctx.p.N
	seeds := make([]byte, 3*n)
	defer zeroBytes(seeds)
	if _, err := io.ReadFull(rng, seeds); err != nil {
		return nil, nil, wrapErrorf(err, ErrRandomness, "reading seeds")
	}
	return ctx.Derive(seeds[:n], seeds[n:2*n], seeds[2*n:])
}

// Derives a SPHINCS+ public/private keypair from the given seeds.
// pubSeed, skSeed and skPrf should be secret random ctx.p.N length byte
// slices.  The seeds are copied.
func (ctx *Context) Derive(pubSeed, skSeed, skPrf []byte) (
	*PrivateKey, *PublicKey, Error) {
	if len(pubSeed) != int(ctx.p.N) || len(skSeed) != int(ctx.p.N) ||
		len(skPrf) != int(ctx.p.N) {
		return nil, nil, errorf(ErrMalformedKey,
			"skPrf, skSeed and pubSeed should have length %d", ctx.p.N)
	}

	sk := PrivateKey{
		ctx:     ctx,
		skSeed:  append([]byte(nil), skSeed...),
		skPrf:   append([]byte(nil), skPrf...),
		pubSeed: append([]byte(nil), pubSeed...),
	}

	pad := ctx.newScratchPad()
	sk.root = ctx.htPkGen(pad, sk.skSeed, sk.pubSeed)

	pk := sk.PublicKey()
	log.Logf("%s: derived key pair %016x", ctx.Name(), pk.Fingerprint())
	return &sk, pk, nil
}

// Returns the public key that belongs to this private key.
func (sk *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{
		ctx:     sk.ctx,
		pubSeed: append([]byte(nil), sk.pubSeed...),
		root:    append([]byte(nil), sk.root...),
	}
}

// Signs the given message.  A nil opts is the same as
// &SignOpts{Randomize: true}.
func (sk *PrivateKey) Sign(msg []byte, opts *SignOpts) (*Signature, Error) {
	ctx := sk.ctx
	pad := ctx.newScratchPad()

	randomize := true
	var rng io.Reader = rand.Reader
	if opts != nil {
		randomize = opts.Randomize
		if opts.Rand != nil {
			rng = opts.Rand
		}
	}

	opt := make([]byte, ctx.p.N)
	defer zeroBytes(opt)
	if randomize {
		if _, err := io.ReadFull(rng, opt); err != nil {
			return nil, wrapErrorf(err, ErrRandomness, "reading randomizer")
		}
	}

	sig := Signature{
		ctx: ctx,
		drv: ctx.prfMsg(pad, sk.skPrf, opt, msg),
	}

	digest := ctx.hashMessage(sig.drv, sk.pubSeed, sk.root, msg,
		ctx.digestBytes)
	md, idxTree, idxLeaf := ctx.splitDigest(digest)
	forsAddr := forsAddress(idxTree, idxLeaf)

	sig.forsSig = ctx.forsSign(pad, md, sk.skSeed, sk.pubSeed, forsAddr)
	forsPk, err := ctx.forsPkFromSig(pad, sig.forsSig, md, sk.pubSeed, forsAddr)
	if err != nil {
		return nil, err
	}

	sig.sigs, err = ctx.htSign(pad, forsPk, sk.skSeed, sk.pubSeed,
		idxTree, idxLeaf)
	if err != nil {
		return nil, err
	}

	log.Logf("%s: signed with %016x at tree %d leaf %d",
		ctx.Name(), sk.PublicKey().Fingerprint(), idxTree, idxLeaf)
	return &sig, nil
}

// Overwrites the secret seeds of the private key with zeroes.
// The private key can not be used afterwards.
func (sk *PrivateKey) Erase() {
	zeroBytes(sk.skSeed)
	zeroBytes(sk.skPrf)
}

// Checks whether the lengths of all parts of sig are correct.
func (ctx *Context) checkSignature(sig *Signature) Error {
	if sig == nil {
		return errorf(ErrMalformedSignature, "missing signature")
	}
	if len(sig.drv) != int(ctx.p.N) {
		return errorf(ErrMalformedSignature,
			"randomizer has %d bytes instead of %d", len(sig.drv), ctx.p.N)
	}
	if len(sig.forsSig) != int(ctx.forsSigBytes) {
		return errorf(ErrMalformedSignature,
			"FORS signature has %d bytes instead of %d",
			len(sig.forsSig), ctx.forsSigBytes)
	}
	return ctx.checkHtSig(sig.sigs)
}

// Check whether the sig is a valid signature of this public key
// for the given message.
//
// A structurally valid signature that does not match returns false
// without an error.  A signature with parts of the wrong length is
// rejected with an ErrMalformedSignature error before any hashing.
func (pk *PublicKey) Verify(sig *Signature, msg []byte) (bool, Error) {
	ctx := pk.ctx
	if err := ctx.checkSignature(sig); err != nil {
		return false, err
	}

	pad := ctx.newScratchPad()
	digest := ctx.hashMessage(sig.drv, pk.pubSeed, pk.root, msg,
		ctx.digestBytes)
	md, idxTree, idxLeaf := ctx.splitDigest(digest)
	forsAddr := forsAddress(idxTree, idxLeaf)

	forsPk, err := ctx.forsPkFromSig(pad, sig.forsSig, md, pk.pubSeed, forsAddr)
	if err != nil {
		return false, err
	}

	ok, err := ctx.htVerify(pad, forsPk, sig.sigs, pk.pubSeed,
		idxTree, idxLeaf, pk.root)
	if err != nil {
		return false, err
	}
	log.Logf("%s: verified with %016x at tree %d leaf %d: %v",
		ctx.Name(), pk.Fingerprint(), idxTree, idxLeaf, ok)
	return ok, nil
}

// Like Verify, but for a signature in the format of
// Signature.MarshalBinary.
func (pk *PublicKey) VerifyBytes(sigBytes, msg []byte) (bool, Error) {
	sig, err := pk.ctx.SignatureFromBytes(sigBytes)
	if err != nil {
		return false, err
	}
	return pk.Verify(sig, msg)
}

// Returns a short non-cryptographic identifier of the public key,
// suitable for log messages.
func (pk *PublicKey) Fingerprint() uint64 {
	buf, _ := pk.MarshalBinary()
	return xxhash.Sum64(buf)
}

// Returns pubSeed || root.
// Will never return an error.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	ret := make([]byte, pk.ctx.pkBytes)
	copy(ret, pk.pubSeed)
	copy(ret[pk.ctx.p.N:], pk.root)
	return ret, nil
}

// Returns skSeed || skPrf || pubSeed || root.
// Will never return an error.
func (sk *PrivateKey) MarshalBinary() ([]byte, error) {
	n := sk.ctx.p.N
	ret := make([]byte, sk.ctx.skBytes)
	copy(ret, sk.skSeed)
	copy(ret[n:], sk.skPrf)
	copy(ret[2*n:], sk.pubSeed)
	copy(ret[3*n:], sk.root)
	return ret, nil
}

// Returns R, followed by the FORS signature and the signatures of the
// subtrees from the bottom layer up.
// Will never return an error.
func (sig *Signature) MarshalBinary() ([]byte, error) {
	ret := make([]byte, sig.ctx.sigBytes)
	copy(ret, sig.drv)
	copy(ret[sig.ctx.p.N:], sig.forsSig)
	stOff := sig.ctx.p.N + sig.ctx.forsSigBytes
	for i, stSig := range sig.sigs {
		copy(ret[stOff+uint32(i)*sig.ctx.stSigBytes:], stSig.wotsSig)
		copy(ret[stOff+uint32(i)*sig.ctx.stSigBytes+sig.ctx.wotsSigBytes:],
			stSig.authPath)
	}
	return ret, nil
}

// Parses a public key in the format of PublicKey.MarshalBinary.
func (ctx *Context) PublicKeyFromBytes(buf []byte) (*PublicKey, Error) {
	if len(buf) != int(ctx.pkBytes) {
		return nil, errorf(ErrMalformedKey,
			"public key has %d bytes instead of %d", len(buf), ctx.pkBytes)
	}
	n := ctx.p.N
	return &PublicKey{
		ctx:     ctx,
		pubSeed: append([]byte(nil), buf[:n]...),
		root:    append([]byte(nil), buf[n:]...),
	}, nil
}

// Parses a private key in the format of PrivateKey.MarshalBinary.
// The root is not recomputed.
func (ctx *Context) PrivateKeyFromBytes(buf []byte) (*PrivateKey, Error) {
	if len(buf) != int(ctx.skBytes) {
		return nil, errorf(ErrMalformedKey,
			"private key has %d bytes instead of %d", len(buf), ctx.skBytes)
	}
	n := ctx.p.N
	return &PrivateKey{
		ctx:     ctx,
		skSeed:  append([]byte(nil), buf[:n]...),
		skPrf:   append([]byte(nil), buf[n:2*n]...),
		pubSeed: append([]byte(nil), buf[2*n:3*n]...),
		root:    append([]byte(nil), buf[3*n:]...),
	}, nil
}

// Parses a signature in the format of Signature.MarshalBinary.
func (ctx *Context) SignatureFromBytes(buf []byte) (*Signature, Error) {
	if len(buf) != int(ctx.sigBytes) {
		return nil, errorf(ErrMalformedSignature,
			"signature has %d bytes instead of %d", len(buf), ctx.sigBytes)
	}
	n := ctx.p.N
	buf = append([]byte(nil), buf...)
	sig := Signature{
		ctx:     ctx,
		drv:     buf[:n],
		forsSig: buf[n : n+ctx.forsSigBytes],
		sigs:    make([]subTreeSig, ctx.p.D),
	}
	stOff := n + ctx.forsSigBytes
	for i := range sig.sigs {
		off := stOff + uint32(i)*ctx.stSigBytes
		sig.sigs[i] = subTreeSig{
			wotsSig:  buf[off : off+ctx.wotsSigBytes],
			authPath: buf[off+ctx.wotsSigBytes : off+ctx.stSigBytes],
		}
	}
	return &sig, nil
}

func (sk *PrivateKey) Context() *Context {
	return sk.ctx
}

func (pk *PublicKey) Context() *Context {
	return pk.ctx
}

func (sig *Signature) Context() *Context {
	return sig.ctx
}
