package sphincsplus

import (
	"fmt"
	"math/bits"

	"github.com/hashicorp/go-multierror"
)

type HashFunc uint8

const (
	SHA2  HashFunc = 0
	SHAKE HashFunc = 1
)

func (f HashFunc) String() string {
	switch f {
	case SHA2:
		return "SHA2"
	case SHAKE:
		return "SHAKE"
	}
	return fmt.Sprintf("HashFunc(%d)", uint8(f))
}

// Parameters of a SPHINCS+ instance
type Params struct {
	Func       HashFunc // which hash function to use
	N          uint32   // security parameter: length of hashes in bytes
	FullHeight uint32   // full height h of the hypertree
	D          uint32   // number of layers of the hypertree
	K          uint32   // number of FORS trees
	A          uint32   // height of a FORS tree

	// WOTS+ Winternitz parameter.  Only 16 is supported.
	WotsW uint16

	// Mask the inputs of the tweakable hash with bitmasks derived from
	// the public seed.  Otherwise the "simple" tweakable hash is used.
	Robust bool
}

// Entry in the registry of instances
type regEntry struct {
	name   string // name, eg. SPHINCS+-SHA2-128f-simple
	params Params // parameters of the instance
}

// The six security levels.  w=16 throughout.
var levels = []struct {
	token         string
	n, h, d, k, a uint32
}{
	{"128s", 16, 63, 7, 10, 14},
	{"128f", 16, 66, 22, 33, 9},
	{"192s", 24, 63, 7, 14, 15},
	{"192f", 24, 66, 22, 31, 11},
	{"256s", 32, 64, 8, 17, 15},
	{"256f", 32, 68, 17, 35, 12},
}

// Registry of named SPHINCS+ instances
var registry []regEntry

var registryNameLut map[string]regEntry

// Initializes instance lookup tables.
func init() {
	registryNameLut = make(map[string]regEntry)

	// The short tokens, eg. 128f, denote the SHA2 simple instances.
	for _, l := range levels {
		registry = append(registry, regEntry{
			l.token, Params{SHA2, l.n, l.h, l.d, l.k, l.a, 16, false}})
	}

	for _, f := range []HashFunc{SHA2, SHAKE} {
		for _, robust := range []bool{false, true} {
			variant := "simple"
			if robust {
				variant = "robust"
			}
			for _, l := range levels {
				registry = append(registry, regEntry{
					fmt.Sprintf("SPHINCS+-%s-%s-%s", f, l.token, variant),
					Params{f, l.n, l.h, l.d, l.k, l.a, 16, robust}})
			}
		}
	}

	for _, entry := range registry {
		registryNameLut[entry.name] = entry
	}
}

// Returns parameters for the named SPHINCS+ instance (and nil if there is no
// such instance).
func ParamsFromName(name string) *Params {
	entry, ok := registryNameLut[name]
	if ok {
		return &entry.params
	} else {
		return nil
	}
}

// List all named SPHINCS+ instances
func ListNames() (names []string) {
	names = make([]string, len(registry))
	for i, entry := range registry {
		names[i] = entry.name
	}
	return
}

// Checks whether the parameters describe a supported instance.  Returns
// all problems found at once.
func (params *Params) Validate() error {
	var result *multierror.Error

	if params.Func != SHA2 && params.Func != SHAKE {
		result = multierror.Append(result,
			fmt.Errorf("unknown hash function %s", params.Func))
	}
	if params.N != 16 && params.N != 24 && params.N != 32 {
		result = multierror.Append(result,
			fmt.Errorf("N=%d is not one of 16, 24, 32", params.N))
	}
	if params.WotsW != 16 {
		result = multierror.Append(result,
			fmt.Errorf("only WotsW=16 is supported, not %d", params.WotsW))
	}
	if params.D == 0 {
		result = multierror.Append(result, fmt.Errorf("D must be positive"))
	} else {
		if params.FullHeight%params.D != 0 {
			result = multierror.Append(result, fmt.Errorf(
				"D=%d does not divide FullHeight=%d",
				params.D, params.FullHeight))
		} else {
			treeHeight := params.FullHeight / params.D
			if treeHeight == 0 || treeHeight > 20 {
				result = multierror.Append(result, fmt.Errorf(
					"subtree height %d is not in 1..20", treeHeight))
			}
			if params.FullHeight-treeHeight > 64 {
				result = multierror.Append(result, fmt.Errorf(
					"tree index of %d bits does not fit 64 bits",
					params.FullHeight-treeHeight))
			}
		}
	}
	if params.K == 0 {
		result = multierror.Append(result, fmt.Errorf("K must be positive"))
	}
	if params.A == 0 || params.A > 24 {
		result = multierror.Append(result,
			fmt.Errorf("FORS height A=%d is not in 1..24", params.A))
	} else if uint64(params.K)<<params.A > 1<<32 {
		result = multierror.Append(result, fmt.Errorf(
			"K*2^A=%d FORS leaves do not fit 32 bits",
			uint64(params.K)<<params.A))
	}

	return result.ErrorOrNil()
}

// Returns the 2log of the Winternitz parameter
func (params *Params) WotsLogW() uint8 {
	return uint8(bits.Len16(params.WotsW) - 1)
}

// Returns the number of main WOTS+ chains
func (params *Params) WotsLen1() uint32 {
	logW := uint32(params.WotsLogW())
	return (8*params.N + logW - 1) / logW
}

// Returns the number of WOTS+ checksum chains
func (params *Params) WotsLen2() uint32 {
	// floor(log2(len1 * (w - 1)) / log2(w)) + 1
	maxCsum := params.WotsLen1() * (uint32(params.WotsW) - 1)
	log2Csum := uint32(bits.Len32(maxCsum) - 1)
	return log2Csum/uint32(params.WotsLogW()) + 1
}

// Returns the total number of WOTS+ chains
func (params *Params) WotsLen() uint32 {
	return params.WotsLen1() + params.WotsLen2()
}

// Returns the size of a WOTS+ signature
func (params *Params) WotsSignatureSize() uint32 {
	return params.WotsLen() * params.N
}

// Returns the height h' of a single XMSS subtree
func (params *Params) TreeHeight() uint32 {
	return params.FullHeight / params.D
}

// Returns the number of leaves t of a FORS tree
func (params *Params) ForsLeaves() uint32 {
	return 1 << params.A
}

// Returns the size of a FORS signature
func (params *Params) ForsSignatureSize() uint32 {
	return params.K * (params.A + 1) * params.N
}

// Returns the size of the signature made by a single XMSS subtree
func (params *Params) SubTreeSignatureSize() uint32 {
	return params.WotsSignatureSize() + params.TreeHeight()*params.N
}

// Returns the size of the message digest from which the FORS message and
// the hypertree indices are taken.
func (params *Params) DigestSize() uint32 {
	return (params.K*params.A + params.FullHeight + 7) / 8
}

// Returns the size of a signature
func (params *Params) SignatureSize() uint32 {
	return params.N + params.ForsSignatureSize() +
		params.D*params.SubTreeSignatureSize()
}

// Returns the size of a public key
func (params *Params) PublicKeySize() uint32 {
	return 2 * params.N
}

// Returns the size of a private key
func (params *Params) PrivateKeySize() uint32 {
	return 4 * params.N
}
