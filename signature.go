package depot

import "github.com/TheBitDrifter/mask"

// signatureBits is the number of stores addressable by a mask.Mask. Stores
// created past it still work but their queries bypass the match cache.
const signatureBits = 256

// signature identifies a resolved query by the bits of the stores it reads.
type signature struct {
	with    mask.Mask
	without mask.Mask
}

// signatureOf reports false for queries whose results cannot be cached: no
// inclusion terms (the result tracks entity creation), a missing store (the
// result changes when the store appears) or a store past signatureBits.
func signatureOf(with, without []*ComponentStore) (signature, bool) {
	var sig signature
	if len(with) == 0 {
		return sig, false
	}
	for _, s := range with {
		if s == nil || s.bit >= signatureBits {
			return sig, false
		}
		sig.with.Mark(s.bit)
	}
	for _, s := range without {
		if s == nil || s.bit >= signatureBits {
			return sig, false
		}
		sig.without.Mark(s.bit)
	}
	return sig, true
}

func (s signature) touches(changed mask.Mask) bool {
	return changed.ContainsAny(s.with) || changed.ContainsAny(s.without)
}
