package x25519batch

// bytesToLimbs decodes a 32-byte little-endian u-coordinate (or scalar) into
// nine 29-bit limbs, clearing bit 255 the same way RFC 7748's
// decodeUCoordinate does for the curve25519 byte length. Bit extraction uses
// only shifts and masks, never a branch on the bit value, so decoding a
// secret scalar or secret coordinate leaks nothing through control flow.
func bytesToLimbs(b *[32]byte) [9]uint32 {
	v := *b
	v[31] &= 0x7f

	var limbs [9]uint32
	bitPos := 0
	for i := 0; i < 9; i++ {
		limbs[i] = extractBits(v[:], bitPos, limbBits)
		bitPos += limbBits
	}
	return limbs
}

// limbsToBytes is the inverse of bytesToLimbs: it packs nine limbs (the
// top limb holding at most 23 significant bits once the value has been
// through finalReduceStrict) back into a 32-byte little-endian buffer.
func limbsToBytes(limbs [9]uint32) [32]byte {
	var v [32]byte
	bitPos := 0
	for i := 0; i < 9; i++ {
		setBits(v[:], bitPos, limbBits, limbs[i])
		bitPos += limbBits
	}
	return v
}

// extractBits reads nbits bits starting at bitPos out of the little-endian
// byte slice v, treating any bit past the end of v as zero.
func extractBits(v []byte, bitPos, nbits int) uint32 {
	var result uint32
	for i := 0; i < nbits; i++ {
		bit := bitPos + i
		byteIdx := bit / 8
		var b byte
		if byteIdx < len(v) {
			b = v[byteIdx]
		}
		bitVal := (b >> uint(bit%8)) & 1
		result |= uint32(bitVal) << uint(i)
	}
	return result
}

// setBits ORs the low nbits bits of value into v starting at bit offset
// bitPos. Bits that would land past the end of v are silently dropped —
// limbsToBytes writes nine 29-bit limbs (261 bits), so the top limb's bits
// for positions 256..260 are always dropped; after finalReduceStrict those
// bits are zero.
func setBits(v []byte, bitPos, nbits int, value uint32) {
	for i := 0; i < nbits; i++ {
		bit := bitPos + i
		byteIdx := bit / 8
		if byteIdx >= len(v) {
			continue
		}
		bitVal := (value >> uint(i)) & 1
		v[byteIdx] |= byte(bitVal << uint(bit%8))
	}
}

// packField decodes four users' 32-byte u-coordinates into a single batched
// Field, lane i of every limb holding user i's value.
func packField(b [4][32]byte) Field {
	var limbs [4][9]uint32
	for u := 0; u < 4; u++ {
		limbs[u] = bytesToLimbs(&b[u])
	}
	var f Field
	for i := 0; i < 9; i++ {
		var v Vec
		for u := 0; u < 4; u++ {
			v = v.setLane(u, limbs[u][i])
		}
		f.n[i] = v
	}
	f.state = stateReduced
	return f
}

// unpackField canonicalises a copy of f and splits it back into four users'
// 32-byte u-coordinates (mpi29_conv_29to32 generalised to four lanes). It
// does not mutate f.
func unpackField(f *Field) [4][32]byte {
	c := *f
	finalReduceStrict(&c)

	var out [4][32]byte
	for u := 0; u < 4; u++ {
		var limbs [9]uint32
		for i := 0; i < 9; i++ {
			limbs[i] = c.n[i].lane(u)
		}
		out[u] = limbsToBytes(limbs)
	}
	return out
}

// clampScalar applies the RFC 7748 §5 clamping transform to a 32-byte X25519
// private scalar in place: clear the low 3 bits (cofactor clearing), clear
// the top bit, set the second-highest bit. This must run before the bytes
// are ever decoded into limbs or fed to the ladder.
func clampScalar(k *[32]byte) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}
