package x25519batch

import "unsafe"

// Keygen derives the X25519 public key for the given 32-byte private
// scalar. sk is clamped per RFC 7748 §5 before use; the caller's original
// bytes are never modified. Uses the fixed-base twisted-Edwards path
// since the base point never changes across calls.
func Keygen(sk [32]byte) (pk [32]byte, err error) {
	var batchSk, batchPk [4][32]byte
	batchSk[0] = sk
	batchPk, err = KeygenBatch(batchSk)
	if err != nil {
		return pk, err
	}
	pk = batchPk[0]
	return pk, nil
}

// SharedSecret computes the X25519 Diffie-Hellman shared secret between a
// local private scalar and a peer's public key, using the variable-base
// Montgomery ladder since the peer's point is not known ahead of time and
// so cannot be precomputed into a fixed-base table.
//
// The all-zero result RFC 7748 warns callers to reject is NOT checked here
// — this is left to the caller, exactly as RFC 7748 itself leaves it to the
// application. Use IsLowOrder to screen a peer public key before calling
// this, if that check matters for the caller's protocol.
func SharedSecret(sk [32]byte, peerPk [32]byte) (ss [32]byte, err error) {
	var batchSk, batchPk, batchSs [4][32]byte
	batchSk[0] = sk
	batchPk[0] = peerPk
	batchSs, err = SharedSecretBatch(batchSk, batchPk)
	if err != nil {
		return ss, err
	}
	ss = batchSs[0]
	return ss, nil
}

// KeygenBatch derives four independent X25519 public keys in a single
// batched call — the natural Go-facing entry point for the four-lane
// data-parallel design. Every lane's scalar is clamped independently; the
// four computations never observe each other's data.
func KeygenBatch(sks [4][32]byte) (pks [4][32]byte, err error) {
	clamped := sks
	for u := 0; u < 4; u++ {
		clampScalar(&clamped[u])
	}

	p := scalarMulFixedBase(&clamped)
	u := edwardsToMontgomeryU(&p)
	pks = unpackField(&u)

	memclear(unsafe.Pointer(&clamped), unsafe.Sizeof(clamped))
	return pks, nil
}

// SharedSecretBatch computes four independent X25519 shared secrets in a
// single batched call: lane u's result is clampedScalar(sks[u]) *
// peerPks[u] on the Montgomery curve.
func SharedSecretBatch(sks, peerPks [4][32]byte) (ss [4][32]byte, err error) {
	clamped := sks
	for u := 0; u < 4; u++ {
		clampScalar(&clamped[u])
	}

	x1 := packField(peerPks)
	result := ladderMulVarBase(&clamped, &x1)
	ss = unpackField(&result)

	memclear(unsafe.Pointer(&clamped), unsafe.Sizeof(clamped))
	return ss, nil
}

// lowOrderPoints lists the u-coordinates RFC 7748 §6.1 identifies as
// producing a shared secret of order dividing 8 (the curve's cofactor) or
// less — the all-zero output and its small-subgroup siblings. IsLowOrder
// lets a caller reject a peer public key that would force the shared
// secret into one of these degenerate values.
var lowOrderPoints = [][32]byte{
	{0}, // 0
	{1}, // 1
	{ // 325606250916557431795983626356110631294008115727848805560023387167927233504
		0xe0, 0xeb, 0x7a, 0x7c, 0x3b, 0x41, 0xb8, 0xae, 0x16, 0x56, 0xe3, 0xfa, 0xf1, 0x9f, 0xc4, 0x6a,
		0xda, 0x09, 0x8d, 0xeb, 0x9c, 0x32, 0xb1, 0xfd, 0x86, 0x62, 0x05, 0x16, 0x5f, 0x49, 0xb8, 0x00,
	},
	{ // 39382357235489614581723060781553021112529911719440698176882885853963445705823
		0x5f, 0x9c, 0x95, 0xbc, 0xa3, 0x50, 0x8c, 0x24, 0xb1, 0xd0, 0xb1, 0x55, 0x9c, 0x83, 0xef, 0x5b,
		0x04, 0x44, 0x5c, 0xc4, 0x58, 0x1c, 0x8e, 0x86, 0xd8, 0x22, 0x4e, 0xdd, 0xd0, 0x9f, 0x11, 0x57,
	},
	{ // p-1
		0xec, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f,
	},
	{ // p
		0xed, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f,
	},
	{ // p+1
		0xee, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f,
	},
}

// IsLowOrder reports whether pk (read mod p, i.e. after clearing bit 255)
// is one of the RFC 7748 §6.1 low-order u-coordinates. This check is
// variable-time and intended for input validation only, never for anything
// operating on secret data.
func IsLowOrder(pk [32]byte) bool {
	pk[31] &= 0x7f
	for _, bad := range lowOrderPoints {
		if pk == bad {
			return true
		}
	}
	return false
}
