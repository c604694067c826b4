package x25519batch

// a24 is (486662-2)/4, the Montgomery curve constant used in the ladder
// step's z2' update.
const a24 = 121665

// ladderStep performs one differential addition-and-doubling step of the
// Montgomery ladder (RFC 7748 §5 pseudocode), advancing (x2:z2) = 2*Qn and
// (x3:z3) = Qn + Q(n+1) by one bit, where x1 is the fixed affine
// u-coordinate of the base point and Qn, Q(n+1) differ by that base point.
func ladderStep(x1 *Field, x2, z2, x3, z3 *Field) (nx2, nz2, nx3, nz3 Field) {
	A := addReduced(x2, z2)
	AA := sqr(&A)
	B := sbc(x2, z2)
	BB := sqr(&B)
	E := sbc(&AA, &BB)
	C := addReduced(x3, z3)
	D := sbc(x3, z3)
	DA := mul(&D, &A)
	CB := mul(&C, &B)

	sum := addReduced(&DA, &CB)
	nx3 = sqr(&sum)
	diff := sbc(&DA, &CB)
	diffSq := sqr(&diff)
	nz3 = mul(x1, &diffSq)

	nx2 = mul(&AA, &BB)
	aE := mul29(&E, a24)
	inner := addReduced(&AA, &aE)
	nz2 = mul(&E, &inner)
	return
}

// scalarBitVec extracts bit i (0 = least significant) of each of the four
// users' 32-byte scalars into a per-lane 0/1 Vec.
func scalarBitVec(ks *[4][32]byte, i int) Vec {
	byteIdx := i / 8
	bitIdx := uint(i % 8)
	var v Vec
	for u := 0; u < 4; u++ {
		bit := (ks[u][byteIdx] >> bitIdx) & 1
		v = v.setLane(u, uint32(bit))
	}
	return v
}

// ladderMulVarBase computes, for each of the four lanes independently, the
// Montgomery u-coordinate of scalar_u * P_u where P_u's u-coordinate is the
// lane of x1, and scalar_u is the RFC 7748-clamped scalar packed in ks[u].
// This is the variable-base scalar multiplication behind the shared-secret
// computation (peer public key as base point); key generation uses the
// fixed-base Edwards path (scalarMulFixedBase) instead.
func ladderMulVarBase(ks *[4][32]byte, x1 *Field) Field {
	x2 := fieldBroadcastInt(1)
	z2 := fieldZero()
	x3 := *x1
	z3 := fieldBroadcastInt(1)

	swap := vecZero()
	for i := 254; i >= 0; i-- {
		kt := scalarBitVec(ks, i)
		swap = swap.xor(kt)
		cswap(&x2, &x3, swap)
		cswap(&z2, &z3, swap)
		swap = kt

		x2, z2, x3, z3 = ladderStep(x1, &x2, &z2, &x3, &z3)
	}
	cswap(&x2, &x3, swap)
	cswap(&z2, &z3, swap)

	zinv := inv(&z2)
	return mul(&x2, &zinv)
}
