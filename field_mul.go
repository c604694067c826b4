package x25519batch

// mul computes r = a*b mod p* as a batched radix-2^29 schoolbook product. It
// proceeds in three stages following the familiar product-scan-then-reduce
// shape used by other constant-time field implementations:
//
//  1. accumulate the 17 raw column sums of the 9x9 partial-product grid —
//     each column fits comfortably in a uint64 lane even before any carry
//     propagation;
//  2. one forward carry sweep brings every column down to a 29-bit limb,
//     leaving a small carry-out past column 16;
//  3. the eight limbs above position 8 (plus that carry-out) are folded
//     back into limbs 0..8 scaled by constC, then carryPropagateAndFold
//     finishes the reduction exactly as it does after sub.
//
// Both inputs must be reduced; the result is reduced.
func mul(a, b *Field) Field {
	a.assertAtMost(stateReduced)
	b.assertAtMost(stateReduced)

	var col [17]Vec
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			col[i+j] = col[i+j].mac32(a.n[i], b.n[j])
		}
	}

	var d [17]Vec
	var carry Vec
	for i := 0; i < 17; i++ {
		t := col[i].add(carry)
		d[i] = t.and(vecBroadcast(mask29))
		carry = t.shr(limbBits)
	}
	// carry here is the spill past column 16 (≤ roughly 2^29 in practice,
	// since column 16 itself holds only the single a[8]*b[8] term).

	var r Field
	for k := 0; k < 8; k++ {
		r.n[k] = d[k].add(vecBroadcast(constC).mul32(d[9+k]))
	}
	r.n[8] = d[8].add(vecBroadcast(constC).mul32(carry))

	carryPropagateAndFold(&r)
	return r
}

// sqr computes r = a*a. It calls mul(a,a) directly rather than carrying a
// separate squaring fast path; correctness is identical to mul, and a
// dedicated squaring path would only save constant factors.
func sqr(a *Field) Field {
	return mul(a, a)
}

// mul29 computes r = a*scalar for a small non-secret scalar (a curve
// constant such as the Montgomery a24 coefficient), batched across lanes. scalar is the same for every lane and
// every user — it is a public curve parameter, never secret data.
func mul29(a *Field, scalar uint32) Field {
	a.assertAtMost(stateReduced)
	var r Field
	s := vecBroadcast(uint64(scalar))
	for i := 0; i < 9; i++ {
		r.n[i] = a.n[i].mul32(s)
	}
	carryPropagateAndFold(&r)
	return r
}

// inv computes r = a^(p-2) mod p = a^-1 mod p via the fixed fermat addition
// chain: 254 squarings and 11 multiplications, the same chain used
// throughout the curve25519/ed25519 ecosystem. The chain's shape depends
// only on the public exponent p-2, never on the secret value being
// inverted, so it is constant-time by construction — no conditional branch
// or data-dependent loop bound appears anywhere in it.
func inv(a *Field) Field {
	a.assertAtMost(stateReduced)

	z2 := sqr(a)    // z^2
	t1 := sqr(&z2)  // z^4
	t1 = sqr(&t1)   // z^8
	z9 := mul(a, &t1)  // z^9
	z11 := mul(&z2, &z9) // z^11
	t1 = sqr(&z11)        // z^22
	z2_5_0 := mul(&t1, &z9) // z^(2^5-1) = z^31

	t1 = sqr(&z2_5_0)
	for i := 1; i < 5; i++ {
		t1 = sqr(&t1)
	}
	z2_10_0 := mul(&t1, &z2_5_0) // z^(2^10-1)

	t1 = sqr(&z2_10_0)
	for i := 1; i < 10; i++ {
		t1 = sqr(&t1)
	}
	z2_20_0 := mul(&t1, &z2_10_0) // z^(2^20-1)

	t2 := sqr(&z2_20_0)
	for i := 1; i < 20; i++ {
		t2 = sqr(&t2)
	}
	t1 = mul(&t2, &z2_20_0) // z^(2^40-1)

	t1 = sqr(&t1)
	for i := 1; i < 10; i++ {
		t1 = sqr(&t1)
	}
	z2_50_0 := mul(&t1, &z2_10_0) // z^(2^50-1)

	t1 = sqr(&z2_50_0)
	for i := 1; i < 50; i++ {
		t1 = sqr(&t1)
	}
	z2_100_0 := mul(&t1, &z2_50_0) // z^(2^100-1)

	t2 = sqr(&z2_100_0)
	for i := 1; i < 100; i++ {
		t2 = sqr(&t2)
	}
	t1 = mul(&t2, &z2_100_0) // z^(2^200-1)

	t1 = sqr(&t1)
	for i := 1; i < 50; i++ {
		t1 = sqr(&t1)
	}
	t1 = mul(&t1, &z2_50_0) // z^(2^250-1)

	t1 = sqr(&t1)
	for i := 1; i < 5; i++ {
		t1 = sqr(&t1)
	}
	return mul(&t1, &z11) // z^(2^255-21) = z^(p-2)
}
