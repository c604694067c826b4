package x25519batch

// Field implements radix-2^29 arithmetic over the auxiliary prime
// p* = 64*(2^255-19) = 2^261-1216, batched four independent field elements
// wide. Limb i of lanes 0..3 holds the i-th 29-bit limb of user 0..3's
// field element, so a single Field value represents four users' worth of
// arithmetic advancing in lock-step.
//
// Working mod p* instead of mod p avoids a fractional top-limb alignment:
// 9*29 = 261 bits is an exact multiple of the limb size, and 2^261 ≡ 1216
// (mod p*) gives a single small wraparound constant (constC) everywhere a
// top limb needs folding back into the low limb. The true modulus
// p = 2^255-19 only reappears at the canonical boundary (finalReduce).
type Field struct {
	n [9]Vec

	// state documents the invariant this value currently satisfies. It is
	// bookkeeping only — production code never branches on it — but each
	// operation below asserts its precondition so a misuse of the
	// reduced/loose/extra-loose contract panics instead of silently
	// producing a wrong answer, in the same spirit as magnitude/normalized
	// checks on other field element implementations.
	state fieldState
}

type fieldState uint8

const (
	stateCanonical fieldState = iota
	stateReduced
	stateLoose
	stateExtraLoose
)

const (
	limbBits = 29
	mask29   = (uint64(1) << limbBits) - 1

	// constC is the wraparound constant: 2^261 ≡ constC (mod p*).
	constC = 1216

	// lswp is the low limb of p* = 2^261-1216 in 9x29 limb form: every
	// other limb of p* is 2^29-1.
	lswp = (uint64(1) << limbBits) - constC

	p2Limb0    = 2 * lswp
	p2LimbHigh = 2 * mask29
)

// fieldZero returns the batched field element holding zero in all four lanes.
func fieldZero() Field {
	return Field{state: stateReduced}
}

// fieldBroadcastInt returns the batched field element holding the small
// unsigned constant v (< 2^29) in all four lanes of every user.
func fieldBroadcastInt(v uint32) Field {
	var f Field
	f.n[0] = vecBroadcast(uint64(v))
	f.state = stateReduced
	return f
}

// assertAtMost panics if f is not at least as reduced as want.
func (f *Field) assertAtMost(want fieldState) {
	if f.state > want {
		panic("field element not sufficiently reduced for this operation")
	}
}

// clear zeroes a field element, used when callers want to scrub a secret
// intermediate before it goes out of scope.
func (r *Field) clear() {
	for i := range r.n {
		r.n[i] = Vec{}
	}
	r.state = stateReduced
}

// cswap conditionally swaps r and a, independently per lane, according to
// the per-lane 0/1 flag carried in b. mask is all-ones on lanes where the
// flag is 1 and all-zeros where it is 0; every limb is swapped through an
// XOR-mask so there is no data-dependent branch.
func cswap(r, a *Field, b Vec) {
	mask := vecZero().sub(b)
	for i := 0; i < 9; i++ {
		x := r.n[i].xor(a.n[i]).and(mask)
		r.n[i] = r.n[i].xor(x)
		a.n[i] = a.n[i].xor(x)
	}
}

// neg computes 0 - a, i.e. the additive inverse of a mod p*.
func neg(a *Field) Field {
	z := fieldZero()
	return sbc(&z, a)
}

// cmov overwrites r with a, per lane, wherever mask is all-ones; lanes where
// mask is all-zeros are left untouched. This is the non-swapping sibling of
// cswap, used by the table lookup to accumulate a constant-time selection
// from a run of candidate values.
func cmov(r, a *Field, mask Vec) {
	for i := 0; i < 9; i++ {
		x := r.n[i].xor(a.n[i]).and(mask)
		r.n[i] = r.n[i].xor(x)
	}
}

// selectField returns a copy of whenFalse with whenTrue's limbs substituted in,
// per lane, wherever mask is all-ones.
func selectField(whenFalse, whenTrue *Field, mask Vec) Field {
	r := *whenFalse
	cmov(&r, whenTrue, mask)
	return r
}

// add computes r = a+b lane-wise with no reduction. The result is loose:
// every output limb is the sum of two input limbs, so callers must not
// chain enough adds to run past the 64-bit lane headroom before the next
// sbc/mul/sqr.
func add(a, b *Field) Field {
	var r Field
	for i := 0; i < 9; i++ {
		r.n[i] = a.n[i].add(b.n[i])
	}
	r.state = stateLoose
	return r
}

// sub computes 2p* + a - b lane-wise, leaving a loose non-negative result.
// Both operands must be reduced (limbs ≤ 2^29-1) coming in — the fixed
// headroom of exactly 2p* only covers that case.
func sub(a, b *Field) Field {
	a.assertAtMost(stateReduced)
	b.assertAtMost(stateReduced)
	var r Field
	r.n[0] = a.n[0].add(vecBroadcast(p2Limb0)).sub(b.n[0])
	for i := 1; i < 9; i++ {
		r.n[i] = a.n[i].add(vecBroadcast(p2LimbHigh)).sub(b.n[i])
	}
	r.state = stateLoose
	return r
}

// addReduced is add followed by the same carry-and-fold pass sbc applies
// after sub, so callers that need a reduced sum (almost everywhere in the
// curve layers above) don't have to remember to normalise it themselves.
func addReduced(a, b *Field) Field {
	r := add(a, b)
	carryPropagateAndFold(&r)
	return r
}

// sbc is sub followed by a single forward carry sweep and one constC fold
// of the top limb, leaving a reduced result safe to feed into mul/sqr.
func sbc(a, b *Field) Field {
	r := sub(a, b)
	carryPropagateAndFold(&r)
	return r
}

// carryPropagateAndFold runs one forward carry sweep over all nine limbs,
// masking each to 29 bits, then folds whatever spilled out of limb 8 back
// into limb 0 scaled by constC (2^(29*9) ≡ constC mod p*), with one more
// short ripple so the fold itself cannot leave limb 0 unmasked. It leaves
// f reduced.
func carryPropagateAndFold(f *Field) {
	var carry Vec
	for i := 0; i < 9; i++ {
		t := f.n[i].add(carry)
		f.n[i] = t.and(vecBroadcast(mask29))
		carry = t.shr(limbBits)
	}
	t := f.n[0].add(carry.mul32(vecBroadcast(constC)))
	f.n[0] = t.and(vecBroadcast(mask29))
	f.n[1] = f.n[1].add(t.shr(limbBits))
	f.state = stateReduced
}

// finalReduce folds a reduced Field (mod p*, value in [0, 2p*)) down to a
// canonical representative mod p = 2^255-19. Two passes of "take bits ≥23
// of limb 8, multiply by 19, fold into limb 0" suffice because the first
// pass can push at most one further bit above position 23 into limb 8.
//
// The output is left in [0, p+ε); a byte output that must be bit-exact
// RFC 7748 (strictly < p) additionally needs a constant-time conditional
// subtraction of p, which finalReduceStrict performs.
func finalReduce(f *Field) {
	f.assertAtMost(stateReduced)
	for pass := 0; pass < 2; pass++ {
		top := f.n[8].shr(23)
		f.n[8] = f.n[8].and(vecBroadcast((uint64(1)<<23)-1))
		carry := top.mul32(vecBroadcast(19))
		for i := 0; i < 9; i++ {
			t := f.n[i].add(carry)
			f.n[i] = t.and(vecBroadcast(mask29))
			carry = t.shr(limbBits)
		}
		// carry is folded back into limb 8 only (limb 8's extra headroom
		// above 23 bits absorbs it); the loop above already carried it
		// through limbs 0..8, so nothing further is needed per pass.
	}
	f.state = stateCanonical
}

// finalReduceStrict canonicalises f exactly as finalReduce, then performs a
// constant-time conditional subtraction of p so the result is strictly in
// [0, p). Needed only by callers serialising a bit-exact RFC 7748 byte
// string; the internal ladder/fixed-base paths never need it.
func finalReduceStrict(f *Field) {
	finalReduce(f)

	// p in 9x29-limb form: p = 2^255-19, top limb carries 255-29*8=23 bits.
	pLimbs := [9]uint64{
		(uint64(1) << limbBits) - 19, mask29, mask29, mask29, mask29,
		mask29, mask29, mask29, (uint64(1) << 23) - 1,
	}

	// ge = 1 in every lane where f >= p, else 0. Computed by a borrow chain
	// from the low limb up, constant-time and branch-free per lane.
	var borrow Vec
	for i := 0; i < 9; i++ {
		fi := f.n[i]
		pi := vecBroadcast(pLimbs[i])
		d := fi.sub(pi).sub(borrow)
		// borrow out is 1 if fi - pi - borrow underflowed bit 29.
		borrow = d.shr(limbBits).and(vecBroadcast(1))
	}
	notBorrow := borrow.xor(vecBroadcast(1))
	mask := vecZero().sub(notBorrow) // all-ones where f >= p

	var b Vec
	for i := 0; i < 9; i++ {
		pi := vecBroadcast(pLimbs[i]).and(mask)
		d := f.n[i].sub(pi).sub(b)
		b = d.shr(63) // underflow sign bit if this limb went negative
		f.n[i] = d.and(vecBroadcast(mask29))
	}
}
