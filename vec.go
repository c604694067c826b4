package x25519batch

// Vec is a 4-lane 64-bit unsigned vector. It is the portable stand-in for a
// single 256-bit SIMD register holding four independent 64-bit words, one
// per batched user. Every exported arithmetic op is lane-independent and
// constant-time with respect to the values it carries: no branch or memory
// access here is data-dependent.
//
// On a real AVX2/NEON target this type and the functions below are the only
// file that changes — the field and curve layers above are written purely
// in terms of the Vec contract and never assume a particular ISA. Correctness
// does not depend on actual hardware parallelism, only on each lane behaving
// independently of the other three.
type Vec [4]uint64

// mask32 isolates the low 32 bits of a lane.
const mask32 = 0xFFFFFFFF

// vecZero returns the all-zero vector.
func vecZero() Vec { return Vec{} }

// vecBroadcast returns a vector with x in every lane.
func vecBroadcast(x uint64) Vec {
	return Vec{x, x, x, x}
}

// add returns a+b, lane-wise, with no carry between lanes.
func (a Vec) add(b Vec) Vec {
	return Vec{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

// sub returns a-b, lane-wise, wrapping modulo 2^64 per lane. Field
// subtraction adds 2p* before subtracting (see field.go sub) so its limbs
// stay non-negative; mask construction (cswap, tableSelect) and the borrow
// chains in finalReduceStrict rely on the wraparound.
func (a Vec) sub(b Vec) Vec {
	return Vec{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

// mul32 multiplies the low 32 bits of each lane of a and b, zero-extending
// the result to 64 bits. The upper 32 bits of a and b are ignored.
func (a Vec) mul32(b Vec) Vec {
	return Vec{
		(a[0] & mask32) * (b[0] & mask32),
		(a[1] & mask32) * (b[1] & mask32),
		(a[2] & mask32) * (b[2] & mask32),
		(a[3] & mask32) * (b[3] & mask32),
	}
}

// mac32 returns z + mul32(x,y), lane-wise — a fused multiply-accumulate.
func (z Vec) mac32(x, y Vec) Vec {
	return z.add(x.mul32(y))
}

// shr returns a lane-wise logical right shift by a constant count.
func (a Vec) shr(n uint) Vec {
	return Vec{a[0] >> n, a[1] >> n, a[2] >> n, a[3] >> n}
}

// and returns the lane-wise bitwise AND of a and b.
func (a Vec) and(b Vec) Vec {
	return Vec{a[0] & b[0], a[1] & b[1], a[2] & b[2], a[3] & b[3]}
}

// or returns the lane-wise bitwise OR of a and b.
func (a Vec) or(b Vec) Vec {
	return Vec{a[0] | b[0], a[1] | b[1], a[2] | b[2], a[3] | b[3]}
}

// xor returns the lane-wise bitwise XOR of a and b.
func (a Vec) xor(b Vec) Vec {
	return Vec{a[0] ^ b[0], a[1] ^ b[1], a[2] ^ b[2], a[3] ^ b[3]}
}

// lane extracts the low 32 bits of lane i as a plain scalar. Used only at
// the serialisation boundary where per-user byte buffers are packed into
// and out of lanes; never in the constant-time core.
func (a Vec) lane(i int) uint32 {
	return uint32(a[i])
}

// setLane returns a copy of a with lane i's low 32 bits replaced by v and
// the upper 32 bits cleared. Used where per-user data is packed into lanes:
// field serialisation and the per-lane scalar bit and nibble extraction.
func (a Vec) setLane(i int, v uint32) Vec {
	a[i] = uint64(v)
	return a
}

// absByteLane computes, per lane, the absolute value of the lane's low byte
// interpreted as a signed 8-bit integer, zero-extended to 64 bits. This is
// the primitive the table query (edwards_table.go) uses to turn a signed
// nibble into a magnitude without branching on its sign.
func (a Vec) absByteLane() Vec {
	var r Vec
	for i := 0; i < 4; i++ {
		b := int8(a[i])
		m := b >> 7 // all-ones if negative, all-zeros otherwise
		abs := (b ^ m) - m
		r[i] = uint64(uint8(abs))
	}
	return r
}

// signMask returns, per lane, all-ones if the lane's low byte is negative
// when read as a signed 8-bit integer, all-zeros otherwise. Used to turn a
// signed recoded digit into a constant-time conditional-negate mask.
func (a Vec) signMask() Vec {
	var r Vec
	for i := 0; i < 4; i++ {
		b := int8(a[i])
		r[i] = uint64(b >> 7)
	}
	return r
}

// eqZeroMask returns, per lane, all-ones if the lane is zero and all-zeros
// otherwise — the constant-time building block for masks used throughout
// the table query and conditional-swap logic.
func (a Vec) eqZeroMask() Vec {
	var r Vec
	for i := 0; i < 4; i++ {
		// ((x | -x) >> 63) is 0 iff x == 0, 1 otherwise (two's complement).
		x := a[i]
		nz := (x | (-x)) >> 63
		r[i] = nz - 1
	}
	return r
}
