package x25519batch

// ExtPoint is a point on the twisted Edwards curve -x^2+y^2 = 1+d*x^2*y^2
// (a=-1, the curve birationally equivalent to the Montgomery curve X25519
// operates on) in extended projective coordinates: affine x=X/Z, y=Y/Z,
// and X*Y=Z*T. This is the representation the fixed-base scalar
// multiplication below works in — it is faster than the Montgomery ladder for a
// known, fixed base point because it supports a precomputed table.
type ExtPoint struct {
	X, Y, Z, T Field
}

// edwardsD and edwardsD2 are the curve constant d and 2d, loaded once at
// init time from their standard little-endian byte representation and
// broadcast to all four lanes — they are public curve parameters, identical
// for every user in the batch.
var edwardsDBytes = [32]byte{
	0xa3, 0x78, 0x59, 0x13, 0xca, 0x4d, 0xeb, 0x75, 0xab, 0xd8, 0x41, 0x41,
	0x4d, 0x0a, 0x70, 0x00, 0x98, 0xe8, 0x79, 0x77, 0x79, 0x40, 0xc7, 0x8c,
	0x73, 0xfe, 0x6f, 0x2b, 0xee, 0x6c, 0x03, 0x52,
}

var edwardsD = broadcastFieldFromBytes(&edwardsDBytes)
var edwardsD2 = addReduced(&edwardsD, &edwardsD)

// broadcastFieldFromBytes decodes a single public 32-byte constant into a
// Field whose four lanes all hold the same value.
func broadcastFieldFromBytes(b *[32]byte) Field {
	limbs := bytesToLimbs(b)
	var f Field
	for i := 0; i < 9; i++ {
		f.n[i] = vecBroadcast(uint64(limbs[i]))
	}
	f.state = stateReduced
	return f
}

// extIdentity returns the neutral element (0,1,1,0).
func extIdentity() ExtPoint {
	return ExtPoint{X: fieldZero(), Y: fieldBroadcastInt(1), Z: fieldBroadcastInt(1), T: fieldZero()}
}

// double computes 2*p in extended coordinates, following the standard a=-1
// dedicated doubling formula (the same one the reference ed25519 group
// implementation splits into ge_p2_dbl + ge_p1p1_to_p3; see
// internal/edwards25519/edwards25519.go's ProjP1xP1/ProjP2 pairing in the
// retrieved reference pack for the same two-stage shape).
func double(p *ExtPoint) ExtPoint {
	A := sqr(&p.X)
	Bsq := sqr(&p.Y)
	Zsq := sqr(&p.Z)
	C := addReduced(&Zsq, &Zsq)
	t0 := addReduced(&p.X, &p.Y)
	M := sqr(&t0)
	H := addReduced(&Bsq, &A)
	J := sbc(&Bsq, &A)
	X1 := sbc(&M, &H)
	T1 := sbc(&C, &J)

	var r ExtPoint
	r.X = mul(&X1, &T1)
	r.Y = mul(&H, &J)
	r.Z = mul(&J, &T1)
	r.T = mul(&X1, &H)
	return r
}

// tableEntry is a precomputed point stored in affine cached (Duif) form,
// ready for the mixed addition formula below: yplusx = y+x, yminusx = y-x,
// xy2d = 2*d*x*y.
type tableEntry struct {
	yplusx, yminusx, xy2d Field
}

// cachedFromExt converts an extended point to its affine cached form. The
// point's Z need not be 1; cachedFromExt normalises it first. This is only
// ever run at table-build time (package initialisation), never on secret
// data, so the cost of the inversion it performs is immaterial.
func cachedFromExt(p *ExtPoint) tableEntry {
	zinv := inv(&p.Z)
	x := mul(&p.X, &zinv)
	y := mul(&p.Y, &zinv)
	xy := mul(&x, &y)
	return tableEntry{
		yplusx:  addReduced(&y, &x),
		yminusx: sbc(&y, &x),
		xy2d:    mul(&edwardsD2, &xy),
	}
}

// addCached adds a cached table entry t to the extended point p, using the
// standard mixed-addition formula for a=-1 twisted Edwards curves (ref10's
// ge_madd, collapsed directly into extended output instead of stopping at
// the p1xp1 intermediate).
func addCached(p *ExtPoint, t *tableEntry) ExtPoint {
	yPlusX := addReduced(&p.Y, &p.X)
	yMinusX := sbc(&p.Y, &p.X)
	pp := mul(&yPlusX, &t.yplusx)
	mm := mul(&yMinusX, &t.yminusx)
	tt2d := mul(&p.T, &t.xy2d)
	zz2 := addReduced(&p.Z, &p.Z)

	x1 := sbc(&pp, &mm)
	y1 := addReduced(&pp, &mm)
	z1 := addReduced(&zz2, &tt2d)
	t1 := sbc(&zz2, &tt2d)

	var r ExtPoint
	r.X = mul(&x1, &t1)
	r.Y = mul(&y1, &z1)
	r.Z = mul(&z1, &t1)
	r.T = mul(&x1, &y1)
	return r
}

// scalarToNibbles recodes a clamped 32-byte scalar into 64 signed nibbles in
// [-8,8], the standard balanced base-16 digit expansion used throughout the
// ed25519/curve25519 ecosystem for fixed-base scalar multiplication. Because
// the recoding depends only on the scalar's bits via fixed arithmetic (never
// a data-dependent branch), it runs in constant time with respect to the
// scalar's value.
func scalarToNibbles(k *[32]byte) [64]int8 {
	var e [64]int8
	for i := 0; i < 32; i++ {
		e[2*i] = int8(k[i] & 15)
		e[2*i+1] = int8((k[i] >> 4) & 15)
	}
	var carry int8
	for i := 0; i < 63; i++ {
		e[i] += carry
		carry = (e[i] + 8) >> 4
		e[i] -= carry << 4
	}
	e[63] += carry
	return e
}

// scalarToNibblesBatch recodes all four lanes' scalars at once, returning
// 64 per-lane-signed-nibble vectors.
func scalarToNibblesBatch(ks *[4][32]byte) [64]Vec {
	var e [64]Vec
	for u := 0; u < 4; u++ {
		nib := scalarToNibbles(&ks[u])
		for i := 0; i < 64; i++ {
			e[i] = e[i].setLane(u, uint32(uint8(nib[i])))
		}
	}
	return e
}

// scalarMulFixedBase computes, for each of the four lanes independently,
// scalar_u * B where B is the fixed package base point (the Duif table's
// generator) and scalar_u is the clamped scalar packed in ks[u]. It uses a
// 64-entry precomputed table — one block per nibble position, already
// scaled to the right power of 16 — so no on-the-fly doublings of the
// accumulator are needed between additions.
func scalarMulFixedBase(ks *[4][32]byte) ExtPoint {
	e := scalarToNibblesBatch(ks)
	h := extIdentity()
	for i := 0; i < 64; i++ {
		t := tableSelect(i, e[i])
		h = addCached(&h, &t)
	}
	return h
}

// edwardsToMontgomeryU maps an extended Edwards point to the affine
// Montgomery u-coordinate of the corresponding curve25519 point via the
// standard birational map u=(1+y)/(1-y), computed projectively as
// (Z+Y)/(Z-Y) so no separate affine y is needed first.
//
// The point's x-coordinate is never read here — only Y and Z feed the map —
// matching the fact that the fixed-base ladder above never needed to carry
// a canonicalised affine x out of the table/addition chain either.
func edwardsToMontgomeryU(p *ExtPoint) Field {
	zy := addReduced(&p.Z, &p.Y)
	zmy := sbc(&p.Z, &p.Y)
	zmyInv := inv(&zmy)
	return mul(&zy, &zmyInv)
}
