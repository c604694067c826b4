package x25519batch

// baseTable is the precomputed fixed-base table consumed by
// scalarMulFixedBase/tableSelect: 64 blocks, one per signed-nibble
// position, each holding the eight cached points 1*P .. 8*P where P is
// 16^block * B and B is the package base point (the curve25519 base point
// u=9, represented here on its birationally equivalent twisted Edwards
// curve). It is generated once at package load from the hardcoded base
// point affine coordinates using the library's own field and curve
// arithmetic, rather than carrying ~1500 precomputed field constants that
// could not be hand-verified here.
var baseTable = buildBaseTable()

// baseXBytes, baseYBytes are the affine coordinates of the edwards25519
// base point, little-endian, standard RFC 8032 generator.
var baseXBytes = [32]byte{
	0x1a, 0xd5, 0x25, 0x8f, 0x60, 0x2d, 0x56, 0xc9, 0xb2, 0xa7, 0x25, 0x95,
	0x60, 0xc7, 0x2c, 0x69, 0x5c, 0xdc, 0xd6, 0xfd, 0x31, 0xe2, 0xa4, 0xc0,
	0xfe, 0x53, 0x6e, 0xcd, 0xd3, 0x36, 0x69, 0x21,
}

var baseYBytes = [32]byte{
	0x58, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
	0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
	0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
}

// basePoint returns the package base point as an extended Edwards point
// with every lane holding the same (public) coordinates.
func basePoint() ExtPoint {
	x := broadcastFieldFromBytes(&baseXBytes)
	y := broadcastFieldFromBytes(&baseYBytes)
	z := fieldBroadcastInt(1)
	t := mul(&x, &y)
	return ExtPoint{X: x, Y: y, Z: z, T: t}
}

// addExt adds two extended points with no assumption on either Z, the
// general a=-1 twisted Edwards addition (ref10's add-2008-hwcd-3, the
// variant of ge_madd that does not assume the second operand is affine).
// Only ever used here at table-build time on public points, so its cost is
// irrelevant to the library's constant-time guarantees over secret data.
func addExt(p, q *ExtPoint) ExtPoint {
	yMinusXp := sbc(&p.Y, &p.X)
	yMinusXq := sbc(&q.Y, &q.X)
	A := mul(&yMinusXp, &yMinusXq)

	yPlusXp := addReduced(&p.Y, &p.X)
	yPlusXq := addReduced(&q.Y, &q.X)
	B := mul(&yPlusXp, &yPlusXq)

	qT2d := mul(&edwardsD2, &q.T)
	C := mul(&p.T, &qT2d)

	qZ2 := addReduced(&q.Z, &q.Z)
	D := mul(&p.Z, &qZ2)

	E := sbc(&B, &A)
	F := sbc(&D, &C)
	G := addReduced(&D, &C)
	H := addReduced(&B, &A)

	var r ExtPoint
	r.X = mul(&E, &F)
	r.Y = mul(&G, &H)
	r.Z = mul(&F, &G)
	r.T = mul(&E, &H)
	return r
}

// buildBaseTable computes the 64x8 cached-point table described above by
// repeated addition (to reach magnitudes 1..8 of the current block's base)
// and repeated doubling (to advance from 16^i*B to 16^(i+1)*B).
func buildBaseTable() [64][8]tableEntry {
	var table [64][8]tableEntry
	cur := basePoint()
	for i := 0; i < 64; i++ {
		p := cur
		for m := 1; m <= 8; m++ {
			table[i][m-1] = cachedFromExt(&p)
			if m < 8 {
				p = addExt(&p, &cur)
			}
		}
		if i < 63 {
			for s := 0; s < 4; s++ {
				cur = double(&cur)
			}
		}
	}
	return table
}
