package x25519batch

// tableSelect performs a constant-time lookup of block i's entry for the
// signed digit e (one per lane, in [-8,8]), masking in each of the eight
// candidate magnitudes in turn so no memory access or branch depends on the
// digit's value, then conditionally negating the result per lane according
// to the digit's sign. A table entry for digit value
// 0 is the identity's cached form (yplusx=yminusx=1, xy2d=0); the table
// itself only stores magnitudes 1..8, matching the signed-nibble range
// produced by scalarToNibbles.
func tableSelect(i int, e Vec) tableEntry {
	abs := e.absByteLane()

	result := tableEntry{
		yplusx:  fieldBroadcastInt(1),
		yminusx: fieldBroadcastInt(1),
		xy2d:    fieldZero(),
	}
	for m := 1; m <= 8; m++ {
		diff := abs.sub(vecBroadcast(uint64(m)))
		mask := diff.eqZeroMask()
		cmov(&result.yplusx, &baseTable[i][m-1].yplusx, mask)
		cmov(&result.yminusx, &baseTable[i][m-1].yminusx, mask)
		cmov(&result.xy2d, &baseTable[i][m-1].xy2d, mask)
	}

	sign := e.signMask()
	negXY2d := neg(&result.xy2d)
	return tableEntry{
		yplusx:  selectField(&result.yplusx, &result.yminusx, sign),
		yminusx: selectField(&result.yminusx, &result.yplusx, sign),
		xy2d:    selectField(&result.xy2d, &negXY2d, sign),
	}
}
