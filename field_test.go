package x25519batch

import "testing"

func TestFieldZeroIsZero(t *testing.T) {
	z := fieldZero()
	for i := 0; i < 9; i++ {
		if z.n[i] != (Vec{}) {
			t.Fatalf("limb %d of fieldZero is not zero: %v", i, z.n[i])
		}
	}
}

func TestFieldAddSubRoundTrip(t *testing.T) {
	a := fieldBroadcastInt(12345)
	b := fieldBroadcastInt(6789)
	sum := addReduced(&a, &b)
	back := sbc(&sum, &b)
	finalReduceStrict(&back)
	finalReduceStrict(&a)
	gotBytes := unpackField(&back)
	wantBytes := unpackField(&a)
	if gotBytes != wantBytes {
		t.Fatalf("(a+b)-b != a: got %x want %x", gotBytes[0], wantBytes[0])
	}
}

func TestFieldMulAgainstKnownProduct(t *testing.T) {
	aBytes := [32]byte{
		0xcd, 0xab, 0x90, 0x78, 0x56, 0x34, 0x12, 0xef, 0xcd, 0xab, 0x90, 0x78,
		0x56, 0x34, 0x12, 0xef, 0xcd, 0xab, 0x90, 0x78, 0x56, 0x34, 0x12, 0xef,
		0xcd, 0xab, 0x90, 0x78, 0x56, 0x34, 0x12, 0x00,
	}
	bBytes := [32]byte{
		0x43, 0x65, 0x87, 0x09, 0xba, 0xdc, 0xfe, 0x21, 0x43, 0x65, 0x87, 0x09,
		0xba, 0xdc, 0xfe, 0x21, 0x43, 0x65, 0x87, 0x09, 0xba, 0xdc, 0xfe, 0x21,
		0x43, 0x65, 0x87, 0x09, 0xba, 0xdc, 0xfe, 0x00,
	}
	wantBytes := [32]byte{
		0xc9, 0x03, 0x75, 0xcd, 0x52, 0xc1, 0xfa, 0x8b, 0xdc, 0x3e, 0x71, 0xd2,
		0x04, 0x0e, 0x5e, 0x87, 0xe8, 0x79, 0x6d, 0xd7, 0xb6, 0x5a, 0xc1, 0x82,
		0xf4, 0xb4, 0x69, 0xdc, 0x68, 0xa7, 0xde, 0x32,
	}

	a := broadcastFieldFromBytes(&aBytes)
	b := broadcastFieldFromBytes(&bBytes)
	prod := mul(&a, &b)
	got := unpackField(&prod)
	for u := 0; u < 4; u++ {
		if got[u] != wantBytes {
			t.Fatalf("lane %d: got %x want %x", u, got[u], wantBytes)
		}
	}
}

func TestFieldInv(t *testing.T) {
	aBytes := [32]byte{
		0xcd, 0xab, 0x90, 0x78, 0x56, 0x34, 0x12, 0xef, 0xcd, 0xab, 0x90, 0x78,
		0x56, 0x34, 0x12, 0xef, 0xcd, 0xab, 0x90, 0x78, 0x56, 0x34, 0x12, 0xef,
		0xcd, 0xab, 0x90, 0x78, 0x56, 0x34, 0x12, 0x00,
	}
	a := broadcastFieldFromBytes(&aBytes)
	inva := inv(&a)
	one := mul(&a, &inva)
	got := unpackField(&one)
	want := [32]byte{1}
	for u := 0; u < 4; u++ {
		if got[u] != want {
			t.Fatalf("lane %d: a*inv(a) = %x, want 1", u, got[u])
		}
	}
}

func TestFieldInvZero(t *testing.T) {
	z := fieldZero()
	r := inv(&z)
	got := unpackField(&r)
	for u := 0; u < 4; u++ {
		for _, b := range got[u] {
			if b != 0 {
				t.Fatalf("inv(0) should remain 0, got %x", got[u])
			}
		}
	}
}

func TestCswap(t *testing.T) {
	a := fieldBroadcastInt(1)
	b := fieldBroadcastInt(2)

	// no-op lanes: all zero flag leaves both untouched
	a0, b0 := a, b
	cswap(&a0, &b0, vecZero())
	if unpackField(&a0) != unpackField(&a) || unpackField(&b0) != unpackField(&b) {
		t.Fatal("cswap with zero flag modified its operands")
	}

	// full swap
	a1, b1 := a, b
	cswap(&a1, &b1, vecBroadcast(1))
	if unpackField(&a1) != unpackField(&b) || unpackField(&b1) != unpackField(&a) {
		t.Fatal("cswap with flag 1 did not swap")
	}

	// double application is the identity
	a2, b2 := a, b
	flag := vecBroadcast(1)
	cswap(&a2, &b2, flag)
	cswap(&a2, &b2, flag)
	if unpackField(&a2) != unpackField(&a) || unpackField(&b2) != unpackField(&b) {
		t.Fatal("cswap applied twice did not restore operands")
	}
}

func TestFinalReduceStrictIsCanonical(t *testing.T) {
	// p-1 is the largest canonical value and must come through unchanged.
	pMinus1 := [32]byte{
		0xec, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f,
	}
	f := broadcastFieldFromBytes(&pMinus1)
	finalReduceStrict(&f)
	got := unpackField(&f)
	for u := 0; u < 4; u++ {
		if got[u] != pMinus1 {
			t.Fatalf("lane %d: got %x want %x", u, got[u], pMinus1)
		}
	}
}
