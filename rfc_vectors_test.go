package x25519batch

import (
	"encoding/hex"
	"testing"
)

func hexTo32(t *testing.T, s string) [32]byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		t.Fatalf("bad test vector %q: %v", s, err)
	}
	var out [32]byte
	copy(out[:], b)
	return out
}

func TestRFC7748DHVector1(t *testing.T) {
	scalar := hexTo32(t, "a546e36bf0527c9d3b16154b82465edd62144c0ac1fc5a18506a2244ba449ac4")
	u := hexTo32(t, "e6db6867583030db3594c1a424b15f7c726624ec26b3353b10a903a6d0ab1c4c")
	want := hexTo32(t, "c3da55379de9c6908e94ea4df28d084f32eccf03491c71f754b4075577a28552")

	got, err := SharedSecret(scalar, u)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("vector 1: got %x want %x", got, want)
	}
}

func TestRFC7748DHVector2(t *testing.T) {
	scalar := hexTo32(t, "4b66e9d4d1b4673c5ad22691957d6af5c11b6421e0ea01d42ca4169e7918ba0d")
	u := hexTo32(t, "e5210f12786811d3f4b7959d0538ae2c31dbe7106fc03c3efc4cd549c715a493")
	want := hexTo32(t, "95cbde9476e8907d7aade45cb4b873f88b595a68799fa152e6f8f7647aac7957")

	got, err := SharedSecret(scalar, u)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("vector 2: got %x want %x", got, want)
	}
}

// TestRFC7748AliceAndBob reproduces RFC 7748 §6.1's full key-exchange
// walkthrough: each party's public key is derived with Keygen, and both
// orders of SharedSecret must agree on the same shared value.
func TestRFC7748AliceAndBob(t *testing.T) {
	aliceSk := hexTo32(t, "77076d0a7318a57d3c16c17251b26645df4c2f87ebc0992ab177fba51db92c2a")
	bobSk := hexTo32(t, "5dab087e624a8a4b79e17f8b83800ee66f3bb1292618b6fd1c2f8b27ff88e0eb")

	wantAlicePk := hexTo32(t, "8520f0098930a754748b7ddcb43ef75a0dbf3a0d26381af4eba4a98eaa9b4e6a")
	wantBobPk := hexTo32(t, "de9edb7d7b7dc1b4d35b61c2ece435373f8343c85b78674dadfc7e146f882b4f")
	wantShared := hexTo32(t, "4a5d9d5ba4ce2de1728e3bf480350f25e07e21c947d19e3376f09b3c1e161742")

	alicePk, err := Keygen(aliceSk)
	if err != nil {
		t.Fatal(err)
	}
	if alicePk != wantAlicePk {
		t.Fatalf("alice pk: got %x want %x", alicePk, wantAlicePk)
	}

	bobPk, err := Keygen(bobSk)
	if err != nil {
		t.Fatal(err)
	}
	if bobPk != wantBobPk {
		t.Fatalf("bob pk: got %x want %x", bobPk, wantBobPk)
	}

	aliceShared, err := SharedSecret(aliceSk, bobPk)
	if err != nil {
		t.Fatal(err)
	}
	bobShared, err := SharedSecret(bobSk, alicePk)
	if err != nil {
		t.Fatal(err)
	}
	if aliceShared != bobShared {
		t.Fatalf("shared secrets disagree: alice %x bob %x", aliceShared, bobShared)
	}
	if aliceShared != wantShared {
		t.Fatalf("shared secret: got %x want %x", aliceShared, wantShared)
	}
}

// TestBatchLanesAreIndependent runs four distinct Alice/Bob-style exchanges
// packed into one batched call and checks each lane against the same
// computation done one user at a time, guarding against any cross-lane
// contamination in the batched field arithmetic.
func TestBatchLanesAreIndependent(t *testing.T) {
	sks := [4][32]byte{
		hexTo32(t, "77076d0a7318a57d3c16c17251b26645df4c2f87ebc0992ab177fba51db92c2a"),
		hexTo32(t, "5dab087e624a8a4b79e17f8b83800ee66f3bb1292618b6fd1c2f8b27ff88e0eb"),
		hexTo32(t, "a546e36bf0527c9d3b16154b82465edd62144c0ac1fc5a18506a2244ba449ac4"),
		hexTo32(t, "4b66e9d4d1b4673c5ad22691957d6af5c11b6421e0ea01d42ca4169e7918ba0d"),
	}

	batchPks, err := KeygenBatch(sks)
	if err != nil {
		t.Fatal(err)
	}
	for u := 0; u < 4; u++ {
		single, err := Keygen(sks[u])
		if err != nil {
			t.Fatal(err)
		}
		if single != batchPks[u] {
			t.Fatalf("lane %d keygen mismatch: batch %x single %x", u, batchPks[u], single)
		}
	}

	peerPks := [4][32]byte{batchPks[1], batchPks[0], batchPks[3], batchPks[2]}
	batchSs, err := SharedSecretBatch(sks, peerPks)
	if err != nil {
		t.Fatal(err)
	}
	for u := 0; u < 4; u++ {
		single, err := SharedSecret(sks[u], peerPks[u])
		if err != nil {
			t.Fatal(err)
		}
		if single != batchSs[u] {
			t.Fatalf("lane %d shared-secret mismatch: batch %x single %x", u, batchSs[u], single)
		}
	}
}

// TestDHIsCommutativeRandomPairs is a lighter-weight property check than a
// full 1000-pair sweep: a handful of pseudo-random (but fixed, so the test
// is reproducible without crypto/rand) scalar pairs must agree both ways.
func TestDHIsCommutativeRandomPairs(t *testing.T) {
	seeds := []byte{0x01, 0x42, 0x99, 0xde, 0xad, 0xbe, 0xef, 0x10}
	for _, seed := range seeds {
		var a, b [32]byte
		for i := range a {
			a[i] = byte(i) * seed
			b[i] = byte(i+1) * seed
		}
		pa, err := Keygen(a)
		if err != nil {
			t.Fatal(err)
		}
		pb, err := Keygen(b)
		if err != nil {
			t.Fatal(err)
		}
		sab, err := SharedSecret(a, pb)
		if err != nil {
			t.Fatal(err)
		}
		sba, err := SharedSecret(b, pa)
		if err != nil {
			t.Fatal(err)
		}
		if sab != sba {
			t.Fatalf("seed %x: shared secrets disagree", seed)
		}
	}
}
