package x25519batch

import "errors"

// DeriveKey expands a raw shared secret (the u-coordinate SharedSecret
// produces) into arbitrary-length key material via HKDF (RFC 5869) over
// HMAC-SHA256. The raw agreement result and the derived-key step are always
// two separate calls, never fused into one, so a caller that wants the raw
// RFC 7748 bytes never pays for a hash they didn't ask for.
//
// salt may be nil (RFC 5869 treats an absent salt as a zero-filled block);
// info may be nil. out may be any length the caller needs.
func DeriveKey(out, sharedSecret, salt, info []byte) error {
	if len(out) == 0 {
		return errors.New("output length must be greater than 0")
	}
	if len(sharedSecret) == 0 {
		return errors.New("shared secret must not be empty")
	}

	prk := hkdfExtract(salt, sharedSecret)
	hkdfExpand(out, prk[:], info)
	return nil
}

// hkdfExtract computes PRK = HMAC-SHA256(salt, ikm); an empty salt is
// treated as 32 zero bytes per RFC 5869 §2.2.
func hkdfExtract(salt, ikm []byte) [32]byte {
	if len(salt) == 0 {
		salt = make([]byte, 32)
	}
	var prk [32]byte
	h := NewHMACSHA256(salt)
	h.Write(ikm)
	h.Finalize(prk[:])
	h.Clear()
	return prk
}

// hkdfExpand fills out with T(1) || T(2) || ... as defined by RFC 5869 §2.3,
// where T(i) = HMAC-SHA256(prk, T(i-1) || info || i).
func hkdfExpand(out, prk, info []byte) {
	var t []byte
	blockNum := byte(1)
	filled := 0
	for filled < len(out) {
		h := NewHMACSHA256(prk)
		if len(t) > 0 {
			h.Write(t)
		}
		if len(info) > 0 {
			h.Write(info)
		}
		h.Write([]byte{blockNum})

		var block [32]byte
		h.Finalize(block[:])
		h.Clear()

		n := copy(out[filled:], block[:])
		filled += n
		t = block[:]
		blockNum++
	}
}
