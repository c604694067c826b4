package x25519batch

import (
	"hash"
	"unsafe"

	sha256simd "github.com/minio/sha256-simd"
)

// SHA256 wraps the SIMD-accelerated SHA-256 implementation the key
// derivation layer (kdf.go) builds on.
type SHA256 struct {
	hasher hash.Hash
}

// NewSHA256 creates a new SHA-256 hash context.
func NewSHA256() *SHA256 {
	return &SHA256{hasher: sha256simd.New()}
}

// Write writes data to the hash.
func (h *SHA256) Write(data []byte) {
	h.hasher.Write(data)
}

// Finalize finalizes the hash and writes the result to out32 (must be 32 bytes).
func (h *SHA256) Finalize(out32 []byte) {
	if len(out32) != 32 {
		panic("output buffer must be 32 bytes")
	}
	sum := h.hasher.Sum(nil)
	copy(out32, sum)
}

// Clear clears the hash context to prevent leaking sensitive information.
func (h *SHA256) Clear() {
	memclear(unsafe.Pointer(h), unsafe.Sizeof(*h))
}

// HMACSHA256 is an HMAC-SHA256 context built directly from the two
// SHA256 contexts above, avoiding a dependency on the stdlib crypto/hmac
// package.
type HMACSHA256 struct {
	inner, outer SHA256
}

// NewHMACSHA256 creates a new HMAC-SHA256 context with the given key.
func NewHMACSHA256(key []byte) *HMACSHA256 {
	h := &HMACSHA256{}

	var rkey [64]byte
	if len(key) <= 64 {
		copy(rkey[:], key)
	} else {
		hasher := NewSHA256()
		hasher.Write(key)
		hasher.Finalize(rkey[:32])
		hasher.Clear()
	}

	var opad, ipad [64]byte
	for i := 0; i < 64; i++ {
		opad[i] = rkey[i] ^ 0x5c
		ipad[i] = rkey[i] ^ 0x36
	}

	h.outer = SHA256{hasher: sha256simd.New()}
	h.outer.hasher.Write(opad[:])

	h.inner = SHA256{hasher: sha256simd.New()}
	h.inner.hasher.Write(ipad[:])

	memclear(unsafe.Pointer(&rkey), unsafe.Sizeof(rkey))
	return h
}

// Write writes data to the inner hash.
func (h *HMACSHA256) Write(data []byte) {
	h.inner.Write(data)
}

// Finalize finalizes the HMAC and writes the result to out32 (must be 32 bytes).
func (h *HMACSHA256) Finalize(out32 []byte) {
	if len(out32) != 32 {
		panic("output buffer must be 32 bytes")
	}
	var temp [32]byte
	h.inner.Finalize(temp[:])
	h.outer.Write(temp[:])
	h.outer.Finalize(out32)
	memclear(unsafe.Pointer(&temp), unsafe.Sizeof(temp))
}

// Clear clears the HMAC context.
func (h *HMACSHA256) Clear() {
	h.inner.Clear()
	h.outer.Clear()
	memclear(unsafe.Pointer(h), unsafe.Sizeof(*h))
}

// memclear clears memory to prevent leaking sensitive information. The
// byte-at-a-time loop (rather than a slice-clear idiom) keeps the write
// from being recognised and elided by the compiler as a dead store.
func memclear(ptr unsafe.Pointer, n uintptr) {
	for i := uintptr(0); i < n; i++ {
		*(*byte)(unsafe.Pointer(uintptr(ptr) + i)) = 0
	}
}
