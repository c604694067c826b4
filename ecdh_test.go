package x25519batch

import "testing"

func TestIsLowOrderKnownPoints(t *testing.T) {
	cases := []struct {
		name string
		pk   [32]byte
		want bool
	}{
		{"zero", [32]byte{}, true},
		{"one", [32]byte{1}, true},
		{
			"p-1",
			[32]byte{
				0xec, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
				0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
				0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f,
			},
			true,
		},
		{
			"base point u=9",
			[32]byte{9},
			false,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsLowOrder(c.pk); got != c.want {
				t.Errorf("IsLowOrder(%x) = %v, want %v", c.pk, got, c.want)
			}
		})
	}
}

func TestKeygenRejectsNothingOnFixedLengthInput(t *testing.T) {
	var sk [32]byte
	sk[0] = 1
	if _, err := Keygen(sk); err != nil {
		t.Fatalf("Keygen returned unexpected error: %v", err)
	}
}
