package files

import "testing"

func TestHasImageSignature(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want bool
	}{
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00}, true},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}, true},
		{"gif87a", []byte("GIF87a trailing"), true},
		{"gif89a", []byte("GIF89a trailing"), true},
		{"plain text", []byte("Hello Webstack!"), false},
		{"empty", nil, false},
		{"truncated png", []byte{0x89, 'P'}, false},
		{"bmp", []byte{'B', 'M', 0x00}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := hasImageSignature(tc.data); got != tc.want {
				t.Errorf("hasImageSignature(%q) = %v, want %v", tc.data, got, tc.want)
			}
		})
	}
}
