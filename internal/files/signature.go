package files

import "bytes"

// Image signature sniffing. Uploads typed "image" must start with one of the
// recognized magic byte sequences; everything else is rejected before any
// bytes hit the content store.
var imageSignatures = [][]byte{
	{0x89, 'P', 'N', 'G'},    // PNG
	{0xFF, 0xD8},             // JPEG
	[]byte("GIF"),            // GIF87a / GIF89a
}

// hasImageSignature reports whether data begins with a recognized PNG, JPEG,
// or GIF signature.
func hasImageSignature(data []byte) bool {
	for _, sig := range imageSignatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}
