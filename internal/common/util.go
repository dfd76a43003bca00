package common

// WipeByteArray overwrites the contents of b with zeros. It is used to drop
// PIN codes from memory once they have been hashed or verified.
//
// A nil slice is a no-op.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
