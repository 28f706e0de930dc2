package common

// WipeByteArray overwrites b with zeros. Used on password buffers once the
// request body has been built. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
