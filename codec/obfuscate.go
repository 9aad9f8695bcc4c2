package codec

const (
	// KeyPoolSize is the length of the shared key table.
	KeyPoolSize = 1212
	// MaxKey bounds the key length: keys are 1 to MaxKey-1 bytes long.
	MaxKey = 256
)

// keyFor returns the key for a payload of length n. The result aliases the
// pool when it does not wrap.
func keyFor(n int) []byte {
	size := n%(MaxKey-1) + 1
	start := n % KeyPoolSize
	if start+size <= KeyPoolSize {
		return keyPool[start : start+size]
	}
	key := make([]byte, size)
	for i := range key {
		key[i] = keyPool[(n+i)%KeyPoolSize]
	}
	return key
}

// Obfuscate XORs p in place with the key derived from len(p). Applying it
// twice restores the input.
func Obfuscate(p []byte) {
	if len(p) == 0 {
		return
	}
	key := keyFor(len(p))
	for i := range p {
		p[i] ^= key[i%len(key)]
	}
}
