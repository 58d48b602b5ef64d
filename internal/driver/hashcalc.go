package driver

import (
	"crypto/sha256"
	"encoding/hex"

	"unsure/internal/codegen"
	"unsure/internal/version"
)

// Digest is a SHA-256 cache key.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

// cacheKey: H(content || compiler version || codegen options). Всё, что
// влияет на вывод, должно попасть в ключ.
func cacheKey(content [32]byte, opts codegen.Options) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, part := range []string{version.Version, opts.Runtime, opts.Module.String()} {
		_, _ = h.Write([]byte(part))
		_, _ = h.Write([]byte{0})
	}
	if opts.Debug {
		_, _ = h.Write([]byte{1})
	} else {
		_, _ = h.Write([]byte{0})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
