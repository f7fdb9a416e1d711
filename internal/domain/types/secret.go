package types

import (
	"crypto/subtle"

	"rad/internal/util/memzero"
)

// Passphrase holds secret passphrase bytes. Callers zero it with Zero as soon as
// the derive or decrypt operation that needed it has finished.
type Passphrase struct {
	b []byte
}

// NewPassphrase copies b into a new Passphrase and zeroes b.
func NewPassphrase(b []byte) *Passphrase {
	p := &Passphrase{b: append([]byte(nil), b...)}
	memzero.Zero(b)
	return p
}

// Bytes returns the secret bytes. The slice aliases the passphrase storage and
// is wiped by Zero.
func (p *Passphrase) Bytes() []byte {
	if p == nil {
		return nil
	}
	return p.b
}

// Len returns the passphrase length in bytes.
func (p *Passphrase) Len() int { return len(p.Bytes()) }

// Equal reports whether p and o hold the same secret, in constant time.
func (p *Passphrase) Equal(o *Passphrase) bool {
	return subtle.ConstantTimeCompare(p.Bytes(), o.Bytes()) == 1
}

// Zero wipes the passphrase. It is safe to call more than once and on nil.
func (p *Passphrase) Zero() {
	if p == nil {
		return
	}
	memzero.Zero(p.b)
	p.b = p.b[:0]
}

// String never reveals the secret.
func (p *Passphrase) String() string { return "[redacted]" }
