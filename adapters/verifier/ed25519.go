package verifier

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"

	"github.com/CardPass-Solana/backend-infra/ports"
)

// Ed25519Verifier validates signatures from ed25519 wallets, where the
// wallet address is the base58-encoded 32-byte public key itself.
type Ed25519Verifier struct{}

// NewEd25519Verifier creates the default signature verifier
func NewEd25519Verifier() ports.SignatureVerifier {
	return &Ed25519Verifier{}
}

// Verify reports whether signature over message was produced by the key
// behind wallet. Every malformed input is a plain false.
func (v *Ed25519Verifier) Verify(wallet, message, signature, encoding string) (ok bool) {
	// Attacker-controlled input must never take down the handler.
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	pubKey, err := base58.Decode(wallet)
	if err != nil || len(pubKey) != ed25519.PublicKeySize {
		return false
	}

	sig, err := decodeSignature(signature, encoding)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}

	return ed25519.Verify(ed25519.PublicKey(pubKey), []byte(message), sig)
}
