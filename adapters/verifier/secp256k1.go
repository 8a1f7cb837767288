package verifier

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/CardPass-Solana/backend-infra/ports"
)

// Secp256k1Verifier validates EVM personal-sign signatures: the signing
// key is recovered from the signature itself and the derived address is
// compared against the claimed wallet.
type Secp256k1Verifier struct{}

// NewSecp256k1Verifier creates an EVM signature verifier
func NewSecp256k1Verifier() ports.SignatureVerifier {
	return &Secp256k1Verifier{}
}

// Verify reports whether signature over message recovers to wallet.
func (v *Secp256k1Verifier) Verify(wallet, message, signature, encoding string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	if !common.IsHexAddress(wallet) {
		return false
	}

	sig, err := decodeSignature(signature, encoding)
	if err != nil || len(sig) != crypto.SignatureLength {
		return false
	}

	// Wallets produce V as 27/28; crypto.SigToPub wants 0/1.
	cp := make([]byte, len(sig))
	copy(cp, sig)
	if cp[crypto.RecoveryIDOffset] >= 27 {
		cp[crypto.RecoveryIDOffset] -= 27
	}

	hash := accounts.TextHash([]byte(message))
	pub, err := crypto.SigToPub(hash, cp)
	if err != nil {
		return false
	}

	recovered := crypto.PubkeyToAddress(*pub)
	return strings.EqualFold(recovered.Hex(), wallet)
}
