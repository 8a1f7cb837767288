package verifier

import (
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/CardPass-Solana/backend-infra/core"
)

// Signature encodings accepted on the verify endpoint.
const (
	EncodingBase58 = "base58"
	EncodingBase64 = "base64"
	EncodingHex    = "hex"
)

// decodeSignature turns the wire representation of a signature into raw
// bytes per the declared encoding.
func decodeSignature(signature, encoding string) ([]byte, error) {
	switch strings.ToLower(encoding) {
	case EncodingBase58, "":
		return base58.Decode(signature)
	case EncodingBase64:
		return base64.StdEncoding.DecodeString(signature)
	case EncodingHex:
		return hex.DecodeString(strings.TrimPrefix(signature, "0x"))
	default:
		return nil, core.ErrUnknownEncoding
	}
}
