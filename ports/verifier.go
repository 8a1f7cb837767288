package ports

// SignatureVerifier checks that a signature over a message was produced
// by the key owning a claimed wallet address.
type SignatureVerifier interface {
	// Verify decodes signature per the declared encoding and verifies it
	// over the exact bytes of message. Malformed input of any kind is a
	// plain false, never a panic or an error the caller must interpret.
	Verify(wallet, message, signature, encoding string) bool
}
