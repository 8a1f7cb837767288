package core

import (
	"fmt"
	"strings"
	"time"
)

// BuildMessage renders the statement a wallet must sign to complete a
// challenge. Clients sign this exact string, so the layout and the
// timestamp format are frozen: timestamps are RFC 3339 UTC and the
// result for identical inputs is byte-for-byte identical. The stored
// Challenge.Message is the authority at verification time; this is
// never recomputed after issuance.
func BuildMessage(domain, wallet, nonce string, issuedAt, expiresAt time.Time, purpose string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s wants you to sign in with your wallet:\n%s\n", domain, wallet)
	if purpose != "" {
		fmt.Fprintf(&b, "\n%s\n", purpose)
	}
	fmt.Fprintf(&b, "\nNonce: %s\n", nonce)
	fmt.Fprintf(&b, "Issued At: %s\n", issuedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Expiration Time: %s", expiresAt.UTC().Format(time.RFC3339))
	return b.String()
}
