package verifier

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEd25519Wallet(t *testing.T) (string, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return base58.Encode(pub), priv
}

func TestEd25519VerifyEncodings(t *testing.T) {
	wallet, priv := newEd25519Wallet(t)
	message := "cardpass.io wants you to sign in with your wallet:\n" + wallet
	sig := ed25519.Sign(priv, []byte(message))

	v := NewEd25519Verifier()

	assert.True(t, v.Verify(wallet, message, base58.Encode(sig), EncodingBase58))
	assert.True(t, v.Verify(wallet, message, base58.Encode(sig), "")) // base58 is the default
	assert.True(t, v.Verify(wallet, message, base64.StdEncoding.EncodeToString(sig), EncodingBase64))
	assert.True(t, v.Verify(wallet, message, hex.EncodeToString(sig), EncodingHex))
}

func TestEd25519VerifyRejectsWrongKey(t *testing.T) {
	wallet, _ := newEd25519Wallet(t)
	_, otherPriv := newEd25519Wallet(t)

	message := "sign me"
	sig := ed25519.Sign(otherPriv, []byte(message))

	v := NewEd25519Verifier()
	assert.False(t, v.Verify(wallet, message, base58.Encode(sig), EncodingBase58))
}

func TestEd25519VerifyRejectsWrongMessage(t *testing.T) {
	wallet, priv := newEd25519Wallet(t)
	sig := ed25519.Sign(priv, []byte("the real message"))

	v := NewEd25519Verifier()
	assert.False(t, v.Verify(wallet, "a different message", base58.Encode(sig), EncodingBase58))
}

func TestEd25519VerifyMalformedInputs(t *testing.T) {
	wallet, priv := newEd25519Wallet(t)
	sig := ed25519.Sign(priv, []byte("m"))

	v := NewEd25519Verifier()

	// None of these may panic; all must simply fail.
	assert.False(t, v.Verify("not!base58!!", "m", base58.Encode(sig), EncodingBase58))
	assert.False(t, v.Verify("abc", "m", base58.Encode(sig), EncodingBase58)) // too-short key
	assert.False(t, v.Verify(wallet, "m", "@@@", EncodingBase58))
	assert.False(t, v.Verify(wallet, "m", base58.Encode(sig[:10]), EncodingBase58))
	assert.False(t, v.Verify(wallet, "m", base58.Encode(sig), "rot13"))
	assert.False(t, v.Verify("", "", "", ""))
}

func TestSecp256k1Verify(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	wallet := ethcrypto.PubkeyToAddress(key.PublicKey).Hex()

	message := "cardpass.io wants you to sign in with your wallet:\n" + wallet
	sig, err := ethcrypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)

	v := NewSecp256k1Verifier()

	assert.True(t, v.Verify(wallet, message, hex.EncodeToString(sig), EncodingHex))
	assert.True(t, v.Verify(wallet, message, "0x"+hex.EncodeToString(sig), EncodingHex))

	// Wallet-style signatures carry V as 27/28.
	walletSig := make([]byte, len(sig))
	copy(walletSig, sig)
	walletSig[ethcrypto.RecoveryIDOffset] += 27
	assert.True(t, v.Verify(wallet, message, hex.EncodeToString(walletSig), EncodingHex))
}

func TestSecp256k1VerifyRejects(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	otherKey, err := ethcrypto.GenerateKey()
	require.NoError(t, err)

	wallet := ethcrypto.PubkeyToAddress(key.PublicKey).Hex()
	message := "sign me"
	sig, err := ethcrypto.Sign(accounts.TextHash([]byte(message)), otherKey)
	require.NoError(t, err)

	v := NewSecp256k1Verifier()

	assert.False(t, v.Verify(wallet, message, hex.EncodeToString(sig), EncodingHex))
	assert.False(t, v.Verify("not-an-address", message, hex.EncodeToString(sig), EncodingHex))
	assert.False(t, v.Verify(wallet, message, "zzzz", EncodingHex))
	assert.False(t, v.Verify(wallet, message, hex.EncodeToString(sig[:32]), EncodingHex))
}
