package tokenizer

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/CardPass-Solana/backend-infra/core"
	"github.com/CardPass-Solana/backend-infra/ports"
)

// Config holds the signing parameters for session credentials.
type Config struct {
	Secret    []byte
	Algorithm string // HS256, HS384 or HS512
	Issuer    string
	Audience  string // enforced only when non-empty
}

// JWTTokenizer implements the Tokenizer interface with HMAC-signed JWTs
type JWTTokenizer struct {
	cfg    Config
	method jwt.SigningMethod
}

// NewJWTTokenizer creates a new JWT tokenizer. An empty secret or an
// algorithm outside the HMAC family is a configuration error.
func NewJWTTokenizer(cfg Config) (*JWTTokenizer, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("signing secret must not be empty")
	}

	method := jwt.GetSigningMethod(cfg.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}

	return &JWTTokenizer{cfg: cfg, method: method}, nil
}

var _ ports.Tokenizer = (*JWTTokenizer)(nil)

// Mint signs a credential asserting the session.
func (j *JWTTokenizer) Mint(session *core.Session) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.Wallet,
			Issuer:    j.cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ID:        uuid.New().String(),
		},
		Nonce:   session.Nonce,
		Purpose: session.Purpose,
		Domain:  session.Domain,
	}
	if j.cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{j.cfg.Audience}
	}

	token := jwt.NewWithClaims(j.method, claims)

	signed, err := token.SignedString(j.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a credential and returns the session it
// asserts.
func (j *JWTTokenizer) Validate(tokenStr string) (*core.Session, error) {
	opts := []jwt.ParserOption{
		jwt.WithIssuer(j.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if j.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(j.cfg.Audience))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.cfg.Secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, core.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, core.ErrInvalidToken
	}

	if claims.Subject == "" || claims.Nonce == "" {
		return nil, core.ErrInvalidToken
	}

	session := &core.Session{
		Wallet:    claims.Subject,
		Nonce:     claims.Nonce,
		Purpose:   claims.Purpose,
		Domain:    claims.Domain,
		Issuer:    claims.Issuer,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}

	return session, nil
}
