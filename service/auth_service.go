package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CardPass-Solana/backend-infra/core"
	"github.com/CardPass-Solana/backend-infra/ports"
)

const nonceBytes = 32

// Options carries the tunables for the auth service.
type Options struct {
	ChallengeTTL  time.Duration
	SessionTTL    time.Duration
	Issuer        string
	DefaultDomain string
}

// AuthService orchestrates the challenge/response login flow
type AuthService struct {
	store     ports.ChallengeStore
	tokenizer ports.Tokenizer
	verifier  ports.SignatureVerifier
	eventPub  ports.EventPublisher
	opts      Options
	log       *slog.Logger
}

// NewAuthService creates a new authentication service. eventPub may be
// nil when no event transport is configured.
func NewAuthService(
	store ports.ChallengeStore,
	tokenizer ports.Tokenizer,
	verifier ports.SignatureVerifier,
	eventPub ports.EventPublisher,
	opts Options,
	log *slog.Logger,
) *AuthService {
	if opts.ChallengeTTL <= 0 {
		opts.ChallengeTTL = 5 * time.Minute
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = time.Hour
	}
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{
		store:     store,
		tokenizer: tokenizer,
		verifier:  verifier,
		eventPub:  eventPub,
		opts:      opts,
		log:       log,
	}
}

// CreateChallenge issues a new login challenge for the claimed wallet.
// The message is computed once here and stored; verification always runs
// against this stored copy, never a regenerated one.
func (s *AuthService) CreateChallenge(ctx context.Context, wallet, domain, purpose string) (*core.Challenge, error) {
	wallet = strings.TrimSpace(wallet)
	if len(wallet) < core.MinWalletLength {
		return nil, core.ErrInvalidWallet
	}

	if domain == "" {
		domain = s.opts.DefaultDomain
	}

	nonce, err := generateNonce()
	if err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	challenge := &core.Challenge{
		ID:        uuid.New().String(),
		Wallet:    wallet,
		Nonce:     nonce,
		Purpose:   purpose,
		Domain:    domain,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.opts.ChallengeTTL),
	}
	challenge.Message = core.BuildMessage(domain, wallet, nonce, challenge.IssuedAt, challenge.ExpiresAt, purpose)

	if err := s.store.Put(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to store challenge: %w", err)
	}

	s.log.Debug("challenge issued", "wallet", wallet, "expires_at", challenge.ExpiresAt)
	return challenge, nil
}

// VerifyChallenge consumes the nonce, checks the signature against the
// stored message, and mints a session credential. The nonce is consumed
// whether or not the signature verifies; a failed attempt forces the
// client to request a fresh challenge.
func (s *AuthService) VerifyChallenge(ctx context.Context, nonce, signature, encoding string) (*core.Session, string, error) {
	challenge, err := s.store.Consume(ctx, nonce)
	if err != nil {
		return nil, "", err
	}

	if !s.verifier.Verify(challenge.Wallet, challenge.Message, signature, encoding) {
		s.log.Info("signature verification failed", "wallet", challenge.Wallet)
		return nil, "", core.ErrInvalidSignature
	}

	now := time.Now().UTC().Truncate(time.Second)
	session := &core.Session{
		Wallet:    challenge.Wallet,
		Nonce:     challenge.Nonce,
		Purpose:   challenge.Purpose,
		Domain:    challenge.Domain,
		Issuer:    s.opts.Issuer,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.opts.SessionTTL),
	}

	token, err := s.tokenizer.Mint(session)
	if err != nil {
		return nil, "", fmt.Errorf("failed to mint session token: %w", err)
	}

	if s.eventPub != nil {
		if err := s.eventPub.PublishLogin(ctx, session.Wallet, session.Nonce); err != nil {
			// Event delivery is best-effort; the session is already minted.
			s.log.Warn("failed to publish login event", "error", err)
		}
	}

	s.log.Info("wallet authenticated", "wallet", session.Wallet)
	return session, token, nil
}

// ValidateToken parses and verifies a session credential.
func (s *AuthService) ValidateToken(token string) (*core.Session, error) {
	return s.tokenizer.Validate(token)
}

// Logout records a client-side session teardown. The credential itself
// stays valid until expiry; there is no server-side revocation.
func (s *AuthService) Logout(ctx context.Context, wallet string) {
	if s.eventPub == nil || wallet == "" {
		return
	}
	if err := s.eventPub.PublishLogout(ctx, wallet); err != nil {
		s.log.Warn("failed to publish logout event", "error", err)
	}
}

// generateNonce returns an unguessable URL-safe token.
func generateNonce() (string, error) {
	buf := make([]byte, nonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
