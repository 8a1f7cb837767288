package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CardPass-Solana/backend-infra/core"
	"github.com/CardPass-Solana/backend-infra/service"
)

// CookieConfig describes how the session cookie is delivered.
type CookieConfig struct {
	Name     string
	Domain   string
	Path     string
	Secure   bool
	SameSite http.SameSite
}

// AuthHandlers contains HTTP handlers for the auth endpoints
type AuthHandlers struct {
	authService *service.AuthService
	cookie      CookieConfig
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService *service.AuthService, cookie CookieConfig) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		cookie:      cookie,
	}
}

// Challenge issues a new login challenge
func (h *AuthHandlers) Challenge(c *gin.Context) {
	var req struct {
		Wallet  string `json:"wallet" binding:"required"`
		Domain  string `json:"domain"`
		Purpose string `json:"purpose"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wallet is required"})
		return
	}

	challenge, err := h.authService.CreateChallenge(c.Request.Context(), req.Wallet, req.Domain, req.Purpose)
	if err != nil {
		if err == core.ErrInvalidWallet {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wallet address"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create challenge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wallet":     challenge.Wallet,
		"nonce":      challenge.Nonce,
		"issued_at":  challenge.IssuedAt.UTC().Format(time.RFC3339),
		"expires_at": challenge.ExpiresAt.UTC().Format(time.RFC3339),
		"message":    challenge.Message,
	})
}

// Verify checks a signed challenge and mints a session credential,
// delivered both as a cookie and in the response body.
func (h *AuthHandlers) Verify(c *gin.Context) {
	var req struct {
		Nonce             string `json:"nonce" binding:"required"`
		Signature         string `json:"signature" binding:"required"`
		SignatureEncoding string `json:"signature_encoding"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nonce and signature are required"})
		return
	}

	session, token, err := h.authService.VerifyChallenge(c.Request.Context(), req.Nonce, req.Signature, req.SignatureEncoding)
	if err != nil {
		switch {
		case core.ChallengeNotUsable(err):
			// Unknown, expired and already-used stay indistinguishable.
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown or expired nonce"})
		case err == core.ErrInvalidSignature:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
		}
		return
	}

	h.setSessionCookie(c, token, session.ExpiresAt)

	c.JSON(http.StatusOK, gin.H{
		"ok":               true,
		"wallet":           session.Wallet,
		"used_nonce":       session.Nonce,
		"token":            token,
		"token_expires_at": session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Logout clears the session cookie. Idempotent; no prior session needed.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if tokenStr, ok := extractToken(c, h.cookie.Name); ok {
		if session, err := h.authService.ValidateToken(tokenStr); err == nil {
			h.authService.Logout(c.Request.Context(), session.Wallet)
		}
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me echoes the claim set of the presented session credential
func (h *AuthHandlers) Me(c *gin.Context) {
	tokenStr, ok := extractToken(c, h.cookie.Name)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	session, err := h.authService.ValidateToken(tokenStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wallet":     session.Wallet,
		"nonce":      session.Nonce,
		"purpose":    session.Purpose,
		"domain":     session.Domain,
		"issuer":     session.Issuer,
		"issued_at":  session.IssuedAt.UTC().Format(time.RFC3339),
		"expires_at": session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Health reports process liveness
func (h *AuthHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AuthHandlers) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	c.SetSameSite(h.cookie.SameSite)
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetCookie(h.cookie.Name, token, maxAge, h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
}

func (h *AuthHandlers) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(h.cookie.Name, "", -1, h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
}
