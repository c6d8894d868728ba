package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bidding/models"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

// JWTManager signs and validates the tokens the identity system issues.
// This service only checks the HMAC signature and expiry; proving who the
// subject is belongs to the identity layer.
type JWTManager struct {
	secretKey     []byte
	tokenDuration time.Duration
}

// Claims carries the principal attributes the engine needs. RankHint is
// optional; the rank resolver falls back to title and display name.
type Claims struct {
	Role           models.Role `json:"role"`
	RankHint       int         `json:"rank_hint,omitempty"`
	TitleText      string      `json:"title,omitempty"`
	DisplayName    string      `json:"display_name,omitempty"`
	SupplierID     string      `json:"supplier_id,omitempty"`
	OrganizationID string      `json:"organization_id,omitempty"`
	jwt.RegisteredClaims
}

// Principal converts the claims into the immutable request principal.
func (c *Claims) Principal() models.Principal {
	return models.Principal{
		Role:           c.Role,
		RankHint:       c.RankHint,
		TitleText:      c.TitleText,
		DisplayName:    c.DisplayName,
		SupplierID:     c.SupplierID,
		OrganizationID: c.OrganizationID,
	}
}

// NewJWTManager creates a manager with the given secret and token lifetime.
func NewJWTManager(secretKey string, tokenDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}
}

// Generate creates a token for the given principal.
func (m *JWTManager) Generate(p models.Principal) (string, error) {
	claims := &Claims{
		Role:           p.Role,
		RankHint:       p.RankHint,
		TitleText:      p.TitleText,
		DisplayName:    p.DisplayName,
		SupplierID:     p.SupplierID,
		OrganizationID: p.OrganizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate parses and validates a token, returning the claims if valid.
func (m *JWTManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
