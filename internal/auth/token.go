package auth

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers malformed, forged and expired tokens alike; the
// caller is never told which, all three map to unauthorized.
var ErrInvalidToken = errors.New("invalid token")

const DefaultTokenTTL = 24 * time.Hour

// Claims carried by an access token. Subject holds the user id.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// TokenConfig holds the signing secret and token lifetime.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
}

// TokenConfigFromEnv reads APP_SECRET and TOKEN_TTL_HOURS. The secret has a
// development default; deployments must set their own.
func TokenConfigFromEnv() TokenConfig {
	secret := os.Getenv("APP_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
	}
	ttl := DefaultTokenTTL
	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			ttl = time.Duration(hours) * time.Hour
		}
	}
	return TokenConfig{Secret: []byte(secret), TTL: ttl}
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	cfg TokenConfig
}

func NewTokenIssuer(cfg TokenConfig) *TokenIssuer {
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTokenTTL
	}
	return &TokenIssuer{cfg: cfg}
}

// Issue signs a token whose subject is the user id, expiring at now+TTL.
func (t *TokenIssuer) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.TTL)),
		},
		Email: email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.cfg.Secret)
}

// Decode verifies signature and expiry and returns the claims.
func (t *TokenIssuer) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.cfg.Secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
