package auth

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Principal holds identity extracted from a validated session token.
type Principal struct {
	UserID   string
	Username string
	Role     string
	Claims   jwt.MapClaims
}

var (
	ErrNoToken      = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingSub   = errors.New("missing sub claim")
)

const defaultTokenTTL = 12 * time.Hour

// TokenService issues and verifies HS256 session tokens. The token only
// transports identity; the persisted session record remains the source of
// truth for whether a login is still active.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewTokenService reads AUTH_TOKEN_SECRET and AUTH_TOKEN_TTL from the
// environment, with development defaults.
func NewTokenService() *TokenService {
	secret := os.Getenv("AUTH_TOKEN_SECRET")
	if secret == "" {
		secret = "sim-kia-dev-secret"
	}
	ttl := defaultTokenTTL
	if raw := os.Getenv("AUTH_TOKEN_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			ttl = parsed
		}
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, issuer: "clinic-service"}
}

// Issue signs a token carrying the user's identity and role.
func (s *TokenService) Issue(userID, username, role string) (string, error) {
	now := jwt.TimeFunc()
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"role":     role,
		"iss":      s.issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify validates a bearer token, checks issuer and expiry and returns the
// Principal it carries.
func (s *TokenService) Verify(tokenString string) (*Principal, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}
	tokenString = strings.TrimSpace(tokenString)
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		// enforce HS256
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if iss, _ := claims["iss"].(string); iss != s.issuer {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyExpiresAt(jwt.TimeFunc().Unix(), true) {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrMissingSub
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return &Principal{
		UserID:   sub,
		Username: username,
		Role:     role,
		Claims:   claims,
	}, nil
}
