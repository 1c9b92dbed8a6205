// Package speech provides spoken eligibility results: session tokens for
// the voice surface, script building, and ElevenLabs text-to-speech.
package speech

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultSessionTTL bounds how long a voice session token stays valid.
const DefaultSessionTTL = 15 * time.Minute

// SessionClaims represents JWT claims for a voice session.
type SessionClaims struct {
	SessionID uuid.UUID `json:"session_id"`
	jwt.RegisteredClaims
}

// SessionService issues and validates voice session tokens.
type SessionService struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionService creates a SessionService. A zero ttl uses the default.
func NewSessionService(secret string, ttl time.Duration) (*SessionService, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{secret: []byte(secret), ttl: ttl}, nil
}

// GenerateToken creates a signed token for a new voice session.
func (s *SessionService) GenerateToken() (string, uuid.UUID, error) {
	sessionID := uuid.New()
	now := time.Now()

	claims := &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, sessionID, nil
}

// ValidateToken validates a session token and returns its claims.
func (s *SessionService) ValidateToken(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("session token is not valid")
	}

	return claims, nil
}
