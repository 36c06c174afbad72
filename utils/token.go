package utils

import (
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/Andyflow28/SolTech-RESTAPI/apperr"
	"github.com/Andyflow28/SolTech-RESTAPI/config"
)

// TokenService issues and verifies signed bearer tokens. The signing key and
// algorithm come from process configuration, loaded once at startup. Now is
// swappable so expiry can be tested deterministically.
type TokenService struct {
	secretKey []byte
	method    jwt.SigningMethod
	ttl       time.Duration
	Now       func() time.Time
}

// NewTokenService builds a TokenService from the application config.
func NewTokenService(cfg *config.Config) *TokenService {
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if method == nil {
		method = jwt.SigningMethodHS256
	}
	return &TokenService{
		secretKey: []byte(cfg.SecretKey),
		method:    method,
		ttl:       time.Duration(cfg.AccessTokenExpireMinutes) * time.Minute,
		Now:       time.Now,
	}
}

// Issue generates a signed token encoding the subject (user email or device
// id) and an absolute expiry.
func (s *TokenService) Issue(subject string) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": s.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(s.method, claims)
	return token.SignedString(s.secretKey)
}

// Verify checks signature and expiry and returns the encoded subject. The
// failure modes are typed: an unsigned, mis-signed or malformed token is
// never partially trusted.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != s.method.Alg() {
			return nil, &apperr.AuthError{Kind: apperr.InvalidToken}
		}
		return s.secretKey, nil
	})
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return "", &apperr.AuthError{Kind: apperr.ExpiredToken}
		}
		return "", &apperr.AuthError{Kind: apperr.InvalidToken}
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", &apperr.AuthError{Kind: apperr.MissingSubject}
	}
	return subject, nil
}
