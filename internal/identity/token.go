package identity

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/uwtype/uwtype/internal/model"
)

const tokenTTL = 30 * 24 * time.Hour

// ErrNoSession indicates no valid profile session exists; the user must
// run login again.
var ErrNoSession = errors.New("no valid profile session; run: uwtype login")

// Claims carries the profile inside the signed session token.
type Claims struct {
	Email   string `json:"email"`
	Program string `json:"program,omitempty"`
	Faculty string `json:"faculty,omitempty"`
	jwt.RegisteredClaims
}

// SignToken issues an HS256 token for the profile.
func SignToken(p model.Profile, secret []byte, now time.Time) (string, error) {
	claims := Claims{
		Email:   p.Email,
		Program: p.Program,
		Faculty: p.Faculty,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies a session token and returns the embedded profile.
func ParseToken(tok string, secret []byte) (model.Profile, error) {
	parsed, err := jwt.ParseWithClaims(tok, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to parse session token: %w", err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return model.Profile{}, ErrNoSession
	}
	return model.Profile{
		UserID:  claims.Subject,
		Email:   claims.Email,
		Program: claims.Program,
		Faculty: claims.Faculty,
	}, nil
}

// LoadSecret reads the signing secret, creating a random one on first
// use. UWTYPE_SECRET overrides the on-disk secret.
func LoadSecret(path string) ([]byte, error) {
	if v := os.Getenv("UWTYPE_SECRET"); v != "" {
		return []byte(v), nil
	}
	data, err := os.ReadFile(path)
	if err == nil && len(data) > 0 {
		return data, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate secret: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create secret dir: %w", err)
	}
	if err := os.WriteFile(path, secret, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write secret: %w", err)
	}
	return secret, nil
}

// SaveSession writes the signed token to the session path.
func SaveSession(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// LoadSession reads and verifies the stored profile session.
func LoadSession(tokenPath, secretPath string) (model.Profile, error) {
	data, err := os.ReadFile(tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Profile{}, ErrNoSession
		}
		return model.Profile{}, fmt.Errorf("failed to read session: %w", err)
	}
	secret, err := LoadSecret(secretPath)
	if err != nil {
		return model.Profile{}, err
	}
	profile, err := ParseToken(string(data), secret)
	if err != nil {
		return model.Profile{}, ErrNoSession
	}
	return profile, nil
}
