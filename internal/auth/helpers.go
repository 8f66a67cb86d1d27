package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// jwtKey reads the signing key on every use rather than at package init, so
// a key loaded from .env during bootstrap is picked up.
func jwtKey() []byte {
	return []byte(os.Getenv("JWT_KEY"))
}

// SessionTTL is how long a login token stays valid. Tokens are not renewed;
// re-login is required after expiry.
const SessionTTL = 7 * 24 * time.Hour

type JWTClaims struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	StudentID string `json:"student_id,omitempty"`
	Phone     string `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

// Identity rebuilds the public identity encoded in the claims.
func (c *JWTClaims) Identity() *Identity {
	return &Identity{
		ID:        c.UserID,
		Name:      c.Name,
		Email:     c.Email,
		Role:      c.Role,
		StudentID: c.StudentID,
		Phone:     c.Phone,
	}
}

func GenerateJWT(id *Identity, duration time.Duration) (string, error) {
	claims := &JWTClaims{
		UserID:    id.ID,
		Name:      id.Name,
		Email:     id.Email,
		Role:      id.Role,
		StudentID: id.StudentID,
		Phone:     id.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

func ValidateJWT(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtKey(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	// tokens issued here always carry an expiry; one without is not ours
	if claims.ExpiresAt == nil {
		return nil, errors.New("token missing expiry")
	}
	if claims.ExpiresAt.Before(time.Now()) {
		return nil, errors.New("token expired")
	}
	return claims, nil
}

func GetJWTKey() []byte {
	return jwtKey()
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashed), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// NewResetToken returns a random single-use reset credential and the hash
// that gets persisted. The plaintext only ever leaves through the mailer.
func NewResetToken() (plaintext, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	plaintext = hex.EncodeToString(buf)
	return plaintext, HashResetToken(plaintext), nil
}

func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
