package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidToken covers malformed, expired and mis-signed tokens.
var ErrInvalidToken = errors.New("invalid token")

// AdminClaims is the JWT payload for back-office sessions.
type AdminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Admin guards the back-office endpoints. Credentials come from
// configuration; the password is held only as a bcrypt hash.
type Admin struct {
	username        string
	passwordHash    []byte
	signingKey      []byte
	expirationHours int
}

// NewAdmin hashes the configured password once at startup.
func NewAdmin(username, password, signingKey string, expirationHours int) (*Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Admin{
		username:        username,
		passwordHash:    hash,
		signingKey:      []byte(signingKey),
		expirationHours: expirationHours,
	}, nil
}

// Login checks credentials and issues a signed token.
func (a *Admin) Login(username, password string) (string, error) {
	if username != a.username || bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) != nil {
		return "", errors.New("invalid credentials")
	}
	claims := AdminClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(a.expirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.signingKey)
}

// Validate parses a token and returns its claims.
func (a *Admin) Validate(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&AdminClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return a.signingKey, nil
		},
	)
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*AdminClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// Middleware rejects requests without a valid bearer token.
func (a *Admin) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := a.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set("admin", claims.Username)
		c.Next()
	}
}
