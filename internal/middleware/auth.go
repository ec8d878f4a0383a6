package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/vidtube/backend/pkg/models"
)

const (
	// AuthContextKey is where the resolved identity is stored on the request.
	AuthContextKey = "auth_user"

	// AccessTokenCookie and RefreshTokenCookie name the http-only session
	// cookies; the Authorization header is accepted as an alternative.
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

var (
	accessSecret  string
	refreshSecret string
)

// SetSecrets sets the signing secrets for access and refresh tokens.
func SetSecrets(access, refresh string) {
	accessSecret = access
	refreshSecret = refresh
}

// Claims represents access token claims
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// RefreshClaims carries only the subject; the token is additionally checked
// against the single persisted value on the user row to detect reuse.
type RefreshClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// UserResolver resolves the token subject to a full identity.
type UserResolver interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"statusCode": http.StatusUnauthorized,
		"data":       nil,
		"message":    message,
		"success":    false,
		"errors":     []string{},
	})
}

// extractToken reads the access token from the session cookie, falling back
// to a bearer Authorization header.
func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}

func resolveUser(c *gin.Context, resolver UserResolver, tokenString string) (*models.User, bool) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(accessSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, false
	}

	user, err := resolver.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		return nil, false
	}

	return user, true
}

// Auth validates the access token and attaches the resolved identity to the
// request context. Requests without a valid token never reach the handler.
func Auth(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortUnauthorized(c, "unauthorized request")
			return
		}

		user, ok := resolveUser(c, resolver, tokenString)
		if !ok {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(AuthContextKey, user)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and lets
// the request through unauthenticated otherwise. Used by public read
// endpoints whose view-models personalize for a known viewer.
func OptionalAuth(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := extractToken(c); tokenString != "" {
			if user, ok := resolveUser(c, resolver, tokenString); ok {
				c.Set(AuthContextKey, user)
			}
		}
		c.Next()
	}
}

// GenerateAccessToken generates a short-lived access token for a user.
func GenerateAccessToken(user *models.User, expiresIn time.Duration) (string, error) {
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(accessSecret))
}

// GenerateRefreshToken generates a long-lived refresh token for a user id.
func GenerateRefreshToken(userID string, expiresIn time.Duration) (string, error) {
	claims := RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(refreshSecret))
}

// ParseRefreshToken verifies a refresh token and returns its subject id.
func ParseRefreshToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RefreshClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(refreshSecret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(*RefreshClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}

	return claims.UserID, nil
}

// GetUser retrieves the authenticated user from the context.
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(AuthContextKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	return user, ok
}
