package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidtube/backend/pkg/models"
)

type stubResolver struct {
	user *models.User
	err  error
}

func (s *stubResolver) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	SetSecrets("access-secret", "refresh-secret")
	os.Exit(m.Run())
}

func testRouter(resolver UserResolver) *gin.Engine {
	router := gin.New()
	router.GET("/secured", Auth(resolver), func(c *gin.Context) {
		user, _ := GetUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	router.GET("/optional", OptionalAuth(resolver), func(c *gin.Context) {
		if user, ok := GetUser(c); ok {
			c.JSON(http.StatusOK, gin.H{"id": user.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": ""})
	})
	return router
}

func TestAuthRejectsBadTokens(t *testing.T) {
	router := testRouter(&stubResolver{user: &models.User{ID: "user-1"}})

	tests := []struct {
		name   string
		header string
	}{
		{"missing token", ""},
		{"malformed header", "Token abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/secured", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	user := &models.User{ID: "user-1", Username: "u", Email: "u@example.com"}
	token, err := GenerateAccessToken(user, -time.Minute)
	require.NoError(t, err)

	router := testRouter(&stubResolver{user: user})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/secured", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	user := &models.User{ID: "user-1", Username: "u", Email: "u@example.com"}
	token, err := GenerateAccessToken(user, time.Minute)
	require.NoError(t, err)

	router := testRouter(&stubResolver{user: user})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/secured", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestAuthAcceptsCookieToken(t *testing.T) {
	user := &models.User{ID: "user-1", Username: "u", Email: "u@example.com"}
	token, err := GenerateAccessToken(user, time.Minute)
	require.NoError(t, err)

	router := testRouter(&stubResolver{user: user})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/secured", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRejectsUnknownSubject(t *testing.T) {
	user := &models.User{ID: "user-1"}
	token, err := GenerateAccessToken(user, time.Minute)
	require.NoError(t, err)

	// token is valid but the account no longer resolves
	router := testRouter(&stubResolver{err: assert.AnError})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/secured", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	router := testRouter(&stubResolver{user: &models.User{ID: "user-1"}})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/optional", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":""`)
}

func TestOptionalAuthAttachesKnownViewer(t *testing.T) {
	user := &models.User{ID: "user-1"}
	token, err := GenerateAccessToken(user, time.Minute)
	require.NoError(t, err)

	router := testRouter(&stubResolver{user: user})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/optional", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken("user-42", time.Hour)
	require.NoError(t, err)

	userID, err := ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	// the two token kinds are signed with different secrets
	user := &models.User{ID: "user-1"}
	token, err := GenerateAccessToken(user, time.Hour)
	require.NoError(t, err)

	_, err = ParseRefreshToken(token)
	assert.Error(t, err)
}

func TestParseRefreshTokenExpired(t *testing.T) {
	token, err := GenerateRefreshToken("user-1", -time.Minute)
	require.NoError(t, err)

	_, err = ParseRefreshToken(token)
	assert.Error(t, err)
}
