package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"todo-tracker/backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
)

func protectedRouter() (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)

	var seen uuid.UUID
	router := gin.New()
	router.Use(middleware.AuthzMiddleware())
	router.GET("/protected", func(c *gin.Context) {
		if value, exists := c.Get("user_id"); exists {
			seen = value.(uuid.UUID)
		}
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return router, &seen
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("default_secret"))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func TestAuthzMiddleware_MissingToken(t *testing.T) {
	router, _ := protectedRouter()

	req, _ := http.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthzMiddleware_MalformedHeader(t *testing.T) {
	router, _ := protectedRouter()

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthzMiddleware_InvalidToken(t *testing.T) {
	router, _ := protectedRouter()

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthzMiddleware_ExpiredToken(t *testing.T) {
	router, _ := protectedRouter()

	userID := uuid.Must(uuid.NewV4())
	signed := signToken(t, jwt.MapClaims{
		"user_id":  userID.String(),
		"username": "alice",
		"iss":      "todo-tracker-backend",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthzMiddleware_WrongIssuer(t *testing.T) {
	router, _ := protectedRouter()

	userID := uuid.Must(uuid.NewV4())
	signed := signToken(t, jwt.MapClaims{
		"user_id":  userID.String(),
		"username": "alice",
		"iss":      "someone-else",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthzMiddleware_ValidToken(t *testing.T) {
	router, seen := protectedRouter()

	userID := uuid.Must(uuid.NewV4())
	signed := signToken(t, jwt.MapClaims{
		"user_id":  userID.String(),
		"username": "alice",
		"iss":      "todo-tracker-backend",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d (%s)", http.StatusOK, w.Code, w.Body.String())
	}
	if *seen != userID {
		t.Errorf("Expected principal %s resolved into context, got %s", userID, *seen)
	}
}

func TestAuthzMiddleware_TokenWithoutPrincipal(t *testing.T) {
	router, _ := protectedRouter()

	signed := signToken(t, jwt.MapClaims{
		"iss": "todo-tracker-backend",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}
