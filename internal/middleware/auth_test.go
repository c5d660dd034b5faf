package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/jakescarcare/valet-api/internal/config"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return token
}

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: testSecret}

	r := gin.New()
	r.GET("/protected",
		AuthMiddleware(cfg),
		RequireRole("admin"),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"user_id": c.MustGet(ContextUserID).(uint),
				"role":    c.GetString(ContextUserRole),
			})
		},
	)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := setupAuthRouter()

	adminToken := signToken(t, jwt.MapClaims{
		"sub":  float64(1),
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	})

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{
			name:           "valid admin token",
			header:         "Bearer " + adminToken,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "not a bearer header",
			header:         "Basic abc123",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			header:         "Bearer not.a.token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			header: "Bearer " + signToken(t, jwt.MapClaims{
				"sub":  float64(1),
				"role": "admin",
				"exp":  time.Now().Add(-time.Hour).Unix(),
			}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong role",
			header: "Bearer " + signToken(t, jwt.MapClaims{
				"sub":  float64(2),
				"role": "viewer",
				"exp":  time.Now().Add(time.Hour).Unix(),
			}),
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "missing role claim",
			header: "Bearer " + signToken(t, jwt.MapClaims{
				"sub": float64(2),
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
