package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"estimator/internal/app/config"
	"estimator/internal/app/ds"
	"estimator/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"
)

const testSecret = "test-secret"

type memoryBlacklist map[string]bool

type brokenBlacklist struct{}

func (brokenBlacklist) WriteJWTToBlacklist(context.Context, string, time.Duration) error {
	return errors.New("connection refused")
}

func (brokenBlacklist) CheckJWTInBlacklist(context.Context, string) error {
	return errors.New("connection refused")
}

func (m memoryBlacklist) WriteJWTToBlacklist(_ context.Context, jwtStr string, _ time.Duration) error {
	m[jwtStr] = true
	return nil
}

func (m memoryBlacklist) CheckJWTInBlacklist(_ context.Context, jwtStr string) error {
	if m[jwtStr] {
		return nil
	}
	return redis.Nil
}

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, userID uint, r role.Role, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(method, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{ExpiresAt: expires.Unix()},
		UserID:         userID,
		Role:           r,
	})
	s, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc.def": "abc.def",
		"":               "",
		"Bearer ":        "",
	}
	for header, want := range cases {
		if got := BearerToken(header); got != want {
			t.Errorf("BearerToken(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestParseToken(t *testing.T) {
	valid := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), 7, role.Admin, time.Now().Add(time.Hour))
	claims, err := ParseToken(valid, testSecret)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 7 || claims.Role != role.Admin {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := ParseToken(valid, "other-secret"); err == nil {
		t.Error("token signed with another secret was accepted")
	}

	expired := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), 7, role.Admin, time.Now().Add(-time.Minute))
	if _, err := ParseToken(expired, testSecret); err == nil {
		t.Error("expired token was accepted")
	}

	unsigned := signToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, 7, role.Admin, time.Now().Add(time.Hour))
	if _, err := ParseToken(unsigned, testSecret); err == nil {
		t.Error("unsigned token was accepted")
	}
}

func TestWithAuthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	blacklist := memoryBlacklist{}
	am := NewAuthMiddleware(blacklist, &config.Config{JWT: config.JWTConfig{Token: testSecret}})

	router := gin.New()
	router.GET("/edit", am.WithAuthCheck(role.Manager, role.Admin), func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"user": id, "role": CurrentRole(c).String()})
	})

	expires := time.Now().Add(time.Hour)
	manager := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), 1, role.Manager, expires)
	viewer := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), 2, role.Viewer, expires)
	revoked := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), 3, role.Admin, expires)
	blacklist[revoked] = true

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"malformed", "not-a-jwt", http.StatusUnauthorized},
		{"revoked", revoked, http.StatusUnauthorized},
		{"wrong role", viewer, http.StatusForbidden},
		{"allowed", manager, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/edit", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestWithAuthCheckBlacklistUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	am := NewAuthMiddleware(brokenBlacklist{}, &config.Config{JWT: config.JWTConfig{Token: testSecret}})
	router := gin.New()
	router.GET("/estimates", am.WithAuthCheck(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), 1, role.Manager, time.Now().Add(time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/estimates", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestCurrentRoleDefaultsToViewer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentRole(c); got != role.Viewer {
		t.Errorf("CurrentRole = %v, want viewer", got)
	}
	if _, ok := CurrentUserID(c); ok {
		t.Error("CurrentUserID reported a user on an empty context")
	}
}
