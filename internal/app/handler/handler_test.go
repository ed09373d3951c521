package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"estimator/internal/app/config"
	"estimator/internal/app/ds"
	"estimator/internal/app/export"
	"estimator/internal/app/middleware"
	"estimator/internal/app/repository"
	"estimator/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeBlacklist struct {
	tokens map[string]time.Duration
}

func (f *fakeBlacklist) WriteJWTToBlacklist(_ context.Context, jwtStr string, ttl time.Duration) error {
	f.tokens[jwtStr] = ttl
	return nil
}

func (f *fakeBlacklist) CheckJWTInBlacklist(_ context.Context, jwtStr string) error {
	if _, ok := f.tokens[jwtStr]; ok {
		return nil
	}
	return redis.Nil
}

type fakeStorage struct {
	files     map[string][]byte
	uploadErr error
	deleted   []string
}

func (f *fakeStorage) UploadFile(_ context.Context, userID uint, kind string, data []byte, name string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	url := "http://assets.test/company-assets/" + kind + "/" + name
	f.files[url] = data
	return url, nil
}

func (f *fakeStorage) DeleteFile(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	delete(f.files, url)
	return nil
}

func (f *fakeStorage) DownloadFile(_ context.Context, url string) ([]byte, error) {
	data, ok := f.files[url]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

type testEnv struct {
	router    *gin.Engine
	repo      *repository.Repository
	api       *APIHandler
	blacklist *fakeBlacklist
	storage   *fakeStorage
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	repo, err := repository.NewWithDB(db)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Token:         "test-secret",
			ExpiresIn:     time.Hour,
			SigningMethod: jwt.SigningMethodHS256,
		},
	}
	bl := &fakeBlacklist{tokens: map[string]time.Duration{}}
	st := &fakeStorage{files: map[string][]byte{}}

	authHandler := NewAuthHandler(repo, bl, cfg)
	api := NewAPIHandler(repo, st, export.NewPDFRenderer(""), authHandler)
	api.now = func() time.Time { return time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC) }

	RegisterValidators()
	router := gin.New()
	api.RegisterAPIRoutes(router, middleware.NewAuthMiddleware(bl, cfg))

	return &testEnv{router: router, repo: repo, api: api, blacklist: bl, storage: st}
}

// signIn creates a user directly and returns a token for it.
func (e *testEnv) signIn(t *testing.T, login string, r role.Role) (*ds.User, string) {
	t.Helper()
	user, err := e.repo.CreateUser(login, "unused", "Test "+login, "", r)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := e.api.AuthHandler.issueToken(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return user, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decodeData unwraps {"status":"success","data":...} into out.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v; body=%s", err, w.Body.String())
	}
	if env.Status != "success" {
		t.Fatalf("status = %q; body=%s", env.Status, w.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("decode data: %v; body=%s", err, w.Body.String())
		}
	}
}

func multipartFile(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestPing(t *testing.T) {
	env := setupTestEnv(t)
	w := env.do(t, http.MethodGet, "/ping", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "pong") {
		t.Fatalf("ping: %d %s", w.Code, w.Body.String())
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	env := setupTestEnv(t)
	for _, path := range []string{"/api/estimates", "/api/companies", "/api/customers", "/api/auth/profile"} {
		if w := env.do(t, http.MethodGet, path, "", nil); w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token = %d, want 401", path, w.Code)
		}
	}
	if w := env.do(t, http.MethodGet, "/api/estimates", "garbage", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("GET with bad token = %d, want 401", w.Code)
	}
}

func TestViewerCannotEdit(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.signIn(t, "viewer", role.Viewer)

	if w := env.do(t, http.MethodGet, "/api/customers", token, nil); w.Code != http.StatusOK {
		t.Errorf("viewer list = %d, want 200", w.Code)
	}
	w := env.do(t, http.MethodPost, "/api/customers", token, map[string]string{"name": "Alice"})
	if w.Code != http.StatusForbidden {
		t.Errorf("viewer create = %d, want 403", w.Code)
	}
}
