package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"estimator/internal/app/dto"
	"estimator/internal/app/role"
)

func (e *testEnv) upload(t *testing.T, path, token, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartFile(t, "file", filename, content)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.ErrorResponse
	decodeJSON(t, w, &resp)
	if resp.Status != "fail" {
		t.Errorf("error status = %q, want fail", resp.Status)
	}
	return resp.Message
}

func TestOnlyOneDefaultCompany(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.signIn(t, "maker", role.Manager)

	var first, second dto.CompanyResponse
	decodeData(t, env.do(t, http.MethodPost, "/api/companies", token, map[string]interface{}{"name": "First", "is_default": true}), &first)
	decodeData(t, env.do(t, http.MethodPost, "/api/companies", token, map[string]interface{}{"name": "Second", "is_default": true}), &second)

	var list dto.CompanyListResponse
	decodeData(t, env.do(t, http.MethodGet, "/api/companies", token, nil), &list)
	defaults := 0
	for _, c := range list.Companies {
		if c.IsDefault {
			defaults++
			if c.ID != second.ID {
				t.Errorf("default = %s, want %s", c.Name, second.Name)
			}
		}
	}
	if defaults != 1 {
		t.Errorf("default companies = %d, want 1", defaults)
	}

	w := env.do(t, http.MethodPut, "/api/companies/"+first.ID+"/default", token, nil)
	var got dto.CompanyResponse
	decodeData(t, w, &got)
	if !got.IsDefault {
		t.Error("first company is not default after switching")
	}
	decodeData(t, env.do(t, http.MethodGet, "/api/companies/"+second.ID, token, nil), &got)
	if got.IsDefault {
		t.Error("second company kept its default flag")
	}

	if w := env.do(t, http.MethodPost, "/api/companies", token, map[string]string{"name": "Bad", "email": "not-an-email"}); w.Code != http.StatusBadRequest {
		t.Errorf("invalid email = %d, want 400", w.Code)
	}
}

func TestUploadCompanyAsset(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.signIn(t, "maker", role.Manager)

	var company dto.CompanyResponse
	decodeData(t, env.do(t, http.MethodPost, "/api/companies", token, map[string]string{"name": "Studio"}), &company)
	base := "/api/companies/" + company.ID + "/assets/"

	w := env.upload(t, base+"logo", token, "logo.png", []byte("png-bytes"))
	decodeData(t, w, &company)
	if company.Logo == nil || !strings.HasSuffix(*company.Logo, "logo.png") {
		t.Fatalf("logo = %v", company.Logo)
	}
	oldLogo := *company.Logo

	w = env.upload(t, base+"logo", token, "logo2.webp", []byte("webp-bytes"))
	decodeData(t, w, &company)
	if len(env.storage.deleted) != 1 || env.storage.deleted[0] != oldLogo {
		t.Errorf("replaced logo not deleted: %v", env.storage.deleted)
	}

	w = env.upload(t, base+"stamp", token, "stamp.pdf", []byte("%PDF-"))
	if w.Code != http.StatusBadRequest || errorMessage(t, w) != "only image files are allowed" {
		t.Errorf("pdf upload = %d %s", w.Code, w.Body.String())
	}

	big := bytes.Repeat([]byte{0xff}, 1<<20+1)
	w = env.upload(t, base+"signature", token, "sign.jpg", big)
	if w.Code != http.StatusBadRequest || errorMessage(t, w) != "file exceeds 1MB" {
		t.Errorf("large upload = %d %s", w.Code, w.Body.String())
	}

	w = env.upload(t, base+"banner", token, "banner.png", []byte("x"))
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown kind = %d, want 400", w.Code)
	}

	env.storage.uploadErr = errors.New("bucket quota exceeded")
	w = env.upload(t, base+"stamp", token, "stamp.png", []byte("x"))
	if w.Code != http.StatusInternalServerError || errorMessage(t, w) != "bucket quota exceeded" {
		t.Errorf("storage failure = %d %s", w.Code, w.Body.String())
	}
}

func TestDeleteCompanyRemovesAssets(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.signIn(t, "maker", role.Manager)

	var company dto.CompanyResponse
	decodeData(t, env.do(t, http.MethodPost, "/api/companies", token, map[string]string{"name": "Studio"}), &company)
	decodeData(t, env.upload(t, "/api/companies/"+company.ID+"/assets/stamp", token, "stamp.png", []byte("x")), &company)

	if w := env.do(t, http.MethodDelete, "/api/companies/"+company.ID, token, nil); w.Code != http.StatusOK {
		t.Fatalf("delete = %d", w.Code)
	}
	if len(env.storage.files) != 0 {
		t.Errorf("stored files left: %v", env.storage.files)
	}
	if w := env.do(t, http.MethodGet, "/api/companies/"+company.ID, token, nil); w.Code != http.StatusNotFound {
		t.Errorf("get deleted = %d, want 404", w.Code)
	}
}

func TestCustomers(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.signIn(t, "maker", role.Manager)

	for _, c := range []map[string]string{
		{"name": "Alice", "company": "Blue Films"},
		{"name": "Bob", "company": "Red Studio"},
		{"name": "Carol", "company": "blueprint"},
	} {
		if w := env.do(t, http.MethodPost, "/api/customers", token, c); w.Code != http.StatusCreated {
			t.Fatalf("create customer = %d: %s", w.Code, w.Body.String())
		}
	}

	var list dto.CustomerListResponse
	decodeData(t, env.do(t, http.MethodGet, "/api/customers?query=BLUE", token, nil), &list)
	if list.Total != 2 {
		t.Errorf("search total = %d, want 2", list.Total)
	}

	decodeData(t, env.do(t, http.MethodGet, "/api/customers", token, nil), &list)
	if list.Total != 3 {
		t.Fatalf("list total = %d, want 3", list.Total)
	}

	id := list.Customers[0].ID
	var updated dto.CustomerResponse
	decodeData(t, env.do(t, http.MethodPut, "/api/customers/"+id, token, map[string]string{"name": "Renamed"}), &updated)
	if updated.Name != "Renamed" {
		t.Errorf("updated name = %q", updated.Name)
	}

	w := env.do(t, http.MethodGet, "/api/customers/export", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export = %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("export content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment;") {
		t.Errorf("content disposition = %q", cd)
	}

	if w := env.do(t, http.MethodDelete, "/api/customers/"+id, token, nil); w.Code != http.StatusOK {
		t.Errorf("delete = %d", w.Code)
	}
	if w := env.do(t, http.MethodGet, "/api/customers/"+id, token, nil); w.Code != http.StatusNotFound {
		t.Errorf("get deleted = %d, want 404", w.Code)
	}
}
