package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// The handlers below are exercised with a nil database: input validation
// must reject the request before any store access happens, so a panic in
// these tests means validation ran too late.
func validationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, nil, nil)

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/packaging", h.CreatePackaging)
	r.POST("/locations", h.CreateLocation)
	r.POST("/scenarios", h.CreateScenario)
	r.POST("/scenarios/:id/packaging", h.AddScenarioPackaging)
	r.POST("/users", h.CreateUser)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidationRejectsBeforeStoreAccess(t *testing.T) {
	r := validationRouter()

	tests := []struct {
		name string
		path string
		body string
	}{
		{"register without fields", "/auth/register", `{}`},
		{"register without password", "/auth/register", `{"email":"a@b.com","nome":"Ana"}`},
		{"login malformed body", "/auth/login", `not-json`},
		{"packaging without codigo", "/packaging", `{"nome":"Caixa"}`},
		{"packaging without nome", "/packaging", `{"codigo":"EMB-001"}`},
		{"location without code", "/locations", `{"building":"Galpão A"}`},
		{"location without building", "/locations", `{"code":"A1"}`},
		{"scenario without nome", "/scenarios", `{"pais":"Brasil"}`},
		{"scenario with blank nome", "/scenarios", `{"nome":"   "}`},
		{"link batch without items", "/scenarios/abc/packaging", `{"items":[]}`},
		{"link batch item missing packaging_id", "/scenarios/abc/packaging", `{"items":[{"posicao":1}]}`},
		{"user without email", "/users", `{"nome":"Ana"}`},
		{"user without nome", "/users", `{"email":"a@b.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, r, tt.path, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d (body %s)", w.Code, w.Body.String())
			}
		})
	}
}

func TestValidationErrorsArePortuguese(t *testing.T) {
	r := validationRouter()

	w := postJSON(t, r, "/packaging", `{"nome":"Caixa"}`)
	if !strings.Contains(w.Body.String(), "obrigat") {
		t.Fatalf("expected a Portuguese required-field message, got %s", w.Body.String())
	}

	w = postJSON(t, r, "/scenarios/abc/packaging", `{"items":[]}`)
	if !strings.Contains(w.Body.String(), "Nenhuma embalagem informada") {
		t.Fatalf("unexpected empty-batch message: %s", w.Body.String())
	}
}
