package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func uploadRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/packaging/upload", h.UploadPackagingFile)
	return r
}

func multipartFile(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestUploadWithoutStorageConfigured(t *testing.T) {
	r := uploadRouter(NewHandler(nil, nil, nil))

	body, contentType := multipartFile(t, "file", "foto.png", []byte{0x89, 'P', 'N', 'G'})
	req := httptest.NewRequest(http.MethodPost, "/packaging/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 without storage, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Armazenamento de arquivos não configurado") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestUploadGuardRunsBeforeFormParsing(t *testing.T) {
	// The storage guard comes before c.FormFile, so a bodyless request
	// still gets the configuration error, not a 400.
	r := uploadRouter(NewHandler(nil, nil, nil))

	req := httptest.NewRequest(http.MethodPost, "/packaging/upload", strings.NewReader(""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 from the storage guard, got %d", w.Code)
	}
}

func TestDetectedTypeGate(t *testing.T) {
	// http.DetectContentType on plain text yields text/plain, which the
	// allow-list rejects.
	if allowedUploadTypes["text/plain; charset=utf-8"] {
		t.Fatal("plain text must not be an allowed upload type")
	}
	if !allowedUploadTypes["image/png"] || !allowedUploadTypes["application/pdf"] {
		t.Fatal("expected png and pdf to be allowed")
	}
}
