package handlers_test

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gridsight/gridsight/pkg/handlers"
)

func multipartRequest(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
	if contentType != "" {
		header["Content-Type"] = []string{contentType}
	}

	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("create part failed: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer failed: %v", err)
	}

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestReadFormFile(t *testing.T) {
	t.Run("valid upload", func(t *testing.T) {
		req := multipartRequest(t, "image", "thermal.jpg", "image/jpeg", []byte("fake jpeg data"))

		f, err := handlers.ReadFormFile(req, "image", 1<<20)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}

		if string(f.Data) != "fake jpeg data" {
			t.Errorf("data = %q", f.Data)
		}
		if f.Filename != "thermal.jpg" {
			t.Errorf("filename = %q", f.Filename)
		}
		if f.ContentType != "image/jpeg" {
			t.Errorf("content type = %q", f.ContentType)
		}
	})

	t.Run("missing content type sniffed", func(t *testing.T) {
		req := multipartRequest(t, "image", "thermal.bin", "", []byte("plain text payload"))

		f, err := handlers.ReadFormFile(req, "image", 1<<20)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if !strings.HasPrefix(f.ContentType, "text/plain") {
			t.Errorf("content type = %q; expected sniffed text/plain", f.ContentType)
		}
	})

	t.Run("oversized body", func(t *testing.T) {
		req := multipartRequest(t, "image", "big.jpg", "image/jpeg", bytes.Repeat([]byte("x"), 2048))

		_, err := handlers.ReadFormFile(req, "image", 64)
		if !errors.Is(err, handlers.ErrFileTooLarge) {
			t.Errorf("err = %v; expected ErrFileTooLarge", err)
		}
	})

	t.Run("malformed multipart body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader("not multipart at all"))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")

		_, err := handlers.ReadFormFile(req, "image", 1<<20)
		if !errors.Is(err, handlers.ErrInvalidFile) {
			t.Errorf("err = %v; expected ErrInvalidFile", err)
		}
	})

	t.Run("missing field", func(t *testing.T) {
		req := multipartRequest(t, "other", "thermal.jpg", "image/jpeg", []byte("data"))

		_, err := handlers.ReadFormFile(req, "image", 1<<20)
		if !errors.Is(err, handlers.ErrInvalidFile) {
			t.Errorf("err = %v; expected ErrInvalidFile", err)
		}
	})
}
