package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/eduflow-app/eduflow/internal/platform/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "react-basics.yaml"), []byte(`
id: react-basics
name: "React Basics"
difficulty: easy
sequence: 1
items:
  - id: react-intro
    title: "Introduction to React"
    type: article
    url: "https://react.dev/learn"
    points: 10
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	cfg.Catalog.Dir = dir
	cfg.Locales.Dir = "" // built-in English only
	return cfg
}

func TestBuildHandler(t *testing.T) {
	handler, cleanup, err := buildHandler(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("buildHandler() error = %v", err)
	}
	defer cleanup()

	for _, path := range []string{"/healthz", "/readyz", "/api/topics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}

func TestBuildHandlerMissingCatalog(t *testing.T) {
	cfg := testConfig(t)
	cfg.Catalog.Dir = filepath.Join(t.TempDir(), "does-not-exist")

	if _, _, err := buildHandler(context.Background(), cfg); err == nil {
		t.Error("buildHandler() should fail when the catalog dir is missing")
	}
}
