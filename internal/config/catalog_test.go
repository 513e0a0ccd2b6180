package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hamed0406/dashfetch/internal/domain"
)

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resources.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestLoadCatalog_OK(t *testing.T) {
	path := writeCatalog(t, `
resources:
  - name: user
    path: /users/7
    shape: record
  - name: posts
    path: /posts
    query:
      userId: "7"
      _limit: "5"
    shape: list
  - name: todos
    path: /todos
    query:
      userId: "7"
    shape: list
`)

	reqs, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(reqs) != 3 {
		t.Fatalf("got %d resources, want 3", len(reqs))
	}
	if reqs[0].Name != domain.ResourceUser || reqs[0].Shape != domain.ShapeRecord {
		t.Errorf("first resource = %+v", reqs[0])
	}
	if reqs[1].Query["_limit"] != "5" {
		t.Errorf("posts query = %v", reqs[1].Query)
	}
}

func TestLoadCatalog_Rejects(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing file is an error", ""}, // handled below with a bogus path
		{"unknown resource", `
resources:
  - name: albums
    path: /albums
    shape: list
`},
		{"duplicate resource", `
resources:
  - name: user
    path: /users/1
    shape: record
  - name: user
    path: /users/2
    shape: record
  - name: posts
    path: /posts
    shape: list
  - name: todos
    path: /todos
    shape: list
`},
		{"missing todos", `
resources:
  - name: user
    path: /users/1
    shape: record
  - name: posts
    path: /posts
    shape: list
`},
		{"bad shape", `
resources:
  - name: user
    path: /users/1
    shape: blob
  - name: posts
    path: /posts
    shape: list
  - name: todos
    path: /todos
    shape: list
`},
		{"no path", `
resources:
  - name: user
    shape: record
  - name: posts
    path: /posts
    shape: list
  - name: todos
    path: /todos
    shape: list
`},
		{"not yaml", `{{{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nope.yaml")
			if tc.body != "" {
				path = writeCatalog(t, tc.body)
			}
			if _, err := LoadCatalog(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}
