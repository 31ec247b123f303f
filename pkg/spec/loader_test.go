package spec

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

func TestLoaderFromFS(t *testing.T) {
	files := fstest.MapFS{
		"ui/page.json": &fstest.MapFile{
			Data: []byte(`{"root": {"type": "box", "children": [{"type": "text", "content": "hi"}]}}`),
		},
		"ui/page.yaml": &fstest.MapFile{
			Data: []byte("root:\n  type: box\n  children:\n    - type: text\n      content: hi\n"),
		},
	}

	loader := NewLoader(WithFS(files))

	for _, name := range []string{"ui/page.json", "ui/page.yaml"} {
		doc, err := loader.Load(context.Background(), SourceFromFS(name))
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		if doc.Root.Type != "box" {
			t.Errorf("Load(%s): root type = %q, want box", name, doc.Root.Type)
		}
		if doc.Root.Children == nil || doc.Root.Children.Kind != ChildList {
			t.Fatalf("Load(%s): children = %+v, want a list", name, doc.Root.Children)
		}
		if got := len(doc.Root.Children.List); got != 1 {
			t.Fatalf("Load(%s): got %d children, want 1", name, got)
		}
	}
}

func TestLoaderFSNotConfigured(t *testing.T) {
	loader := NewLoader()
	if _, err := loader.Load(context.Background(), SourceFromFS("page.json")); err == nil {
		t.Fatal("Load: expected error for unconfigured filesystem")
	}
}

func TestLoaderFromBytesSniffsFormat(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name string
		data string
	}{
		{"payload", `{"type": "text", "content": "raw"}`},
		{"payload", "type: text\ncontent: raw\n"},
	}

	for _, tt := range tests {
		doc, err := loader.Load(context.Background(), SourceFromBytes(tt.name, []byte(tt.data)))
		if err != nil {
			t.Fatalf("Load(%q): %v", tt.data, err)
		}
		if got := doc.Root.Content; got != "raw" {
			t.Errorf("Load(%q): content = %q, want raw", tt.data, got)
		}
	}
}

func TestLoaderFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"version": "1.0", "root": {"type": "heading", "props": {"level": 2}, "content": "Remote"}}`))
	}))
	defer server.Close()

	loader := NewLoader(WithHTTPClient(server.Client()), WithRequestTimeout(2*time.Second))
	doc, err := loader.Load(context.Background(), SourceFromURL(server.URL+"/page.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Version != "1.0" {
		t.Errorf("version = %q, want 1.0", doc.Version)
	}
	if doc.Root.Type != "heading" {
		t.Errorf("root type = %q, want heading", doc.Root.Type)
	}
}

func TestLoaderURLWithoutClient(t *testing.T) {
	loader := NewLoader()
	_, err := loader.Load(context.Background(), SourceFromURL("http://localhost/page.json"))
	if err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("Load: error = %v, want http support disabled", err)
	}
}

func TestLoaderURLErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer server.Close()

	loader := NewLoader(WithHTTPClient(server.Client()))
	if _, err := loader.Load(context.Background(), SourceFromURL(server.URL)); err == nil {
		t.Fatal("Load: expected error for 404 response")
	}
}
