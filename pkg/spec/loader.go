package spec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
	"time"
)

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFS supplies the filesystem used for fs-kind sources.
func WithFS(files fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fs = files
	}
}

// WithHTTPClient enables URL sources using the supplied client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		l.http = client
	}
}

// WithRequestTimeout bounds URL fetches. Ignored for other source kinds.
func WithRequestTimeout(timeout time.Duration) LoaderOption {
	return func(l *Loader) {
		l.timeout = timeout
	}
}

// Loader fetches and decodes specification documents from files, fs.FS
// entries, URLs, or in-memory payloads. YAML is detected by extension
// (.yaml/.yml) with a content sniff fallback.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// NewLoader constructs a Loader. URL sources require WithHTTPClient.
func NewLoader(options ...LoaderOption) *Loader {
	loader := &Loader{}
	for _, opt := range options {
		if opt != nil {
			opt(loader)
		}
	}
	return loader
}

// Load fetches the source payload and parses it into a Document.
func (l *Loader) Load(ctx context.Context, src Source) (*Document, error) {
	if src == nil {
		return nil, errors.New("spec loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if l.fs == nil {
			return nil, errors.New("spec loader: filesystem is not configured")
		}
		data, err = fs.ReadFile(l.fs, src.Location())
	case SourceKindURL:
		data, err = l.loadHTTP(ctx, src.Location())
	case SourceKindBytes:
		data = src.(bytesSource).data
	default:
		err = fmt.Errorf("spec loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, fmt.Errorf("spec loader: read %s: %w", src.Location(), err)
	}

	if isYAML(src.Location(), data) {
		return ParseYAMLDocument(data)
	}
	return ParseDocument(data)
}

func (l *Loader) loadHTTP(ctx context.Context, url string) ([]byte, error) {
	if l.http == nil {
		return nil, errors.New("http support disabled")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if l.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("unexpected status " + resp.Status)
	}

	return io.ReadAll(resp.Body)
}

func isYAML(location string, data []byte) bool {
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return true
	case ".json":
		return false
	}
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '{', '[':
			return false
		default:
			return true
		}
	}
	return false
}
