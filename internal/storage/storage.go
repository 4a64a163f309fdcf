package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ObjectStore holds uploaded images (category and product pictures,
// branding slides). Objects are addressed by a forward-slash path and
// exposed through a public URL.
type ObjectStore interface {
	Upload(ctx context.Context, objectPath string, r io.Reader) (string, error)
	Remove(ctx context.Context, objectPath string) error
	PublicURL(objectPath string) string
	// ObjectPath recovers the object path from a public URL previously
	// returned by PublicURL. ok is false for foreign URLs.
	ObjectPath(url string) (string, bool)
}

// DiskStore keeps objects on the local filesystem under a root
// directory and serves them under a base URL prefix.
type DiskStore struct {
	root    string
	baseURL string
	logger  *zap.Logger
}

func NewDiskStore(root, baseURL string, logger *zap.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage root: %w", err)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &DiskStore{root: root, baseURL: baseURL, logger: logger}, nil
}

func (s *DiskStore) Root() string { return s.root }

func (s *DiskStore) Upload(ctx context.Context, objectPath string, r io.Reader) (string, error) {
	clean, err := s.cleanPath(objectPath)
	if err != nil {
		return "", err
	}

	full := filepath.Join(s.root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("creating object directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("creating object: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("writing object: %w", err)
	}

	s.logger.Debug("object stored", zap.String("path", clean))
	return s.PublicURL(clean), nil
}

func (s *DiskStore) Remove(ctx context.Context, objectPath string) error {
	clean, err := s.cleanPath(objectPath)
	if err != nil {
		return err
	}

	full := filepath.Join(s.root, filepath.FromSlash(clean))
	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("removing object: %w", err)
	}

	s.logger.Debug("object removed", zap.String("path", clean))
	return nil
}

func (s *DiskStore) PublicURL(objectPath string) string {
	return s.baseURL + strings.TrimPrefix(objectPath, "/")
}

func (s *DiskStore) ObjectPath(url string) (string, bool) {
	idx := strings.Index(url, s.baseURL)
	if idx == -1 {
		return "", false
	}
	p := url[idx+len(s.baseURL):]
	if p == "" {
		return "", false
	}
	return p, true
}

func (s *DiskStore) cleanPath(objectPath string) (string, error) {
	if strings.Contains(objectPath, "..") {
		return "", fmt.Errorf("invalid object path %q", objectPath)
	}
	clean := path.Clean("/" + strings.TrimPrefix(objectPath, "/"))
	if clean == "/" {
		return "", fmt.Errorf("invalid object path %q", objectPath)
	}
	return strings.TrimPrefix(clean, "/"), nil
}
