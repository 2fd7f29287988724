package filestore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	KindAds    = "ads"
	KindVideos = "videos"
)

// allowedMIMETypes is the upload container allowlist shared by both upload
// endpoints. Anything else is rejected before a storage record is created.
var allowedMIMETypes = map[string]struct{}{
	"video/mp4":       {},
	"video/webm":      {},
	"video/quicktime": {},
	"video/x-msvideo": {},
	"video/mpeg":      {},
}

func AllowedMIME(contentType string) bool {
	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = strings.TrimSpace(mediaType[:idx])
	}
	_, ok := allowedMIMETypes[mediaType]
	return ok
}

// Store writes uploaded files under root/{ads|videos} with generated
// collision-resistant names. No content addressing and no cleanup job beyond
// delete-time removal attempts.
type Store struct {
	root string
}

func New(root string) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("upload root is required")
	}
	for _, kind := range []string{KindAds, KindVideos} {
		if err := os.MkdirAll(filepath.Join(root, kind), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir %s: %w", kind, err)
		}
	}
	return &Store{root: root}, nil
}

func (s *Store) Root() string {
	return s.root
}

// Save streams src into the kind directory and returns the stored path and
// the number of bytes written.
func (s *Store) Save(kind string, originalName string, src io.Reader) (string, int64, error) {
	if kind != KindAds && kind != KindVideos {
		return "", 0, fmt.Errorf("unknown upload kind %q", kind)
	}

	path := filepath.Join(s.root, kind, GenerateName(originalName))
	dst, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create upload file: %w", err)
	}

	written, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("write upload file: %w", err)
	}
	return path, written, nil
}

// Remove deletes a stored file. A file already missing on disk is not an
// error: entity deletion must succeed regardless.
func (s *Store) Remove(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// GenerateName builds a timestamp + random-suffix filename keeping the
// original extension.
func GenerateName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), suffix, ext)
}
