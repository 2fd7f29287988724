package filestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveWritesFileUnderKindDirectory(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}

	path, size, err := store.Save(KindVideos, "clip.mp4", strings.NewReader("fake-bytes"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if size != int64(len("fake-bytes")) {
		t.Fatalf("expected %d bytes written, got %d", len("fake-bytes"), size)
	}
	if filepath.Dir(path) != filepath.Join(store.Root(), KindVideos) {
		t.Fatalf("file stored outside videos dir: %s", path)
	}
	if !strings.HasSuffix(path, ".mp4") {
		t.Fatalf("expected original extension preserved, got %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
}

func TestSaveRejectsUnknownKind(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}
	if _, _, err := store.Save("documents", "a.mp4", strings.NewReader("x")); err == nil {
		t.Fatal("expected unknown kind to be rejected")
	}
}

func TestRemoveMissingFileIsNotAnError(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}
	if err := store.Remove(filepath.Join(store.Root(), KindAds, "gone.mp4")); err != nil {
		t.Fatalf("remove of missing file should succeed, got %v", err)
	}
}

func TestGenerateNameIsCollisionResistant(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		name := GenerateName("spot.mp4")
		if _, dup := seen[name]; dup {
			t.Fatalf("duplicate generated name %s", name)
		}
		seen[name] = struct{}{}
	}
}

func TestAllowedMIME(t *testing.T) {
	if !AllowedMIME("video/mp4") {
		t.Fatal("video/mp4 should be allowed")
	}
	if !AllowedMIME("Video/MP4; codecs=avc1") {
		t.Fatal("parameters and case should not matter")
	}
	if AllowedMIME("application/pdf") {
		t.Fatal("application/pdf must be rejected")
	}
	if AllowedMIME("") {
		t.Fatal("empty content type must be rejected")
	}
}
