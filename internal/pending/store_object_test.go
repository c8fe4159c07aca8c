package pending

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	localstore "resume-builder/internal/shared/storage/object/local"
	"resume-builder/internal/shared/util"
)

func TestObjectStoreLayout(t *testing.T) {
	dir := t.TempDir()
	store := NewObjectStore(localstore.New(dir))
	ctx := context.Background()

	if err := store.Set(ctx, "guest:abc", KeyResumeReady, "true"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	path := filepath.Join(dir, "pending", util.HashUserKey("guest:abc"), KeyResumeReady)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected object at %s: %v", path, err)
	}
	if string(data) != "true" {
		t.Fatalf("unexpected object body %q", data)
	}

	if err := store.Remove(ctx, "guest:abc", KeyResumeReady); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := store.Remove(ctx, "guest:abc", KeyResumeReady); err != nil {
		t.Fatalf("Remove missing: %v", err)
	}
	if _, ok, err := store.Get(ctx, "guest:abc", KeyResumeReady); ok || err != nil {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
}
