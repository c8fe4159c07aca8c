package pending

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"

	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/util"
)

const objectKeyPrefix = "pending"

// ObjectStore implements Store with one object per key in an object store,
// laid out as pending/<sha256(scope)>/<key>.
type ObjectStore struct {
	Objects object.ObjectStore
}

// NewObjectStore constructs an ObjectStore over objects.
func NewObjectStore(objects object.ObjectStore) *ObjectStore {
	return &ObjectStore{Objects: objects}
}

// Get returns the value stored under key for scope.
func (s *ObjectStore) Get(ctx context.Context, scope, key string) (string, bool, error) {
	rc, err := s.Objects.Open(ctx, objectKey(scope, key))
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// Set writes value under key for scope.
func (s *ObjectStore) Set(ctx context.Context, scope, key, value string) error {
	_, err := s.Objects.Save(ctx, objectKey(scope, key), "text/plain; charset=utf-8", bytes.NewReader([]byte(value)))
	return err
}

// Remove deletes key for scope.
func (s *ObjectStore) Remove(ctx context.Context, scope, key string) error {
	return s.Objects.Delete(ctx, objectKey(scope, key))
}

func objectKey(scope, key string) string {
	return path.Join(objectKeyPrefix, util.HashUserKey(scope), key)
}

var _ Store = (*ObjectStore)(nil)
