package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"resume-builder/internal/shared/storage/object"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "resumes/abc/1.json", want: "resumes/abc/1.json"},
		{name: "simple prefix", prefix: "root", key: "resumes/abc/1.json", want: "root/resumes/abc/1.json"},
		{name: "prefix trailing slash", prefix: "root/", key: "resumes/abc/1.json", want: "root/resumes/abc/1.json"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/pending/abc/resumeData", want: "root/pending/abc/resumeData"},
		{name: "empty key", prefix: "root", key: "", want: "root"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

type fakeS3 struct {
	objects map[string][]byte
	lastPut *s3.PutObjectInput
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	f.lastPut = in
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestStoreRoundTripWithPrefixAndEncryption(t *testing.T) {
	ctx := context.Background()
	fake := &fakeS3{objects: map[string][]byte{}}
	store := newWithClient(fake, "bucket", "/app/", "kms-key")

	size, err := store.Save(ctx, "resumes/abc/1.json", "application/json", strings.NewReader(`{"ok":true}`))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len(`{"ok":true}`)) {
		t.Fatalf("unexpected size %d", size)
	}
	if _, ok := fake.objects["app/resumes/abc/1.json"]; !ok {
		t.Fatalf("expected prefixed key, got %v", fake.objects)
	}
	if fake.lastPut.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms {
		t.Fatalf("expected kms encryption, got %q", fake.lastPut.ServerSideEncryption)
	}

	rc, err := store.Open(ctx, "resumes/abc/1.json")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != `{"ok":true}` {
		t.Fatalf("unexpected body %q", body)
	}

	if err := store.Delete(ctx, "resumes/abc/1.json"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(ctx, "resumes/abc/1.json"); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
